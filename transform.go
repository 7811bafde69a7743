// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/ssbc/utf32/internal/runes"
)

// Encoding adapts the codec to golang.org/x/text/encoding, so it can be used with
// transform.NewReader, transform.NewWriter and transform.Chain.
// Text on the UTF-8 side may carry lone surrogates in their three byte (WTF-8) form.
type Encoding struct {
	order ByteOrder
	dopts DecoderOptions
	eopts EncoderOptions
}

var _ encoding.Encoding = (*Encoding)(nil)

// NewEncoding returns the x/text encoding for order. Strict has no meaning here, the input is always bytes.
func NewEncoding(order ByteOrder, dopts DecoderOptions, eopts EncoderOptions) *Encoding {
	return &Encoding{order: order, dopts: dopts, eopts: eopts}
}

// NewDecoder returns a decoder from UTF-32 to UTF-8.
func (e *Encoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: &decodeTransformer{
		engine: NewDecodeEngine(e.order, e.dopts.Policy(e.order), e.dopts.IgnoreBOM),
	}}
}

// NewEncoder returns an encoder from UTF-8 to UTF-32.
func (e *Encoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: &encodeTransformer{
		engine: NewEncodeEngine(e.order, e.eopts.Policy(e.order), e.eopts.PrependBOM),
	}}
}

func (e *Encoding) String() string { return e.order.Label() }

// decodeTransformer drives a DecodeEngine. Output that doesn't fit into dst is held in out
// and handed out first on the next call.
type decodeTransformer struct {
	engine *DecodeEngine

	runes []rune
	out   []byte
}

func (t *decodeTransformer) Reset() {
	t.engine.Reset()
	t.out = t.out[:0]
}

func (t *decodeTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	nDst = t.flush(dst)
	if len(t.out) > 0 {
		return nDst, 0, transform.ErrShortDst
	}

	// whole groups only, the engine sees the incomplete rest once src is final
	span := len(src) &^ (GroupSize - 1)
	final := atEOF
	if final {
		span = len(src)
	}

	t.runes, _, err = t.engine.Step(t.runes[:0], src[:span], final)
	if err != nil {
		return nDst, 0, err
	}
	for _, r := range t.runes {
		t.out = utf8.AppendRune(t.out, r)
	}
	nSrc = span

	nDst += t.flush(dst[nDst:])
	switch {
	case len(t.out) > 0:
		return nDst, nSrc, transform.ErrShortDst
	case nSrc < len(src):
		return nDst, nSrc, transform.ErrShortSrc
	}
	return nDst, nSrc, nil
}

func (t *decodeTransformer) flush(dst []byte) int {
	n := copy(dst, t.out)
	t.out = t.out[:copy(t.out, t.out[n:])]
	return n
}

// encodeTransformer drives an EncodeEngine. The UTF-8 side is read up to the last complete
// sequence, a trailing high surrogate stays with the engine until its partner shows up.
type encodeTransformer struct {
	engine *EncodeEngine

	units []uint16
	out   []byte
}

func (t *encodeTransformer) Reset() {
	t.engine.Reset()
	t.out = t.out[:0]
}

func (t *encodeTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	nDst = t.flush(dst)
	if len(t.out) > 0 {
		return nDst, 0, transform.ErrShortDst
	}

	span := len(src)
	if !atEOF {
		span = runes.CompletePrefix(src)
	}

	t.units = runes.AppendBytes(t.units[:0], src[:span])
	t.out, err = t.engine.Step(t.out, t.units, atEOF)
	if err != nil {
		return nDst, 0, err
	}
	nSrc = span

	nDst += t.flush(dst[nDst:])
	switch {
	case len(t.out) > 0:
		return nDst, nSrc, transform.ErrShortDst
	case nSrc < len(src):
		return nDst, nSrc, transform.ErrShortSrc
	}
	return nDst, nSrc, nil
}

func (t *encodeTransformer) flush(dst []byte) int {
	n := copy(dst, t.out)
	t.out = t.out[:copy(t.out, t.out[n:])]
	return n
}
