// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"io"

	"github.com/pkg/errors"
	"golang.org/x/text/transform"

	"github.com/ssbc/utf32/internal/runes"
)

// Codec converts text values to UTF-32 and back, either one value at a time or over an io stream.
type Codec interface {
	// Marshal encodes a single text value and returns the serialized byte slice.
	Marshal(value interface{}) ([]byte, error)

	// Unmarshal decodes data and returns the text as a string.
	Unmarshal(data []byte) (interface{}, error)

	NewDecoder(io.Reader) ValueDecoder
	NewEncoder(io.Writer) ValueEncoder
}

// ValueDecoder returns the text of a stream in pieces.
type ValueDecoder interface {
	// Decode returns the next piece of decoded text as a string, or io.EOF.
	Decode() (interface{}, error)
}

// ValueEncoder writes text values as one continuous UTF-32 document.
type ValueEncoder interface {
	Encode(v interface{}) error

	// Close writes what is still held back, like an unpaired high surrogate at the very end.
	// It does not close the underlying writer.
	Close() error
}

// NewCodec returns a codec for order.
func NewCodec(order ByteOrder, dopts DecoderOptions, eopts EncoderOptions) Codec {
	return &codec{
		order: order,
		dopts: dopts,
		eopts: eopts,
		enc:   NewEncoder(order, eopts),
		xenc:  NewEncoding(order, dopts, eopts),
	}
}

type codec struct {
	order ByteOrder
	dopts DecoderOptions
	eopts EncoderOptions

	enc  *Encoder
	xenc *Encoding
}

func (c *codec) Marshal(v interface{}) ([]byte, error) {
	return c.enc.Encode(v)
}

func (c *codec) Unmarshal(data []byte) (interface{}, error) {
	s, err := NewDecoder(c.order, c.dopts).Decode(data)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (c *codec) NewEncoder(w io.Writer) ValueEncoder {
	return &valueEncoder{
		w:      w,
		engine: NewEncodeEngine(c.order, c.eopts.Policy(c.order), c.eopts.PrependBOM),
		strict: c.eopts.Strict,
	}
}

func (c *codec) NewDecoder(r io.Reader) ValueDecoder {
	return &valueDecoder{
		r:   transform.NewReader(r, c.xenc.NewDecoder()),
		buf: make([]byte, 4096),
	}
}

type valueEncoder struct {
	w      io.Writer
	engine *EncodeEngine
	strict bool

	buf []byte
	err error
}

// Encode writes the UTF-32 form of v. A value that fails to encode writes nothing.
func (enc *valueEncoder) Encode(v interface{}) error {
	if enc.err != nil {
		return enc.err
	}

	units, err := TextUnits("encode", v, enc.strict)
	if err != nil {
		return err
	}

	return enc.step(units, false)
}

func (enc *valueEncoder) Close() error {
	if enc.err != nil {
		return enc.err
	}
	if err := enc.step(nil, true); err != nil {
		return err
	}
	enc.err = io.ErrClosedPipe
	return nil
}

func (enc *valueEncoder) step(units []uint16, final bool) error {
	out, err := enc.engine.Step(enc.buf[:0], units, final)
	if err != nil {
		enc.err = err
		return err
	}
	enc.buf = out

	if len(out) == 0 {
		return nil
	}
	if _, err := enc.w.Write(out); err != nil {
		enc.err = errors.Wrap(err, "utf32: failed to write encoded value")
	}
	return enc.err
}

type valueDecoder struct {
	r    io.Reader
	buf  []byte
	held int

	err error
}

func (dec *valueDecoder) Decode() (interface{}, error) {
	for dec.err == nil {
		n, err := dec.r.Read(dec.buf[dec.held:])
		total := dec.held + n

		if err == io.EOF {
			dec.err = io.EOF
			if total == 0 {
				break
			}
			dec.held = 0
			return string(dec.buf[:total]), nil
		} else if err != nil {
			dec.err = errors.Wrap(err, "utf32: failed to read decoded text")
			break
		}

		cut := runes.CompletePrefix(dec.buf[:total])
		if cut == 0 {
			dec.held = total
			continue
		}

		s := string(dec.buf[:cut])
		dec.held = copy(dec.buf, dec.buf[cut:total])
		return s, nil
	}
	return nil, dec.err
}
