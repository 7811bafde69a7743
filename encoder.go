// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"fmt"

	"github.com/ssbc/utf32/internal/runes"
)

// EncoderOptions are fixed when an encoder is constructed.
type EncoderOptions struct {
	// Fatal makes a lone surrogate an error instead of substituting it.
	Fatal bool

	// PrependBOM starts the output with U+FEFF, unless the text already starts with one.
	PrependBOM bool

	// Strict rejects input that isn't text instead of formatting it with fmt.Sprint.
	Strict bool

	// Replacement is the rune substituted for a lone surrogate. Zero selects U+FFFD.
	Replacement rune
}

// Policy returns the replacement policy the options select for order.
func (o EncoderOptions) Policy(order ByteOrder) Policy {
	return newPolicy(o.Fatal, o.Replacement, order)
}

// Encoder encodes text to UTF-32 in one byte order. Every call encodes a complete document.
type Encoder struct {
	order  ByteOrder
	opts   EncoderOptions
	policy Policy
}

// NewEncoder returns an encoder for order.
func NewEncoder(order ByteOrder, opts EncoderOptions) *Encoder {
	return &Encoder{
		order:  order,
		opts:   opts,
		policy: opts.Policy(order),
	}
}

// Encode encodes v, which is a string, []byte (UTF-8), []rune or []uint16 (UTF-16 code units).
// Three byte sequences that encode a surrogate (WTF-8) in a string or []byte stand for that code unit.
//
// Unless the encoder is strict, nil is the empty text and any other value is formatted with fmt.Sprint.
func (e *Encoder) Encode(v interface{}) ([]byte, error) {
	units, err := TextUnits("encode", v, e.opts.Strict)
	if err != nil {
		return nil, err
	}
	return e.EncodeUTF16(units)
}

// EncodeString encodes s.
func (e *Encoder) EncodeString(s string) ([]byte, error) {
	return e.EncodeUTF16(runes.AppendString(make([]uint16, 0, len(s)), s))
}

// EncodeUTF16 encodes the code units in units. Lone surrogates are substituted or, if the encoder is fatal, an error.
func (e *Encoder) EncodeUTF16(units []uint16) ([]byte, error) {
	engine := NewEncodeEngine(e.order, e.policy, e.opts.PrependBOM)
	return engine.Step(make([]byte, 0, (len(units)+1)*GroupSize), units, true)
}

// Encoding returns the label of the encoder's byte order.
func (e *Encoder) Encoding() string { return e.order.Label() }

func (e *Encoder) ByteOrder() ByteOrder { return e.order }

func (e *Encoder) Fatal() bool { return e.opts.Fatal }

func (e *Encoder) PrependBOM() bool { return e.opts.PrependBOM }

func (e *Encoder) Strict() bool { return e.opts.Strict }

// TextUnits converts the text value v into UTF-16 code units, see Encoder.Encode for the accepted types.
// op names the operation in a returned ArgumentError.
func TextUnits(op string, v interface{}, strict bool) ([]uint16, error) {
	switch tv := v.(type) {
	case string:
		return runes.AppendString(make([]uint16, 0, len(tv)), tv), nil
	case []byte:
		return runes.AppendBytes(make([]uint16, 0, len(tv)), tv), nil
	case []rune:
		return runes.AppendRunes(make([]uint16, 0, len(tv)), tv), nil
	case []uint16:
		return tv, nil
	}

	if strict {
		return nil, &ArgumentError{Op: op, Value: v}
	}
	if v == nil {
		return nil, nil
	}
	s := fmt.Sprint(v)
	return runes.AppendString(make([]uint16, 0, len(s)), s), nil
}
