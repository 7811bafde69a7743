// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"github.com/ssbc/utf32/internal/scalar"
)

// DecodeEngine turns UTF-32 bytes into runes, one chunk per Step.
// The trailing bytes of an incomplete group and whether the leading BOM was already looked at
// are carried from one Step to the next until Reset.
//
// It is not safe for concurrent use.
type DecodeEngine struct {
	order     ByteOrder
	policy    Policy
	ignoreBOM bool

	pending  [GroupSize - 1]byte
	npending int

	bomSeen bool
}

// NewDecodeEngine returns an engine with empty carry state.
// With ignoreBOM a leading U+FEFF is decoded like any other code point instead of being dropped.
func NewDecodeEngine(order ByteOrder, policy Policy, ignoreBOM bool) *DecodeEngine {
	return &DecodeEngine{
		order:     order,
		policy:    policy,
		ignoreBOM: ignoreBOM,
	}
}

// Step decodes src, preceded by the bytes held back by the previous call, and appends the result to dst.
//
// If final is false, the bytes of a trailing incomplete group are held back for the next call.
// If final is true they are malformed and become one replacement rune, or an error under a fatal policy.
// n is the number of bytes, held back ones included, that were turned into runes.
//
// On error dst is returned as passed in and the engine needs a Reset before it can be used again.
func (dec *DecodeEngine) Step(dst []rune, src []byte, final bool) (out []rune, n int, err error) {
	buf := src
	if dec.npending > 0 {
		buf = make([]byte, 0, dec.npending+len(src))
		buf = append(buf, dec.pending[:dec.npending]...)
		buf = append(buf, src...)
	}

	out = dst
	for len(buf)-n >= GroupSize {
		v := dec.order.Scalar(buf[n:])
		n += GroupSize

		first := !dec.bomSeen
		dec.bomSeen = true

		if scalar.IsScalarValue(v) {
			if first && !dec.ignoreBOM && v == scalar.BOM {
				continue
			}
			out = append(out, rune(v))
			continue
		}

		if dec.policy.Fatal() {
			return dst, 0, &DecodeError{Value: v}
		}
		out = append(out, dec.policy.Replacement().Rune)
	}

	rest := buf[n:]
	dec.npending = 0
	if len(rest) == 0 {
		return out, n, nil
	}

	if !final {
		dec.npending = copy(dec.pending[:], rest)
		return out, n, nil
	}

	if dec.policy.Fatal() {
		return dst, 0, &DecodeError{Remainder: append([]byte(nil), rest...)}
	}
	dec.bomSeen = true
	return append(out, dec.policy.Replacement().Rune), len(buf), nil
}

// Pending returns how many bytes are held back for the next Step.
func (dec *DecodeEngine) Pending() int {
	return dec.npending
}

// Reset drops the held back bytes and forgets about the BOM, as if the engine was new.
func (dec *DecodeEngine) Reset() {
	dec.npending = 0
	dec.bomSeen = false
}
