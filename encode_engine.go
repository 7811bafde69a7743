// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"github.com/ssbc/utf32/internal/runes"
	"github.com/ssbc/utf32/internal/scalar"
)

// EncodeEngine turns UTF-16 code units into UTF-32 bytes, one chunk per Step.
// A high surrogate at the end of a chunk is held back so it can pair with the start of the next one.
//
// It is not safe for concurrent use.
type EncodeEngine struct {
	order      ByteOrder
	policy     Policy
	prependBOM bool

	pending    uint16
	hasPending bool

	bomDone bool
}

// NewEncodeEngine returns an engine with empty carry state.
// With prependBOM the output starts with U+FEFF unless the text already does.
func NewEncodeEngine(order ByteOrder, policy Policy, prependBOM bool) *EncodeEngine {
	return &EncodeEngine{
		order:      order,
		policy:     policy,
		prependBOM: prependBOM,
	}
}

// Step encodes src and appends the bytes to dst.
//
// If final is false, a trailing high surrogate is held back for the next call.
// If final is true, a held back surrogate that found no partner is a lone surrogate.
//
// Under a fatal policy a lone surrogate aborts the call and dst is returned as passed in,
// nothing of src is written. The engine needs a Reset before it can be used again.
func (enc *EncodeEngine) Step(dst []byte, src []uint16, final bool) ([]byte, error) {
	units := src
	if enc.hasPending {
		units = make([]uint16, 0, len(src)+1)
		units = append(units, enc.pending)
		units = append(units, src...)
		enc.hasPending = false
	}

	if !final && runes.TrailingHigh(units) {
		enc.pending = units[len(units)-1]
		enc.hasPending = true
		units = units[:len(units)-1]
	}

	out := dst
	it := runes.NewIter(units)
	for {
		r, ok := it.Next()
		if !ok {
			break
		}

		if enc.prependBOM && !enc.bomDone {
			enc.bomDone = true
			if r.Lone || r.Value != scalar.BOM {
				out = enc.order.AppendScalar(out, scalar.BOM)
			}
		}

		if !r.Lone {
			out = enc.order.AppendScalar(out, uint32(r.Value))
			continue
		}

		if enc.policy.Fatal() {
			return dst, &EncodeError{Surrogate: uint16(r.Value)}
		}
		out = append(out, enc.policy.Replacement().Bytes...)
	}

	if final && enc.prependBOM && !enc.bomDone {
		enc.bomDone = true
		out = enc.order.AppendScalar(out, scalar.BOM)
	}

	return out, nil
}

// Pending reports whether a high surrogate is held back for the next Step.
func (enc *EncodeEngine) Pending() bool {
	return enc.hasPending
}

// Reset drops a held back surrogate and allows the BOM to be written again.
func (enc *EncodeEngine) Reset() {
	enc.hasPending = false
	enc.bomDone = false
}
