// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"github.com/ssbc/utf32/internal/runes"
	"github.com/ssbc/utf32/internal/scalar"
)

// Replacement is what a substituting codec puts in place of malformed input:
// Rune for decoders and its four byte group, Bytes, for encoders.
type Replacement struct {
	Rune  rune
	Bytes []byte
}

var (
	defaultReplacementBE = []byte{0x00, 0x00, 0xFF, 0xFD}
	defaultReplacementLE = []byte{0xFD, 0xFF, 0x00, 0x00}
)

// DefaultReplacement returns U+FFFD and its encoding in order.
func DefaultReplacement(order ByteOrder) Replacement {
	b := defaultReplacementBE
	if order == LittleEndian {
		b = defaultReplacementLE
	}
	return Replacement{
		Rune:  scalar.Replacement,
		Bytes: append([]byte(nil), b...),
	}
}

// ResolveReplacement encodes r in order. If r can't be encoded on its own,
// for instance because it is a surrogate, the default U+FFFD is returned instead.
func ResolveReplacement(r rune, order ByteOrder) Replacement {
	if r < 0 || r > scalar.MaxRune {
		return DefaultReplacement(order)
	}

	enc := NewEncodeEngine(order, FatalPolicy(), false)
	b, err := enc.Step(nil, runes.AppendRunes(nil, []rune{r}), true)
	if err != nil || len(b) != GroupSize {
		return DefaultReplacement(order)
	}

	return Replacement{Rune: r, Bytes: b}
}

// Policy says what happens to malformed input: either it is an error (fatal)
// or it is substituted with a Replacement.
type Policy struct {
	sub *Replacement
}

// FatalPolicy makes every malformed unit an error.
func FatalPolicy() Policy { return Policy{} }

// Substitute replaces malformed units with r.
func Substitute(r Replacement) Policy { return Policy{sub: &r} }

func (p Policy) Fatal() bool { return p.sub == nil }

// Replacement returns the substitute. It is the zero value for a fatal policy.
func (p Policy) Replacement() Replacement {
	if p.sub == nil {
		return Replacement{}
	}
	return *p.sub
}

// newPolicy builds the policy for the construction options of the public codecs.
// A zero replacement rune selects U+FFFD.
func newPolicy(fatal bool, replacement rune, order ByteOrder) Policy {
	if fatal {
		return FatalPolicy()
	}
	if replacement == 0 {
		return Substitute(DefaultReplacement(order))
	}
	return Substitute(ResolveReplacement(replacement, order))
}
