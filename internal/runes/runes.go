// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package runes iterates UTF-16 code units as runes and converts Go text types into code units.
//
// A rune is one of
//   - a single non-surrogate code unit,
//   - a high and low surrogate pair, collapsed into one astral scalar value,
//   - a lone surrogate, which is its own unrepresentable unit.
package runes

import (
	"unicode/utf8"

	"github.com/ssbc/utf32/internal/scalar"
)

// Rune is one classified unit of input text.
type Rune struct {
	// Value is the scalar value, or the surrogate itself if Lone is set.
	Value rune

	// Size is the number of code units the rune spans (1 or 2).
	Size int

	// Lone is set for a surrogate that is not part of a valid pair.
	Lone bool
}

// Iter walks a code unit slice with a two unit lookahead.
type Iter struct {
	units []uint16
	pos   int
}

// NewIter returns an iterator positioned at the first unit of units.
func NewIter(units []uint16) *Iter {
	return &Iter{units: units}
}

// Next returns the next rune. ok is false once all units are consumed.
func (it *Iter) Next() (r Rune, ok bool) {
	if it.pos >= len(it.units) {
		return Rune{}, false
	}

	u := it.units[it.pos]
	switch {
	case scalar.IsHighSurrogate(u):
		if it.pos+1 < len(it.units) {
			if next := it.units[it.pos+1]; scalar.IsLowSurrogate(next) {
				it.pos += 2
				return Rune{Value: scalar.Combine(u, next), Size: 2}, true
			}
		}
		r = Rune{Value: rune(u), Size: 1, Lone: true}

	case scalar.IsLowSurrogate(u):
		r = Rune{Value: rune(u), Size: 1, Lone: true}

	default:
		r = Rune{Value: rune(u), Size: 1}
	}

	it.pos++
	return r, true
}

// TrailingHigh reports whether the last unit is a high surrogate that could still pair with a following unit.
func TrailingHigh(units []uint16) bool {
	n := len(units)
	return n > 0 && scalar.IsHighSurrogate(units[n-1])
}

// DecodeUnit decodes the first code point of p.
// Three byte sequences in the surrogate range (ED A0 80 to ED BF BF) return the surrogate.
// Any other invalid or short sequence returns U+FFFD with size 1, like utf8.DecodeRune.
func DecodeUnit(p []byte) (u rune, size int) {
	if len(p) >= 3 && isSurrogateSeq(p[0], p[1], p[2]) {
		return surrogateOf(p[1], p[2]), 3
	}
	return utf8.DecodeRune(p)
}

// DecodeUnitInString is DecodeUnit for a string.
func DecodeUnitInString(s string) (u rune, size int) {
	if len(s) >= 3 && isSurrogateSeq(s[0], s[1], s[2]) {
		return surrogateOf(s[1], s[2]), 3
	}
	return utf8.DecodeRuneInString(s)
}

func isSurrogateSeq(b0, b1, b2 byte) bool {
	return b0 == 0xED && 0xA0 <= b1 && b1 <= 0xBF && 0x80 <= b2 && b2 <= 0xBF
}

func surrogateOf(b1, b2 byte) rune {
	return 0xD000 | rune(b1&0x3F)<<6 | rune(b2&0x3F)
}

// FullUnit reports whether p begins with a complete sequence, surrogate encodings included.
func FullUnit(p []byte) bool {
	if len(p) > 0 && len(p) < 3 && p[0] == 0xED {
		// utf8.FullRune gives up on ED A0..ED BF, those still need their third byte
		return len(p) == 2 && (p[1] < 0x80 || p[1] > 0xBF)
	}
	return utf8.FullRune(p)
}

// AppendBytes appends the code units of the UTF-8 (or WTF-8) text p to dst.
func AppendBytes(dst []uint16, p []byte) []uint16 {
	for len(p) > 0 {
		u, size := DecodeUnit(p)
		dst = appendRune(dst, u)
		p = p[size:]
	}
	return dst
}

// AppendString is AppendBytes for a string.
func AppendString(dst []uint16, s string) []uint16 {
	for len(s) > 0 {
		u, size := DecodeUnitInString(s)
		dst = appendRune(dst, u)
		s = s[size:]
	}
	return dst
}

// AppendRunes appends rs to dst. Runes in the surrogate range become that single code unit,
// runes outside of 0..0x10FFFF become U+FFFD.
func AppendRunes(dst []uint16, rs []rune) []uint16 {
	for _, r := range rs {
		if r < 0 || r > scalar.MaxRune {
			r = scalar.Replacement
		}
		dst = appendRune(dst, r)
	}
	return dst
}

func appendRune(dst []uint16, r rune) []uint16 {
	if r < 0x10000 {
		return append(dst, uint16(r))
	}
	r -= 0x10000
	return append(dst, uint16(0xD800+(r>>10)&0x3FF), uint16(0xDC00+r&0x3FF))
}

// CompletePrefix returns the length of the longest prefix of p that doesn't end in the middle of a sequence.
func CompletePrefix(p []byte) int {
	for i := len(p) - 1; i >= 0 && i >= len(p)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(p[i]) {
			continue
		}
		if FullUnit(p[i:]) {
			return len(p)
		}
		return i
	}
	return len(p)
}

// AppendWTF8 appends units to dst as UTF-8, writing lone surrogates as their three byte sequence.
func AppendWTF8(dst []byte, units []uint16) []byte {
	it := NewIter(units)
	for {
		r, ok := it.Next()
		if !ok {
			return dst
		}
		if r.Lone {
			dst = append(dst, 0xED, 0x80|byte(r.Value>>6)&0x3F, 0x80|byte(r.Value)&0x3F)
			continue
		}
		dst = utf8.AppendRune(dst, r.Value)
	}
}
