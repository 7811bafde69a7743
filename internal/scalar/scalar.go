// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package scalar holds the code point predicates shared by the decode and encode engines.
package scalar

import "unicode/utf16"

const (
	// BOM is the byte order mark, U+FEFF.
	BOM = 0xFEFF

	// Replacement is U+FFFD, the default substitute for malformed input.
	Replacement = 0xFFFD

	// MaxRune is the largest Unicode code point.
	MaxRune = 0x10FFFF

	surrHigh = 0xD800
	surrLow  = 0xDC00
	surrEnd  = 0xE000
)

// IsScalarValue returns whether v is a Unicode scalar value, that is a code point outside of the surrogate range.
func IsScalarValue(v uint32) bool {
	return v <= MaxRune && !IsSurrogate(v)
}

// IsSurrogate returns whether v lies in [0xD800, 0xDFFF].
func IsSurrogate(v uint32) bool {
	return surrHigh <= v && v < surrEnd
}

func IsHighSurrogate(u uint16) bool {
	return surrHigh <= u && u < surrLow
}

func IsLowSurrogate(u uint16) bool {
	return surrLow <= u && u < surrEnd
}

// Combine returns the astral scalar value of the pair hi, lo.
// The caller must have checked both halves.
func Combine(hi, lo uint16) rune {
	return utf16.DecodeRune(rune(hi), rune(lo))
}
