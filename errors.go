// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"fmt"

	"github.com/pkg/errors"
)

// ArgumentError is returned when the input of an operation has an unsupported type.
// It does not depend on the fatal setting.
type ArgumentError struct {
	Op    string
	Value interface{}
}

func (e *ArgumentError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("utf32: %s: missing input", e.Op)
	}
	return fmt.Sprintf("utf32: %s: unsupported input type %T", e.Op, e.Value)
}

// DecodeError is returned by fatal decoders for malformed input.
type DecodeError struct {
	// Value is the offending 32bit value. Unset for a truncated group.
	Value uint32

	// Remainder holds the trailing bytes of a final group shorter than four bytes.
	Remainder []byte
}

func (e *DecodeError) Error() string {
	if len(e.Remainder) > 0 {
		return fmt.Sprintf("utf32: decode error: truncated input, %d trailing byte(s)", len(e.Remainder))
	}
	return fmt.Sprintf("utf32: decode error: 0x%08X", e.Value)
}

// EncodeError is returned by fatal encoders for a lone surrogate.
type EncodeError struct {
	Surrogate uint16
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("utf32: encode error: U+%04X", e.Surrogate)
}

// IsArgumentError returns whether err was caused by an ArgumentError.
func IsArgumentError(err error) bool {
	_, ok := errors.Cause(err).(*ArgumentError)
	return ok
}

// IsDecodeError returns whether err was caused by a DecodeError.
func IsDecodeError(err error) bool {
	_, ok := errors.Cause(err).(*DecodeError)
	return ok
}

// IsEncodeError returns whether err was caused by an EncodeError.
func IsEncodeError(err error) bool {
	_, ok := errors.Cause(err).(*EncodeError)
	return ok
}
