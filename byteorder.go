// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
)

// ByteOrder selects how the 32bit value of a code point is laid out in its four bytes.
// It is fixed per codec instance.
type ByteOrder uint8

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

// GroupSize is the number of bytes every code point takes.
const GroupSize = 4

// Label returns the encoding label, "utf-32be" or "utf-32le".
func (o ByteOrder) Label() string {
	if o == LittleEndian {
		return "utf-32le"
	}
	return "utf-32be"
}

func (o ByteOrder) String() string {
	switch o {
	case BigEndian:
		return "BigEndian"
	case LittleEndian:
		return "LittleEndian"
	default:
		return "ByteOrder(invalid)"
	}
}

func (o ByteOrder) binary() binary.ByteOrder {
	if o == LittleEndian {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// AppendScalar appends the four byte group of v to dst.
func (o ByteOrder) AppendScalar(dst []byte, v uint32) []byte {
	if o == LittleEndian {
		return binary.LittleEndian.AppendUint32(dst, v)
	}
	return binary.BigEndian.AppendUint32(dst, v)
}

// Scalar reads the 32bit value of the group at the start of p, which must hold at least four bytes.
func (o ByteOrder) Scalar(p []byte) uint32 {
	return o.binary().Uint32(p)
}

// ParseByteOrder maps an encoding label back to its byte order.
// utf-32be, utf-32le, be and le are accepted in any case.
func ParseByteOrder(label string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-32be", "utf32be", "be":
		return BigEndian, nil
	case "utf-32le", "utf32le", "le":
		return LittleEndian, nil
	}
	return BigEndian, errors.Errorf("utf32: unknown byte order label %q", label)
}
