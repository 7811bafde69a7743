// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package utf32

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeEngineCarry(t *testing.T) {
	r := require.New(t)

	eng := NewDecodeEngine(BigEndian, Substitute(DefaultReplacement(BigEndian)), false)
	input := groups(BigEndian, 0xFEFF, 'a', 0x1F600)

	out, n, err := eng.Step(nil, input[:6], false)
	r.NoError(err)
	r.Equal(4, n)
	r.Empty(out, "BOM is dropped")
	r.Equal(2, eng.Pending())

	out, n, err = eng.Step(out, input[6:9], false)
	r.NoError(err)
	r.Equal(4, n, "held back bytes count towards n")
	r.Equal([]rune{'a'}, out)
	r.Equal(1, eng.Pending())

	out, _, err = eng.Step(out, input[9:], true)
	r.NoError(err)
	r.Equal([]rune{'a', 0x1F600}, out)
	r.Equal(0, eng.Pending())
}

func TestDecodeEngineFatalKeepsDst(t *testing.T) {
	r := require.New(t)

	eng := NewDecodeEngine(LittleEndian, FatalPolicy(), false)
	dst := []rune{'x'}

	out, n, err := eng.Step(dst, groups(LittleEndian, 'a', 0x110000), true)
	r.Error(err)
	r.Equal(0, n)
	r.Equal([]rune{'x'}, out)

	derr, ok := err.(*DecodeError)
	r.True(ok)
	r.Equal(uint32(0x110000), derr.Value)
	r.Empty(derr.Remainder)

	eng.Reset()
	_, _, err = eng.Step(nil, []byte{1, 2, 3}, true)
	derr, ok = err.(*DecodeError)
	r.True(ok)
	r.Equal([]byte{1, 2, 3}, derr.Remainder)
}

func TestDecodeEngineReset(t *testing.T) {
	r := require.New(t)

	eng := NewDecodeEngine(BigEndian, Substitute(DefaultReplacement(BigEndian)), false)
	out, _, err := eng.Step(nil, groups(BigEndian, 0xFEFF, 0xFEFF), false)
	r.NoError(err)
	r.Equal([]rune{0xFEFF}, out)

	_, _, err = eng.Step(nil, []byte{0, 0}, false)
	r.NoError(err)
	r.Equal(2, eng.Pending())

	eng.Reset()
	r.Equal(0, eng.Pending())
	out, _, err = eng.Step(nil, groups(BigEndian, 0xFEFF, 'b'), true)
	r.NoError(err)
	r.Equal([]rune{'b'}, out)
}

func TestDecodeEngineIgnoreBOM(t *testing.T) {
	r := require.New(t)

	eng := NewDecodeEngine(BigEndian, FatalPolicy(), true)
	out, _, err := eng.Step(nil, groups(BigEndian, 0xFEFF, 'b'), true)
	r.NoError(err)
	r.Equal([]rune{0xFEFF, 'b'}, out)
}

func TestEncodeEngineCarry(t *testing.T) {
	r := require.New(t)

	eng := NewEncodeEngine(LittleEndian, Substitute(DefaultReplacement(LittleEndian)), true)

	out, err := eng.Step(nil, []uint16{0xD867}, false)
	r.NoError(err)
	r.Empty(out, "nothing is written before the first rune")
	r.True(eng.Pending())

	out, err = eng.Step(out, []uint16{0xDE3E, 'a', 0xD83D}, false)
	r.NoError(err)
	r.Equal(groups(LittleEndian, 0xFEFF, 0x29E3E, 'a'), out)
	r.True(eng.Pending())

	out, err = eng.Step(out, nil, true)
	r.NoError(err)
	r.Equal(groups(LittleEndian, 0xFEFF, 0x29E3E, 'a', 0xFFFD), out)
	r.False(eng.Pending())
}

func TestEncodeEngineHighBeforeHigh(t *testing.T) {
	r := require.New(t)

	eng := NewEncodeEngine(BigEndian, Substitute(DefaultReplacement(BigEndian)), false)
	out, err := eng.Step(nil, []uint16{0xD800}, false)
	r.NoError(err)
	out, err = eng.Step(out, []uint16{0xD867}, false)
	r.NoError(err)
	r.Equal(groups(BigEndian, 0xFFFD), out, "the first high surrogate is lone once another one follows")

	out, err = eng.Step(out, []uint16{0xDE3E}, true)
	r.NoError(err)
	r.Equal(groups(BigEndian, 0xFFFD, 0x29E3E), out)
}

func TestEncodeEngineFatalKeepsDst(t *testing.T) {
	r := require.New(t)

	eng := NewEncodeEngine(BigEndian, FatalPolicy(), false)
	dst := []byte{0xAA}

	out, err := eng.Step(dst, []uint16{'a', 0xDC00, 'b'}, false)
	r.Error(err)
	r.Equal([]byte{0xAA}, out)

	eerr, ok := err.(*EncodeError)
	r.True(ok)
	r.Equal(uint16(0xDC00), eerr.Surrogate)
}

func TestEncodeEngineBOMOnlyOnce(t *testing.T) {
	r := require.New(t)

	eng := NewEncodeEngine(BigEndian, FatalPolicy(), true)
	out, err := eng.Step(nil, []uint16{0xFEFF, 'a'}, false)
	r.NoError(err)
	r.Equal(groups(BigEndian, 0xFEFF, 'a'), out)

	out, err = eng.Step(nil, []uint16{0xFEFF}, true)
	r.NoError(err)
	r.Equal(groups(BigEndian, 0xFEFF), out)

	eng.Reset()
	out, err = eng.Step(nil, nil, true)
	r.NoError(err)
	r.Equal(groups(BigEndian, 0xFEFF), out, "reset allows a new BOM")
}
