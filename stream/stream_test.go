// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package stream

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/utf32"
)

// collector records everything poured into it.
type collector struct {
	values []interface{}
	closed bool
	err    error
}

func (c *collector) Pour(_ context.Context, v interface{}) error {
	if c.closed {
		return errors.New("pour on closed collector")
	}
	c.values = append(c.values, v)
	return nil
}

func (c *collector) Close() error {
	c.closed = true
	return nil
}

func (c *collector) CloseWithError(err error) error {
	c.closed = true
	c.err = err
	return nil
}

func (c *collector) bytes() []byte {
	var out []byte
	for _, v := range c.values {
		out = append(out, v.([]byte)...)
	}
	return out
}

func (c *collector) text() string {
	var sb strings.Builder
	for _, v := range c.values {
		sb.WriteString(v.(string))
	}
	return sb.String()
}

func be(vs ...uint32) []byte {
	var out []byte
	for _, v := range vs {
		out = utf32.BigEndian.AppendScalar(out, v)
	}
	return out
}

func le(vs ...uint32) []byte {
	var out []byte
	for _, v := range vs {
		out = utf32.LittleEndian.AppendScalar(out, v)
	}
	return out
}

func TestEncoderStreamChunks(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	chunks := [][]uint16{
		{'A', 'B', 'C'},
		{0x3042},
		{0xD867},
		{},
		{'A'},
		{0xD867, 0xDE3E},
		{'A'},
		{0xDE3E},
		{'A'},
		{'A', 'A'},
		{0xD867},
		{0xDE3E},
		{'A'},
		{0x0000},
		{'A'},
	}

	var sink collector
	enc := NewEncoderStream(&sink, utf32.BigEndian, utf32.EncoderOptions{})
	for i, c := range chunks {
		r.NoError(enc.Pour(ctx, c), "chunk %d", i)
	}
	r.NoError(enc.Close())
	r.True(sink.closed)
	r.NoError(sink.err)

	want := be('A', 'B', 'C', 0x3042, 0xFFFD, 'A', 0x29E3E, 'A', 0xFFFD, 'A', 'A', 'A', 0x29E3E, 'A', 0x0000, 'A')
	r.Equal(want, sink.bytes())
}

func TestEncoderStreamTrailingHigh(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	enc := NewEncoderStream(&sink, utf32.BigEndian, utf32.EncoderOptions{})
	r.NoError(enc.Pour(ctx, "A"))
	r.NoError(enc.Pour(ctx, []uint16{0xD800}))
	r.Equal(be('A'), sink.bytes(), "high surrogate must wait for its partner")

	r.NoError(enc.Close())
	r.Equal(be('A', 0xFFFD), sink.bytes())
}

func TestEncoderStreamPairsWTF8AcrossChunks(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	enc := NewEncoderStream(&sink, utf32.LittleEndian, utf32.EncoderOptions{})
	r.NoError(enc.Pour(ctx, "x\xed\xa1\xa7"))
	r.NoError(enc.Pour(ctx, "\xed\xb8\xbey"))
	r.NoError(enc.Close())

	r.Equal(le('x', 0x29E3E, 'y'), sink.bytes())
}

func TestEncoderStreamBOM(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	enc := NewEncoderStream(&sink, utf32.LittleEndian, utf32.EncoderOptions{PrependBOM: true})
	r.NoError(enc.Pour(ctx, ""))
	r.Empty(sink.values, "no bytes before the first rune")
	r.NoError(enc.Pour(ctx, "a"))
	r.NoError(enc.Pour(ctx, "b"))
	r.NoError(enc.Close())
	r.Equal(le(0xFEFF, 'a', 'b'), sink.bytes())

	var empty collector
	enc = NewEncoderStream(&empty, utf32.LittleEndian, utf32.EncoderOptions{PrependBOM: true})
	r.NoError(enc.Close())
	r.Equal(le(0xFEFF), empty.bytes())
}

func TestEncoderStreamFatal(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	enc := NewEncoderStream(&sink, utf32.BigEndian, utf32.EncoderOptions{Fatal: true})
	r.True(enc.Fatal())
	r.Equal("utf-32be", enc.Encoding())

	r.NoError(enc.Pour(ctx, "ok"))
	err := enc.Pour(ctx, []uint16{'x', 0xDC00, 'y'})
	r.Error(err)
	r.True(utf32.IsEncodeError(err))
	r.Equal("utf32: encode error: U+DC00", err.Error())

	r.Equal(be('o', 'k'), sink.bytes(), "the failing chunk must not be written")
	r.True(sink.closed)
	r.Equal(err, sink.err)

	r.Equal(err, enc.Pour(ctx, "more"), "error is sticky")
	r.Equal(err, enc.Close())
}

func TestEncoderStreamFatalAtClose(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	enc := NewEncoderStream(&sink, utf32.BigEndian, utf32.EncoderOptions{Fatal: true})
	r.NoError(enc.Pour(ctx, []uint16{'a', 0xD800}))
	err := enc.Close()
	r.True(utf32.IsEncodeError(err))
	r.Equal(be('a'), sink.bytes())
	r.Equal(err, sink.err)
}

func TestEncoderStreamArguments(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	enc := NewEncoderStream(&sink, utf32.BigEndian, utf32.EncoderOptions{})
	r.NoError(enc.Pour(ctx, 42))
	r.NoError(enc.Pour(ctx, nil))
	r.NoError(enc.Close())
	r.Equal(be('4', '2'), sink.bytes())

	var strict collector
	enc = NewEncoderStream(&strict, utf32.BigEndian, utf32.EncoderOptions{Strict: true})
	err := enc.Pour(ctx, 42)
	r.True(utf32.IsArgumentError(err))
	r.True(strict.closed)
	r.Equal(err, enc.Pour(ctx, "a"))
}

func TestEncoderStreamClosed(t *testing.T) {
	r := require.New(t)

	var sink collector
	enc := NewEncoderStream(&sink, utf32.BigEndian, utf32.EncoderOptions{})
	r.NoError(enc.Close())
	r.NoError(enc.Close(), "second close is a no-op")
	r.Equal(ErrClosed, enc.Pour(context.Background(), "a"))
}

func TestEncoderStreamCanceled(t *testing.T) {
	r := require.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var sink collector
	enc := NewEncoderStream(&sink, utf32.BigEndian, utf32.EncoderOptions{})
	r.Equal(context.Canceled, enc.Pour(ctx, "a"))
	r.Empty(sink.values)
}

func TestDecoderStreamSplitGroups(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	input := le('A', 'B', 0x29E3E, 'D')

	var sink collector
	dec := NewDecoderStream(&sink, utf32.LittleEndian, utf32.DecoderOptions{})
	for i := 0; i < len(input); i += 3 {
		end := i + 3
		if end > len(input) {
			end = len(input)
		}
		r.NoError(dec.Pour(ctx, input[i:end]))
	}
	r.NoError(dec.Close())
	r.Equal("AB\U00029E3ED", sink.text())
}

func TestDecoderStreamMatchesOneShot(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	input := append(be(0xFEFF, 'h', 0xD800, 0x1F600, 0x110000), 0x00, 0x00)
	want, err := utf32.NewDecoder(utf32.BigEndian, utf32.DecoderOptions{}).Decode(input)
	r.NoError(err)
	r.Equal("h�\U0001F600��", want)

	for size := 1; size <= 8; size++ {
		var sink collector
		dec := NewDecoderStream(&sink, utf32.BigEndian, utf32.DecoderOptions{})
		for i := 0; i < len(input); i += size {
			end := i + size
			if end > len(input) {
				end = len(input)
			}
			r.NoError(dec.Pour(ctx, input[i:end]))
		}
		r.NoError(dec.Close())
		r.Equal(want, sink.text(), "chunk size %d", size)
	}
}

func TestDecoderStreamFatal(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	dec := NewDecoderStream(&sink, utf32.BigEndian, utf32.DecoderOptions{Fatal: true})
	r.NoError(dec.Pour(ctx, be('a')))

	err := dec.Pour(ctx, be('b', 0xD800))
	r.True(utf32.IsDecodeError(err))
	r.Equal("utf32: decode error: 0x0000D800", err.Error())
	r.Equal("a", sink.text())
	r.Equal(err, sink.err)
	r.Equal(err, dec.Close())
}

func TestDecoderStreamTruncatedAtClose(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	dec := NewDecoderStream(&sink, utf32.BigEndian, utf32.DecoderOptions{Fatal: true})
	r.NoError(dec.Pour(ctx, []byte{0x00, 0x00}))
	err := dec.Close()
	r.True(utf32.IsDecodeError(err))
	r.Equal("utf32: decode error: truncated input, 2 trailing byte(s)", err.Error())

	var lenient collector
	dec = NewDecoderStream(&lenient, utf32.BigEndian, utf32.DecoderOptions{})
	r.NoError(dec.Pour(ctx, []byte{0x00, 0x00, 0x00}))
	r.NoError(dec.Close())
	r.Equal("�", lenient.text())
}

func TestDecoderStreamArguments(t *testing.T) {
	r := require.New(t)

	var sink collector
	dec := NewDecoderStream(&sink, utf32.BigEndian, utf32.DecoderOptions{})
	err := dec.Pour(context.Background(), "text")
	r.True(utf32.IsArgumentError(err))
	r.True(sink.closed)
}

func TestTranscodeRoundTrip(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	text := strings.Repeat("grüße, 世界 \U0001F600 ", 200)

	var encoded bytes.Buffer
	enc := NewEncoderStream(NewWriterSink(&encoded), utf32.LittleEndian, utf32.EncoderOptions{PrependBOM: true})
	r.NoError(Transcode(ctx, enc, NewReaderSource(strings.NewReader(text), 7, true)))

	want, err := utf32.NewEncoder(utf32.LittleEndian, utf32.EncoderOptions{PrependBOM: true}).EncodeString(text)
	r.NoError(err)
	r.Equal(want, encoded.Bytes())

	var decoded bytes.Buffer
	dec := NewDecoderStream(NewWriterSink(&decoded), utf32.LittleEndian, utf32.DecoderOptions{})
	r.NoError(Transcode(ctx, dec, NewReaderSource(bytes.NewReader(encoded.Bytes()), 5, false)))
	r.Equal(text, decoded.String())
}

func TestTranscodeAbortsOnError(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	var sink collector
	dec := NewDecoderStream(&sink, utf32.BigEndian, utf32.DecoderOptions{Fatal: true})
	err := Transcode(ctx, dec, NewReaderSource(bytes.NewReader(be('a', 0x110000, 'b')), 4, false))
	r.Error(err)
	r.True(utf32.IsDecodeError(err))
	r.Equal("a", sink.text())
	r.True(sink.closed)
}

func TestReaderSourceKeepsRunesWhole(t *testing.T) {
	r := require.New(t)
	ctx := context.Background()

	src := NewReaderSource(strings.NewReader("aあ\U0001F600"), 4, true)

	var chunks []string
	for {
		v, err := src.Next(ctx)
		if err != nil {
			r.True(luigi.IsEOS(err), "unexpected error %v", err)
			break
		}
		chunks = append(chunks, string(v.([]byte)))
	}
	r.Equal([]string{"aあ", "\U0001F600"}, chunks)
}
