// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package stream

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"

	"github.com/ssbc/utf32/internal/runes"
)

// DefaultChunkSize is used by NewReaderSource for sizes below one group.
const DefaultChunkSize = 32 * 1024

// NewReaderSource returns a source of []byte chunks read from r.
// In text mode a chunk never ends inside a UTF-8 sequence, the incomplete tail is kept for the next chunk.
func NewReaderSource(r io.Reader, size int, text bool) luigi.Source {
	if size < 4 {
		size = DefaultChunkSize
	}
	return &readerSource{
		r:    r,
		buf:  make([]byte, size),
		text: text,
	}
}

type readerSource struct {
	r    io.Reader
	buf  []byte
	held int
	text bool

	err error
}

func (src *readerSource) Next(ctx context.Context) (interface{}, error) {
	for src.err == nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := src.r.Read(src.buf[src.held:])
		total := src.held + n

		if err == io.EOF {
			src.err = luigi.EOS{}
			if total == 0 {
				break
			}
			src.held = 0
			return append([]byte(nil), src.buf[:total]...), nil
		} else if err != nil {
			src.err = errors.Wrap(err, "utf32/stream: failed to read chunk")
			break
		}

		cut := total
		if src.text {
			cut = runes.CompletePrefix(src.buf[:total])
		}
		if cut == 0 {
			src.held = total
			continue
		}

		chunk := append([]byte(nil), src.buf[:cut]...)
		src.held = copy(src.buf, src.buf[cut:total])
		return chunk, nil
	}
	return nil, src.err
}

// NewWriterSink returns a sink that writes []byte and string values to w.
// Closing it does not close w.
func NewWriterSink(w io.Writer) luigi.Sink {
	return &writerSink{w: w}
}

type writerSink struct {
	w io.Writer

	closed bool
	err    error
}

func (sink *writerSink) Pour(ctx context.Context, v interface{}) error {
	if sink.closed {
		return ErrClosed
	}

	var err error
	switch tv := v.(type) {
	case []byte:
		_, err = sink.w.Write(tv)
	case string:
		_, err = io.WriteString(sink.w, tv)
	default:
		return errors.Errorf("utf32/stream: can't write value of type %T", v)
	}
	return errors.Wrap(err, "utf32/stream: failed to write chunk")
}

func (sink *writerSink) Close() error {
	sink.closed = true
	return nil
}

// CloseWithError records err, the writer keeps whatever was written before.
func (sink *writerSink) CloseWithError(err error) error {
	sink.closed = true
	sink.err = err
	return nil
}

// Transcode pumps src into dst and closes dst. If pumping fails dst is aborted with the error.
func Transcode(ctx context.Context, dst luigi.Sink, src luigi.Source) error {
	err := luigi.Pump(ctx, dst, src)
	if err != nil {
		closeWithError(dst, err)
		return errors.Wrap(err, "utf32/stream: transcoding failed")
	}
	return errors.Wrap(dst.Close(), "utf32/stream: failed to close sink")
}
