// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package stream runs the UTF-32 engines as luigi sinks.
//
// Each stream owns its engine for its whole lifetime, so a surrogate pair or a four byte group
// split over two chunks comes out the same as if it had arrived in one piece.
// A fatal error aborts the stream: the chunk that caused it produces no output,
// the downstream sink is closed with the error and every later call returns it.
package stream

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/ssbc/go-luigi"

	"github.com/ssbc/utf32"
)

// ErrClosed is returned when pouring into a stream that was already closed.
var ErrClosed = errors.New("utf32/stream: stream closed")

type errorCloser interface {
	CloseWithError(error) error
}

// closeWithError aborts sink, falling back to a plain Close if it can't carry the error.
func closeWithError(sink luigi.Sink, err error) error {
	if ec, ok := sink.(errorCloser); ok {
		return ec.CloseWithError(err)
	}
	return sink.Close()
}

// EncoderStream is a luigi.Sink that takes text chunks and pours UTF-32 chunks ([]byte) into the next sink.
type EncoderStream struct {
	l sync.Mutex

	dst    luigi.Sink
	order  utf32.ByteOrder
	opts   utf32.EncoderOptions
	engine *utf32.EncodeEngine

	err    error
	closed bool
}

var _ luigi.Sink = (*EncoderStream)(nil)

// NewEncoderStream returns a stream encoding into dst.
func NewEncoderStream(dst luigi.Sink, order utf32.ByteOrder, opts utf32.EncoderOptions) *EncoderStream {
	return &EncoderStream{
		dst:    dst,
		order:  order,
		opts:   opts,
		engine: utf32.NewEncodeEngine(order, opts.Policy(order), opts.PrependBOM),
	}
}

// Pour encodes one chunk. It accepts the same values as utf32.Encoder.Encode.
// A high surrogate at the end of the chunk waits for the next one.
func (s *EncoderStream) Pour(ctx context.Context, v interface{}) error {
	s.l.Lock()
	defer s.l.Unlock()

	if s.err != nil {
		return s.err
	}
	if s.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	units, err := utf32.TextUnits("pour", v, s.opts.Strict)
	if err != nil {
		return s.abort(err)
	}

	out, err := s.engine.Step(nil, units, false)
	if err != nil {
		return s.abort(err)
	}
	if len(out) == 0 {
		return nil
	}

	err = s.dst.Pour(ctx, out)
	return errors.Wrap(err, "utf32/stream: failed to pour encoded chunk")
}

// Close encodes what is still held back and closes the next sink.
func (s *EncoderStream) Close() error {
	s.l.Lock()
	defer s.l.Unlock()

	if s.err != nil {
		return s.err
	}
	if s.closed {
		return nil
	}
	s.closed = true

	out, err := s.engine.Step(nil, nil, true)
	if err != nil {
		return s.abort(err)
	}
	if len(out) > 0 {
		if err := s.dst.Pour(context.Background(), out); err != nil {
			return errors.Wrap(err, "utf32/stream: failed to pour final chunk")
		}
	}
	return s.dst.Close()
}

// CloseWithError passes an upstream failure on to the next sink.
func (s *EncoderStream) CloseWithError(err error) error {
	s.l.Lock()
	defer s.l.Unlock()

	if s.err != nil || s.closed {
		return nil
	}
	s.abort(err)
	return nil
}

func (s *EncoderStream) abort(err error) error {
	s.err = err
	s.closed = true
	closeWithError(s.dst, err)
	return err
}

// Encoding returns the label of the stream's byte order.
func (s *EncoderStream) Encoding() string { return s.order.Label() }

func (s *EncoderStream) Fatal() bool { return s.opts.Fatal }

// DecoderStream is a luigi.Sink that takes UTF-32 chunks ([]byte) and pours the decoded text (string) into the next sink.
type DecoderStream struct {
	l sync.Mutex

	dst    luigi.Sink
	order  utf32.ByteOrder
	opts   utf32.DecoderOptions
	engine *utf32.DecodeEngine

	err    error
	closed bool
}

var _ luigi.Sink = (*DecoderStream)(nil)

// NewDecoderStream returns a stream decoding into dst.
func NewDecoderStream(dst luigi.Sink, order utf32.ByteOrder, opts utf32.DecoderOptions) *DecoderStream {
	return &DecoderStream{
		dst:    dst,
		order:  order,
		opts:   opts,
		engine: utf32.NewDecodeEngine(order, opts.Policy(order), opts.IgnoreBOM),
	}
}

// Pour decodes one chunk, which must be a []byte. Trailing bytes of an incomplete group wait for the next chunk.
func (s *DecoderStream) Pour(ctx context.Context, v interface{}) error {
	s.l.Lock()
	defer s.l.Unlock()

	if s.err != nil {
		return s.err
	}
	if s.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var p []byte
	switch tv := v.(type) {
	case []byte:
		p = tv
	case nil:
	default:
		return s.abort(&utf32.ArgumentError{Op: "pour", Value: v})
	}

	rs, _, err := s.engine.Step(nil, p, false)
	if err != nil {
		return s.abort(err)
	}
	if len(rs) == 0 {
		return nil
	}

	err = s.dst.Pour(ctx, string(rs))
	return errors.Wrap(err, "utf32/stream: failed to pour decoded chunk")
}

// Close flushes an incomplete trailing group and closes the next sink.
func (s *DecoderStream) Close() error {
	s.l.Lock()
	defer s.l.Unlock()

	if s.err != nil {
		return s.err
	}
	if s.closed {
		return nil
	}
	s.closed = true

	rs, _, err := s.engine.Step(nil, nil, true)
	if err != nil {
		return s.abort(err)
	}
	if len(rs) > 0 {
		if err := s.dst.Pour(context.Background(), string(rs)); err != nil {
			return errors.Wrap(err, "utf32/stream: failed to pour final chunk")
		}
	}
	return s.dst.Close()
}

// CloseWithError passes an upstream failure on to the next sink.
func (s *DecoderStream) CloseWithError(err error) error {
	s.l.Lock()
	defer s.l.Unlock()

	if s.err != nil || s.closed {
		return nil
	}
	s.abort(err)
	return nil
}

func (s *DecoderStream) abort(err error) error {
	s.err = err
	s.closed = true
	closeWithError(s.dst, err)
	return err
}

// Encoding returns the label of the stream's byte order.
func (s *DecoderStream) Encoding() string { return s.order.Label() }

func (s *DecoderStream) Fatal() bool { return s.opts.Fatal }
