// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
	"go.mindeco.de/logging"

	"github.com/ssbc/utf32"
	"github.com/ssbc/utf32/stream"
)

const chunkSize = 32 * 1024

type encodeCommand struct {
	le, bom, fatal, strict *bool
	in, out                *string
}

func addEncodeCommand(app *kingpin.Application) {
	cmd := &encodeCommand{}
	c := app.Command("encode", "Encode UTF-8 text to UTF-32.").Action(cmd.run)
	cmd.le = c.Flag("le", "Write little endian instead of big endian.").Bool()
	cmd.bom = c.Flag("bom", "Start the output with a byte order mark.").Bool()
	cmd.fatal = c.Flag("fatal", "Fail on lone surrogates instead of writing U+FFFD.").Bool()
	cmd.strict = c.Flag("strict", "Reject input that isn't text.").Bool()
	cmd.in = c.Flag("in", "Input file, stdin if empty.").Short('i').String()
	cmd.out = c.Flag("out", "Output file, stdout if empty.").Short('o').String()
}

func (cmd *encodeCommand) run(_ *kingpin.ParseContext) error {
	in, err := openIn(*cmd.in)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOut(*cmd.out)
	if err != nil {
		return err
	}

	order := byteOrder(*cmd.le)
	opts := utf32.EncoderOptions{Fatal: *cmd.fatal, PrependBOM: *cmd.bom, Strict: *cmd.strict}
	err = encode(context.Background(), out, in, order, opts)
	if cerr := out.Close(); err == nil {
		err = errors.Wrap(cerr, "failed to close output")
	}
	if err != nil {
		return err
	}

	logging.Logger("encode").Log("event", "done", "encoding", order.Label())
	return nil
}

func encode(ctx context.Context, w io.Writer, r io.Reader, order utf32.ByteOrder, opts utf32.EncoderOptions) error {
	enc := stream.NewEncoderStream(stream.NewWriterSink(w), order, opts)
	return stream.Transcode(ctx, enc, stream.NewReaderSource(r, chunkSize, true))
}

type decodeCommand struct {
	le, fatal, ignoreBOM *bool
	in, out              *string
}

func addDecodeCommand(app *kingpin.Application) {
	cmd := &decodeCommand{}
	c := app.Command("decode", "Decode UTF-32 to UTF-8 text.").Action(cmd.run)
	cmd.le = c.Flag("le", "Read little endian instead of big endian.").Bool()
	cmd.fatal = c.Flag("fatal", "Fail on malformed input instead of writing U+FFFD.").Bool()
	cmd.ignoreBOM = c.Flag("ignore-bom", "Keep a leading byte order mark in the output.").Bool()
	cmd.in = c.Flag("in", "Input file, stdin if empty.").Short('i').String()
	cmd.out = c.Flag("out", "Output file, stdout if empty.").Short('o').String()
}

func (cmd *decodeCommand) run(_ *kingpin.ParseContext) error {
	in, err := openIn(*cmd.in)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := openOut(*cmd.out)
	if err != nil {
		return err
	}

	order := byteOrder(*cmd.le)
	opts := utf32.DecoderOptions{Fatal: *cmd.fatal, IgnoreBOM: *cmd.ignoreBOM}
	err = decode(context.Background(), out, in, order, opts)
	if cerr := out.Close(); err == nil {
		err = errors.Wrap(cerr, "failed to close output")
	}
	if err != nil {
		return err
	}

	logging.Logger("decode").Log("event", "done", "encoding", order.Label())
	return nil
}

func decode(ctx context.Context, w io.Writer, r io.Reader, order utf32.ByteOrder, opts utf32.DecoderOptions) error {
	dec := stream.NewDecoderStream(stream.NewWriterSink(w), order, opts)
	return stream.Transcode(ctx, dec, stream.NewReaderSource(r, chunkSize, false))
}
