// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// utf32conv converts between UTF-8 and UTF-32 and keeps UTF-32 documents in a store.
package main

import (
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
	"go.mindeco.de/logging"

	"github.com/ssbc/utf32"
)

var check = logging.CheckFatal

func main() {
	logging.SetupLogging(nil)

	app := newApp(os.Stdout)
	_, err := app.Parse(os.Args[1:])
	check(err)
}

// newApp sets up the commands. stdout receives what store get and list print.
func newApp(stdout io.Writer) *kingpin.Application {
	app := kingpin.New("utf32conv", "Convert between UTF-8 and UTF-32.")
	addEncodeCommand(app)
	addDecodeCommand(app)
	addStoreCommand(app, stdout)
	return app
}

func byteOrder(le bool) utf32.ByteOrder {
	if le {
		return utf32.LittleEndian
	}
	return utf32.BigEndian
}

// openIn returns stdin for an empty name or "-".
func openIn(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	return f, errors.Wrap(err, "failed to open input")
}

// openOut returns stdout for an empty name or "-".
func openOut(name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(name)
	return f, errors.Wrap(err, "failed to create output")
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
