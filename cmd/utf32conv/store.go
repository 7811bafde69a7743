// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
	"go.mindeco.de/logging"

	"github.com/ssbc/utf32/textstore"
)

type storeCommand struct {
	backend *string
	db      *string
	le      *bool

	putKey, putFile *string
	getKey          *string
	deleteKey       *string

	stdout io.Writer
}

func addStoreCommand(app *kingpin.Application, stdout io.Writer) {
	cmd := &storeCommand{stdout: stdout}

	c := app.Command("store", "Keep UTF-32 documents in a database.")
	cmd.backend = c.Flag("backend", "Storage backend.").Default("badger").Enum(textstore.Backends...)
	cmd.db = c.Flag("db", "Database path.").Required().String()
	cmd.le = c.Flag("le", "Write new documents little endian.").Bool()

	put := c.Command("put", "Store a UTF-8 text file (or stdin) under key.").Action(cmd.put)
	cmd.putKey = put.Arg("key", "Document key.").Required().String()
	cmd.putFile = put.Arg("file", "Text file, stdin if empty.").String()

	get := c.Command("get", "Print the document stored under key.").Action(cmd.get)
	cmd.getKey = get.Arg("key", "Document key.").Required().String()

	c.Command("list", "List all document keys.").Action(cmd.list)

	del := c.Command("delete", "Remove the document stored under key.").Action(cmd.delete)
	cmd.deleteKey = del.Arg("key", "Document key.").Required().String()
}

func (cmd *storeCommand) open() (*textstore.Store, error) {
	st, err := textstore.Open(*cmd.backend, *cmd.db, byteOrder(*cmd.le))
	return st, errors.Wrap(err, "failed to open store")
}

func (cmd *storeCommand) put(_ *kingpin.ParseContext) error {
	in, err := openIn(*cmd.putFile)
	if err != nil {
		return err
	}
	defer in.Close()

	text, err := io.ReadAll(in)
	if err != nil {
		return errors.Wrap(err, "failed to read text")
	}

	st, err := cmd.open()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Put(*cmd.putKey, string(text)); err != nil {
		return err
	}

	logging.Logger("store").Log("event", "put", "key", *cmd.putKey, "backend", *cmd.backend)
	return nil
}

func (cmd *storeCommand) get(_ *kingpin.ParseContext) error {
	st, err := cmd.open()
	if err != nil {
		return err
	}
	defer st.Close()

	text, err := st.Get(*cmd.getKey)
	if textstore.IsNotFound(err) {
		return errors.Errorf("no document %q", *cmd.getKey)
	} else if err != nil {
		return err
	}

	_, err = io.WriteString(cmd.stdout, text)
	return err
}

func (cmd *storeCommand) list(_ *kingpin.ParseContext) error {
	st, err := cmd.open()
	if err != nil {
		return err
	}
	defer st.Close()

	keys, err := st.List()
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(cmd.stdout, k)
	}
	return nil
}

func (cmd *storeCommand) delete(_ *kingpin.ParseContext) error {
	st, err := cmd.open()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(*cmd.deleteKey); err != nil {
		return err
	}

	logging.Logger("store").Log("event", "deleted", "key", *cmd.deleteKey)
	return nil
}
