// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package sqlite stores items in a single table of a sqlite3 database.
package sqlite

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/ssbc/utf32/internal/persist"
)

const schema = `CREATE TABLE IF NOT EXISTS persisted_items (
	key  TEXT PRIMARY KEY NOT NULL,
	data BLOB NOT NULL
);`

type Saver struct {
	db *sql.DB
}

var _ persist.Saver = (*Saver)(nil)

// New opens the database file at path, creating it and its parent directory if needed.
func New(path string) (*Saver, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errors.Wrap(err, "persist/sqlite: failed to create parent directory")
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "persist/sqlite: failed to open %s", path)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "persist/sqlite: failed to create schema")
	}

	return &Saver{db: db}, nil
}

func (s *Saver) Close() error {
	return s.db.Close()
}
