// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package mkv

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"modernc.org/kv"

	"github.com/ssbc/utf32/internal/persist"
)

// Saver keeps its items in a modernc.org/kv database file.
type Saver struct {
	db *kv.DB
}

var _ persist.Saver = (*Saver)(nil)

func (s *Saver) Close() error {
	return s.db.Close()
}

// New opens the database file at path or creates it if it doesn't exist.
func New(path string) (*Saver, error) {
	var s Saver

	opts := &kv.Options{}
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, errors.Wrap(err, "persist/mkv: failed to create parent directory")
		}
		s.db, err = kv.Create(path, opts)
		if err != nil {
			return nil, errors.Wrap(err, "persist/mkv: failed to create KV")
		}
	} else if err != nil {
		return nil, errors.Wrap(err, "persist/mkv: failed to stat path location")
	} else {
		s.db, err = kv.Open(path, opts)
		if err != nil {
			return nil, errors.Wrap(err, "persist/mkv: failed to open KV")
		}
	}

	return &s, nil
}
