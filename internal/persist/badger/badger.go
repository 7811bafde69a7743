// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package badger

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/ssbc/utf32/internal/persist"
)

// Saver keeps its items in a badger database, optionally below a key prefix.
type Saver struct {
	db *badger.DB

	prefix []byte
	shared bool
}

var _ persist.Saver = (*Saver)(nil)

// New opens (or creates) a badger database at path that is owned by the saver.
func New(path string) (*Saver, error) {
	db, err := badger.Open(Options(path))
	if err != nil {
		return nil, errors.Wrapf(err, "persist/badger: failed to open database %s", path)
	}
	return &Saver{db: db}, nil
}

// NewShared uses an already opened database. Every key is stored below prefix,
// so several savers can share db without seeing each others items.
// Closing a shared saver leaves db open.
func NewShared(db *badger.DB, prefix []byte) (*Saver, error) {
	if len(prefix) == 0 {
		return nil, errors.New("persist/badger: shared saver needs a prefix")
	}
	return &Saver{
		db:     db,
		prefix: append([]byte(nil), prefix...),
		shared: true,
	}, nil
}

func (s *Saver) Close() error {
	if s.shared {
		return nil
	}
	return s.db.Close()
}

func (s *Saver) key(k persist.Key) []byte {
	if len(s.prefix) == 0 {
		return k
	}
	full := make([]byte, 0, len(s.prefix)+len(k))
	full = append(full, s.prefix...)
	return append(full, k...)
}
