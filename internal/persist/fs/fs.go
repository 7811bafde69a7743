// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package fs stores every item in its own file below a base directory.
// File names are the hex encoded keys, writes replace files atomically.
package fs

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/pkg/errors"

	"github.com/ssbc/utf32/internal/persist"
)

const suffix = ".item"

type Saver struct {
	base string
}

var _ persist.Saver = (*Saver)(nil)

// New creates base if it doesn't exist yet.
func New(base string) (*Saver, error) {
	if err := os.MkdirAll(base, 0700); err != nil {
		return nil, errors.Wrap(err, "persist/fs: failed to create base directory")
	}
	return &Saver{base: base}, nil
}

func (s *Saver) path(key persist.Key) string {
	return filepath.Join(s.base, hex.EncodeToString(key)+suffix)
}

func (s *Saver) Put(key persist.Key, data []byte) error {
	err := renameio.WriteFile(s.path(key), data, 0600)
	return errors.Wrap(err, "persist/fs: failed to write item")
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, persist.ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "persist/fs: failed to read item")
	}
	return data, nil
}

func (s *Saver) List() ([]persist.Key, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, errors.Wrap(err, "persist/fs: failed to read base directory")
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), suffix))
	}
	sort.Strings(names)

	var keys []persist.Key
	for _, n := range names {
		k, err := hex.DecodeString(n)
		if err != nil {
			return nil, errors.Wrapf(err, "persist/fs: invalid item name %q", n)
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (s *Saver) Delete(key persist.Key) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "persist/fs: failed to remove item")
	}
	return nil
}

func (s *Saver) Close() error { return nil }
