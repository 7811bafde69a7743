// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package badger

import (
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/ssbc/utf32/internal/persist"
)

func (s *Saver) Put(key persist.Key, data []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(s.key(key), data)
	})
	return errors.Wrap(err, "persist/badger: failed to put item")
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		it, err := txn.Get(s.key(key))
		if err != nil {
			return err
		}
		data, err = it.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, persist.ErrNotFound
	} else if err != nil {
		return nil, errors.Wrap(err, "persist/badger: failed to get item")
	}
	return data, nil
}

func (s *Saver) List() ([]persist.Key, error) {
	var keys []persist.Key

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = s.prefix

		iter := txn.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			k := iter.Item().KeyCopy(nil)
			keys = append(keys, persist.Key(k[len(s.prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "persist/badger: failed to list keys")
	}
	return keys, nil
}

func (s *Saver) Delete(rm persist.Key) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.key(rm))
	})
	return errors.Wrap(err, "persist/badger: failed to delete item")
}
