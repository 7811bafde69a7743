// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package mkv

import (
	"io"

	"github.com/pkg/errors"

	"github.com/ssbc/utf32/internal/persist"
)

func (s *Saver) Put(key persist.Key, data []byte) error {
	if data == nil {
		data = []byte{}
	}
	return errors.Wrap(s.db.Set(key, data), "persist/mkv: failed to put item")
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	data, err := s.db.Get(nil, key)
	if err != nil {
		return nil, errors.Wrap(err, "persist/mkv: failed to get item")
	}
	if data == nil {
		return nil, persist.ErrNotFound
	}
	return data, nil
}

func (s *Saver) List() ([]persist.Key, error) {
	var keys []persist.Key
	iter, err := s.db.SeekFirst()
	if err != nil {
		if err == io.EOF {
			return keys, nil
		}
		return nil, errors.Wrap(err, "persist/mkv: failed to seek")
	}
	for {
		k, _, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrap(err, "persist/mkv: failed to iterate")
		}

		keys = append(keys, k)
	}
	return keys, nil
}

func (s *Saver) Delete(key persist.Key) error {
	return errors.Wrap(s.db.Delete(key), "persist/mkv: failed to delete item")
}
