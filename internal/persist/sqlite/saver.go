// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package sqlite

import (
	"database/sql"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/ssbc/utf32/internal/persist"
)

func (s *Saver) Put(key persist.Key, data []byte) error {
	hexKey := hex.EncodeToString(key)
	if data == nil {
		data = []byte{}
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO persisted_items (key, data) VALUES(?, ?)`, hexKey, data)
	return errors.Wrap(err, "persist/sqlite/put: failed to insert value")
}

func (s *Saver) Get(key persist.Key) ([]byte, error) {
	var data []byte
	hexKey := hex.EncodeToString(key)
	err := s.db.QueryRow(`SELECT data FROM persisted_items WHERE key = ?`, hexKey).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, persist.ErrNotFound
		}
		return nil, errors.Wrapf(err, "persist/sqlite/get(%s): failed to execute query", hexKey)
	}
	return data, nil
}

func (s *Saver) List() ([]persist.Key, error) {
	var keys []persist.Key
	rows, err := s.db.Query(`SELECT key FROM persisted_items ORDER BY key`)
	if err != nil {
		return nil, errors.Wrap(err, "persist/sqlite/list: failed to execute rows query")
	}
	defer rows.Close()

	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, "persist/sqlite/list: failed to scan row result")
		}
		bk, err := hex.DecodeString(k)
		if err != nil {
			return nil, errors.Wrapf(err, "persist/sqlite/list: invalid key: %q", k)
		}
		keys = append(keys, bk)
	}

	return keys, rows.Err()
}

func (s *Saver) Delete(key persist.Key) error {
	_, err := s.db.Exec(`DELETE FROM persisted_items WHERE key = ?`, hex.EncodeToString(key))
	return errors.Wrap(err, "persist/sqlite/delete: failed to delete value")
}
