// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package textstore keeps text documents as UTF-32 in one of the persist backends.
package textstore

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ssbc/utf32"
	"github.com/ssbc/utf32/internal/persist"
	"github.com/ssbc/utf32/internal/persist/badger"
	"github.com/ssbc/utf32/internal/persist/fs"
	"github.com/ssbc/utf32/internal/persist/mkv"
	"github.com/ssbc/utf32/internal/persist/sqlite"
)

// Backends lists the names Open accepts.
var Backends = []string{"badger", "sqlite", "mkv", "fs"}

var ErrClosed = errors.New("textstore: store closed")

// IsNotFound returns whether err means that the key doesn't exist.
func IsNotFound(err error) bool {
	return persist.IsNotFound(err)
}

type Store struct {
	l      sync.Mutex
	closed bool

	s     persist.Saver
	order utf32.ByteOrder
	enc   *utf32.Encoder
}

const bom = 0xFEFF

// New returns a store that writes new documents in order. Documents written in the other order can still be read.
func New(s persist.Saver, order utf32.ByteOrder) *Store {
	return &Store{
		s:     s,
		order: order,
		enc: utf32.NewEncoder(order, utf32.EncoderOptions{
			Fatal:  true,
			Strict: true,
		}),
	}
}

// Open opens the named backend at path. badger and fs use path as a directory, sqlite and mkv as a file.
func Open(backend, path string, order utf32.ByteOrder) (*Store, error) {
	var (
		s   persist.Saver
		err error
	)
	switch backend {
	case "badger":
		s, err = badger.New(path)
	case "sqlite":
		s, err = sqlite.New(path)
	case "mkv":
		s, err = mkv.New(path)
	case "fs":
		s, err = fs.New(path)
	default:
		return nil, errors.Errorf("textstore: unknown backend %q", backend)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "textstore: failed to open %s backend", backend)
	}
	return New(s, order), nil
}

// Put stores text under key. Text with lone surrogates (in their WTF-8 form) is rejected.
func (st *Store) Put(key, text string) error {
	if key == "" {
		return errors.New("textstore: empty key")
	}

	body, err := st.enc.Encode(text)
	if err != nil {
		return errors.Wrapf(err, "textstore: failed to encode %q", key)
	}
	// always our own BOM, a leading U+FEFF of the text is content
	data := append(st.order.AppendScalar(nil, bom), body...)

	raw, err := marshalRecord(Record{
		Label: st.order.Label(),
		Fatal: true,
		Data:  data,
	})
	if err != nil {
		return err
	}

	st.l.Lock()
	defer st.l.Unlock()
	if st.closed {
		return ErrClosed
	}
	return errors.Wrapf(st.s.Put(persist.Key(key), raw), "textstore: failed to put %q", key)
}

// Get returns the text stored under key.
func (st *Store) Get(key string) (string, error) {
	st.l.Lock()
	if st.closed {
		st.l.Unlock()
		return "", ErrClosed
	}
	raw, err := st.s.Get(persist.Key(key))
	st.l.Unlock()
	if err != nil {
		return "", errors.Wrapf(err, "textstore: failed to get %q", key)
	}

	rec, err := unmarshalRecord(raw)
	if err != nil {
		return "", errors.Wrapf(err, "textstore: broken record %q", key)
	}

	order, err := utf32.ParseByteOrder(rec.Label)
	if err != nil {
		return "", errors.Wrapf(err, "textstore: broken record %q", key)
	}

	text, err := utf32.NewDecoder(order, utf32.DecoderOptions{Fatal: rec.Fatal}).Decode(rec.Data)
	if err != nil {
		return "", errors.Wrapf(err, "textstore: failed to decode %q", key)
	}
	return text, nil
}

// List returns the keys of all documents.
func (st *Store) List() ([]string, error) {
	st.l.Lock()
	defer st.l.Unlock()
	if st.closed {
		return nil, ErrClosed
	}

	keys, err := st.s.List()
	if err != nil {
		return nil, errors.Wrap(err, "textstore: failed to list keys")
	}

	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out, nil
}

func (st *Store) Delete(key string) error {
	st.l.Lock()
	defer st.l.Unlock()
	if st.closed {
		return ErrClosed
	}
	return errors.Wrapf(st.s.Delete(persist.Key(key)), "textstore: failed to delete %q", key)
}

// ByteOrder returns the order new documents are written in.
func (st *Store) ByteOrder() utf32.ByteOrder { return st.order }

// Close closes the backend. Later calls return ErrClosed.
func (st *Store) Close() error {
	st.l.Lock()
	defer st.l.Unlock()
	if st.closed {
		return nil
	}
	st.closed = true
	return errors.Wrap(st.s.Close(), "textstore: failed to close backend")
}
