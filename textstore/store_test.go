// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package textstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/ssbc/utf32"
	"github.com/ssbc/utf32/internal/persist"
	"github.com/ssbc/utf32/internal/persist/persistfakes"
)

func openTestStore(t *testing.T, backend string, order utf32.ByteOrder) (*Store, string) {
	base := filepath.Join("testrun", t.Name())
	os.RemoveAll(base)
	r := require.New(t)
	r.NoError(os.MkdirAll(base, 0700))

	path := base
	if backend == "sqlite" || backend == "mkv" {
		path = filepath.Join(base, "store")
	}

	st, err := Open(backend, path, order)
	r.NoError(err)
	return st, path
}

func TestStoreBackends(t *testing.T) {
	for _, backend := range Backends {
		t.Run(backend, func(t *testing.T) {
			r := require.New(t)

			st, path := openTestStore(t, backend, utf32.LittleEndian)
			r.Equal(utf32.LittleEndian, st.ByteOrder())

			keys, err := st.List()
			r.NoError(err)
			r.Len(keys, 0)

			_, err = st.Get("nope")
			r.True(IsNotFound(err), "unexpected error: %v", err)

			r.NoError(st.Put("greeting", "grüße, 世界 \U0001F600"))
			r.NoError(st.Put("empty", ""))
			r.NoError(st.Put("bom", "\uFEFFstarts with a BOM"))
			r.NoError(st.Put("bomx", "\uFEFFx"))

			got, err := st.Get("greeting")
			r.NoError(err)
			r.Equal("grüße, 世界 \U0001F600", got)

			got, err = st.Get("empty")
			r.NoError(err)
			r.Equal("", got)

			got, err = st.Get("bom")
			r.NoError(err)
			r.Equal("\uFEFFstarts with a BOM", got)

			got, err = st.Get("bomx")
			r.NoError(err)
			r.Equal("\uFEFFx", got)

			keys, err = st.List()
			r.NoError(err)
			r.ElementsMatch([]string{"greeting", "empty", "bom", "bomx"}, keys)

			r.NoError(st.Delete("empty"))
			_, err = st.Get("empty")
			r.True(IsNotFound(err))

			r.NoError(st.Close())
			r.NoError(st.Close())
			_, err = st.Get("greeting")
			r.Equal(ErrClosed, err)

			// reading works regardless of the order new documents are written in
			st, err = Open(backend, path, utf32.BigEndian)
			r.NoError(err)
			defer st.Close()

			got, err = st.Get("greeting")
			r.NoError(err)
			r.Equal("grüße, 世界 \U0001F600", got)
		})
	}
}

func TestStoreUnknownBackend(t *testing.T) {
	_, err := Open("floppy", "/dev/null", utf32.BigEndian)
	require.Error(t, err)
}

func TestStorePutRecord(t *testing.T) {
	r := require.New(t)

	var fake persistfakes.FakeSaver
	st := New(&fake, utf32.BigEndian)

	r.NoError(st.Put("k", "hi"))
	r.Equal(1, fake.PutCallCount())

	key, raw := fake.PutArgsForCall(0)
	r.Equal(persist.Key("k"), key)

	rec, err := unmarshalRecord(raw)
	r.NoError(err)
	r.Equal("utf-32be", rec.Label)
	r.True(rec.Fatal)
	r.Equal([]byte{0, 0, 0xFE, 0xFF, 0, 0, 0, 'h', 0, 0, 0, 'i'}, rec.Data)

	// a leading U+FEFF of the text is kept behind the stored BOM
	r.NoError(st.Put("b", "\uFEFFx"))
	_, raw = fake.PutArgsForCall(1)
	rec, err = unmarshalRecord(raw)
	r.NoError(err)
	r.Equal([]byte{0, 0, 0xFE, 0xFF, 0, 0, 0xFE, 0xFF, 0, 0, 0, 'x'}, rec.Data)
}

func TestStoreRejectsLoneSurrogates(t *testing.T) {
	r := require.New(t)

	var fake persistfakes.FakeSaver
	st := New(&fake, utf32.BigEndian)

	err := st.Put("k", "a\xed\xa0\x80")
	r.Error(err)
	r.True(utf32.IsEncodeError(err))
	r.Equal(0, fake.PutCallCount())

	r.Error(st.Put("", "text"))
}

func TestStoreGetRecords(t *testing.T) {
	r := require.New(t)

	var fake persistfakes.FakeSaver
	st := New(&fake, utf32.BigEndian)

	lenient, err := marshalRecord(Record{Label: "utf-32le", Fatal: false, Data: []byte{'a', 0, 0, 0, 0, 0xD8, 0, 0, 1}})
	r.NoError(err)
	fake.GetReturnsOnCall(0, lenient, nil)

	got, err := st.Get("lenient")
	r.NoError(err)
	r.Equal("a��", got)

	strict, err := marshalRecord(Record{Label: "utf-32le", Fatal: true, Data: []byte{0, 0xD8, 0, 0}})
	r.NoError(err)
	fake.GetReturnsOnCall(1, strict, nil)

	_, err = st.Get("strict")
	r.True(utf32.IsDecodeError(err))

	badLabel, err := marshalRecord(Record{Label: "utf-16", Data: nil})
	r.NoError(err)
	fake.GetReturnsOnCall(2, badLabel, nil)
	_, err = st.Get("label")
	r.Error(err)

	fake.GetReturnsOnCall(3, []byte{0xC1}, nil)
	_, err = st.Get("garbage")
	r.Error(err)

	r.Equal(persist.Key("lenient"), fake.GetArgsForCall(0))
}

func TestStoreBackendErrors(t *testing.T) {
	r := require.New(t)

	var fake persistfakes.FakeSaver
	st := New(&fake, utf32.BigEndian)

	errDisk := errors.New("disk on fire")
	fake.PutReturns(errDisk)
	fake.ListReturns(nil, errDisk)
	fake.DeleteReturns(errDisk)
	fake.CloseReturns(errDisk)

	r.Equal(errDisk, errors.Cause(st.Put("k", "v")))
	_, err := st.List()
	r.Equal(errDisk, errors.Cause(err))
	r.Equal(errDisk, errors.Cause(st.Delete("k")))
	r.Equal(errDisk, errors.Cause(st.Close()))
	r.Equal(1, fake.CloseCallCount())

	r.Equal(ErrClosed, st.Put("k", "v"))
	r.Equal(1, fake.PutCallCount())
}
