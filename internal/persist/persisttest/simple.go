// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

package persisttest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ssbc/utf32/internal/persist"
)

func SaverSimple(f NewSaverFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)

		p, err := f(scratch(t))
		r.NoError(err)
		defer p.Close()

		l, err := p.List()
		r.NoError(err)
		r.Len(l, 0, "%v", l)

		k := persist.Key{0, 0, 0, 1}
		d, err := p.Get(k)
		r.True(persist.IsNotFound(err), "unexpected error: %v", err)
		r.Nil(d)

		testData := []byte("fooo")
		r.NoError(p.Put(k, testData))

		l, err = p.List()
		r.NoError(err)
		r.Len(l, 1)
		r.Equal(k, l[0])

		d, err = p.Get(k)
		r.NoError(err)
		r.Equal(testData, d)
	}
}

func SaverOverwrite(f NewSaverFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)

		p, err := f(scratch(t))
		r.NoError(err)
		defer p.Close()

		k := persist.Key("doc")
		r.NoError(p.Put(k, []byte("first")))
		r.NoError(p.Put(k, []byte("second")))

		d, err := p.Get(k)
		r.NoError(err)
		r.Equal([]byte("second"), d)

		l, err := p.List()
		r.NoError(err)
		r.Len(l, 1)
	}
}

func SaverDelete(f NewSaverFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)

		p, err := f(scratch(t))
		r.NoError(err)
		defer p.Close()

		keep, drop := persist.Key("keep"), persist.Key("drop")
		r.NoError(p.Put(keep, []byte{1}))
		r.NoError(p.Put(drop, []byte{2}))

		r.NoError(p.Delete(drop))
		r.NoError(p.Delete(persist.Key("never-there")))

		_, err = p.Get(drop)
		r.True(persist.IsNotFound(err), "unexpected error: %v", err)

		l, err := p.List()
		r.NoError(err)
		r.Equal([]persist.Key{keep}, l)
	}
}

func SaverReopen(f NewSaverFunc) func(*testing.T) {
	return func(t *testing.T) {
		r := require.New(t)

		p, err := f(scratch(t))
		r.NoError(err)

		k := persist.Key{0xFF, 0x00, 0x10}
		r.NoError(p.Put(k, []byte("persisted")))
		r.NoError(p.Close())

		p, err = f(filepath.Join("testrun", t.Name()))
		r.NoError(err)
		defer p.Close()

		d, err := p.Get(k)
		r.NoError(err)
		r.Equal([]byte("persisted"), d)
	}
}

// scratch returns an empty path for the test's data.
func scratch(t *testing.T) string {
	path := filepath.Join("testrun", t.Name())
	os.RemoveAll(path)
	return path
}
