// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package persisttest holds the tests every persist.Saver backend has to pass.
package persisttest

import (
	"testing"

	"github.com/ssbc/utf32/internal/persist"
)

// NewSaverFunc opens the saver stored at path. Opening the same path again must see the same items.
type NewSaverFunc func(path string) (persist.Saver, error)

var NewSaverFuncs map[string]NewSaverFunc

func init() {
	NewSaverFuncs = map[string]NewSaverFunc{}
}

func Register(name string, f NewSaverFunc) {
	NewSaverFuncs[name] = f
}

func RunTests(t *testing.T) {
	for name, newSaver := range NewSaverFuncs {
		t.Run(name+"/Simple", SaverSimple(newSaver))
		t.Run(name+"/Overwrite", SaverOverwrite(newSaver))
		t.Run(name+"/Delete", SaverDelete(newSaver))
		t.Run(name+"/Reopen", SaverReopen(newSaver))
	}
}
