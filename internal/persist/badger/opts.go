// SPDX-FileCopyrightText: 2022 The margaret Authors
//
// SPDX-License-Identifier: MIT

//go:build !lite
// +build !lite

package badger

import (
	"github.com/dgraph-io/badger/v3"
)

// Documents above valueThreshold bytes go to the value log, smaller ones stay in the LSM tree.
const valueThreshold = 4 << 10

// Options returns the badger options used for a document database at dir.
// Failures reach the caller as errors, so badger's own logger stays off.
func Options(dir string) badger.Options {
	return badger.DefaultOptions(dir).
		WithValueThreshold(valueThreshold).
		WithLogger(nil)
}
