// SPDX-FileCopyrightText: 2022 The margaret Authors
//
// SPDX-License-Identifier: MIT

//go:build lite
// +build lite

package badger

import (
	"github.com/dgraph-io/badger/v3"
)

const valueThreshold = 1 << 10

// Options returns badger options with small tables and caches, for devices with little memory.
func Options(dir string) badger.Options {
	return badger.DefaultOptions(dir).
		WithValueThreshold(valueThreshold).
		WithMemTableSize(1 << 24).
		WithValueLogFileSize(1 << 24).
		WithNumMemtables(2).
		WithNumLevelZeroTables(2).
		WithNumLevelZeroTablesStall(4).
		WithNumCompactors(2).
		WithIndexCacheSize(1 << 24).
		WithBlockCacheSize(1 << 24).
		WithLogger(nil)
}
