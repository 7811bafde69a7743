// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

// Package persist is a minimal key-value interface with interchangeable backends.
package persist

import (
	"io"

	"github.com/pkg/errors"
)

type Key []byte

var ErrNotFound = errors.New("persist: item not found")

// IsNotFound returns whether err was caused by ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

//go:generate counterfeiter -o persistfakes/fake_saver.go . Saver

type Saver interface {
	Put(Key, []byte) error

	// Get returns ErrNotFound for keys that were never put or were deleted.
	Get(Key) ([]byte, error)

	List() ([]Key, error)

	// Delete is a no-op for keys that don't exist.
	Delete(Key) error

	io.Closer
}
