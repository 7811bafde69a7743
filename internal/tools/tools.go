// SPDX-FileCopyrightText: 2021 The margaret Authors
//
// SPDX-License-Identifier: MIT

//go:build tools
// +build tools

package tools

import (
	// generates internal/persist/persistfakes
	_ "github.com/maxbrunsfeld/counterfeiter/v6"
)

// This file pins the tools go generate runs, they are not imported by the built code.
