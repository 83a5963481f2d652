// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

package bootentry

import (
	"io"
	"os"
)

// FS abstracts away the filesystem.
//
// This package only ever reads, so the surface is kept to the two
// operations the cmdline aggregator performs.
type FS interface {
	// Open behaves like os.Open()
	Open(path string) (io.ReadSeekCloser, error)
	// ReadDir behaves like os.ReadDir()
	ReadDir(path string) ([]os.DirEntry, error)
}

// realFS implements FS using the os package
type realFS struct{}

func (realFS) Open(path string) (io.ReadSeekCloser, error) { return os.Open(path) }
func (realFS) ReadDir(path string) ([]os.DirEntry, error)  { return os.ReadDir(path) }

// appFs is our default FS
var appFs FS = realFS{}
