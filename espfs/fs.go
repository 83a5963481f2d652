// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

// Package espfs helps a kernel installer treat the boot partition gently:
// it decides which candidate files actually changed before anything is
// copied, and resolves names against the case-insensitive (FAT) semantics
// such partitions usually have.
package espfs

import (
	"io"
	"os"
)

// FS abstracts away the filesystem.
//
// The comparator and resolver only read; writes stay with the caller.
type FS interface {
	// Open behaves like os.Open()
	Open(path string) (io.ReadSeekCloser, error)
	// Stat behaves like os.Stat()
	Stat(path string) (os.FileInfo, error)
	// ReadDir behaves like os.ReadDir()
	ReadDir(path string) ([]os.DirEntry, error)
}

// realFS implements FS using the os package
type realFS struct{}

func (realFS) Open(path string) (io.ReadSeekCloser, error) { return os.Open(path) }
func (realFS) Stat(path string) (os.FileInfo, error)       { return os.Stat(path) }
func (realFS) ReadDir(path string) ([]os.DirEntry, error)  { return os.ReadDir(path) }

// appFs is our default FS
var appFs FS = realFS{}
