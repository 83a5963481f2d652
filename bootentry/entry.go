// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

package bootentry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// cmdlineDir is the drop-in directory of kernel command line fragments,
// relative to the target root.
const cmdlineDir = "usr/lib/kernel/cmdline.d"

// CmdlineEntry is one command line fragment. Name is the literal source
// filename; by convention it carries a sort-significant prefix such as
// "00-quiet" so fragments concatenate in a stable order. Snippet is the
// verbatim file content.
type CmdlineEntry struct {
	Name    string
	Snippet string
}

// Entry corresponds to a single kernel to be installed, together with any
// supplemental command line fragments discovered for it.
type Entry struct {
	kernel *Kernel

	// Sysroot overrides the configured target root for this entry, for
	// example when building an image rather than configuring the running
	// system. Empty means use the configured root.
	Sysroot string

	// Cmdline holds the fragments loaded by LoadCmdline, in filename order.
	Cmdline []CmdlineEntry
}

// NewEntry returns an entry for the given kernel. The kernel must stay
// alive in its catalog for as long as the entry is in use.
func NewEntry(kernel *Kernel) *Entry {
	return &Entry{kernel: kernel}
}

// Kernel returns the kernel this entry was created for.
func (e *Entry) Kernel() *Kernel { return e.kernel }

// LoadCmdline discovers the command line fragments under the entry's root
// and appends them to Cmdline. A missing cmdline.d directory is the normal
// "no overrides" case and loads nothing. Any fragment that cannot be read
// fails the whole load: a partial command line is worse than none.
func (e *Entry) LoadCmdline(configuredRoot string) error {
	root := e.Sysroot
	if root == "" {
		root = configuredRoot
	}
	dir := filepath.Join(root, cmdlineDir)

	children, err := appFs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("Could not read cmdline directory %s: %w", dir, err)
	}

	// Not every FS implementation sorts its directory listings, and the
	// fragment order decides the final command line.
	sort.Slice(children, func(i, j int) bool { return children[i].Name() < children[j].Name() })

	for _, child := range children {
		name := child.Name()
		snippet, err := readFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("Could not read cmdline fragment %s: %w", name, err)
		}
		e.Cmdline = append(e.Cmdline, CmdlineEntry{Name: name, Snippet: string(snippet)})
	}

	return nil
}

func readFile(path string) ([]byte, error) {
	f, err := appFs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
