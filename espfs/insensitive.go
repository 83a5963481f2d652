// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

package espfs

import (
	"log"
	"path/filepath"

	"golang.org/x/text/cases"
)

// JoinInsensitive joins name onto baseDir, reusing the casing of an
// existing directory entry that matches case-insensitively. On a FAT boot
// partition "Linux" and "linux" are the same entry, and installing under
// fresh casing after an identifier change would otherwise shadow or
// duplicate the old one.
//
// Listing the directory is best effort: if baseDir is missing or
// unreadable the name is joined unchanged, as for a new entry. Multiple
// case-insensitive matches only happen on a corrupted or hand-edited
// partition; the first match in directory order wins and the anomaly is
// logged.
func JoinInsensitive(baseDir, name string) string {
	children, err := appFs.ReadDir(baseDir)
	if err != nil {
		return filepath.Join(baseDir, name)
	}

	fold := cases.Fold()
	want := fold.String(name)

	match := ""
	matches := 0
	for _, child := range children {
		if fold.String(child.Name()) == want {
			if matches == 0 {
				match = child.Name()
			}
			matches++
		}
	}
	if matches > 1 {
		log.Printf("%d case-insensitive matches for %q in %s, using %q", matches, name, baseDir, match)
	}
	if matches > 0 {
		return filepath.Join(baseDir, match)
	}
	return filepath.Join(baseDir, name)
}
