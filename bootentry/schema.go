// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

// Package bootentry models boot entries for installed kernels and computes
// the names and paths they take on the boot partition.
package bootentry

import (
	"fmt"
	"path/filepath"
)

// OsRelease carries the identifying strings of the target OS. The values
// are opaque to this package; a collaborator sources them (typically from
// os-release) and we only substitute them into names.
type OsRelease struct {
	Name string
	ID   string
}

// SchemaKind selects one of the two boot entry naming conventions.
type SchemaKind int

const (
	// Legacy is the old flat convention: kernel and initrd files share one
	// directory and are distinguished by type-prefixed filenames.
	Legacy SchemaKind = iota
	// Blsforme is the Boot Loader Specification style convention: each
	// kernel's files live in a per-version directory.
	Blsforme
)

// Schema is the naming convention active for one installation target.
// Exactly one kind is in effect per target; the naming methods switch on it.
type Schema struct {
	Kind      SchemaKind
	OsRelease OsRelease
}

// ID returns the stable identifier for the entry under this schema.
func (s Schema) ID(e *Entry) string {
	switch s.Kind {
	case Blsforme:
		return fmt.Sprintf("%s-%s", s.OsRelease.ID, e.kernel.Version)
	default:
		return fmt.Sprintf("%s-%s", s.OsRelease.Name, e.kernel.Version)
	}
}

// InstalledKernelName returns the install-time name for the entry's kernel
// image, relative to the schema's kernel directory. The second return is
// false when the kernel image path has no extractable filename component,
// which means the item has no representable name under this schema and
// must be skipped, not treated as an error.
func (s Schema) InstalledKernelName(e *Entry) (string, bool) {
	switch s.Kind {
	case Blsforme:
		return fmt.Sprintf("%s/vmlinuz", e.kernel.Version), true
	default:
		base, ok := fileName(e.kernel.Image)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("kernel-%s", base), true
	}
}

// InstalledAssetName returns the install-time name for one auxiliary file
// of the entry. Only initrds have install names at present; every other
// asset kind yields no name under both schemas and is skippable.
func (s Schema) InstalledAssetName(e *Entry, asset AuxiliaryFile) (string, bool) {
	if asset.Kind != AssetInitRD {
		return "", false
	}
	base, ok := fileName(asset.Path)
	if !ok {
		return "", false
	}
	switch s.Kind {
	case Blsforme:
		return fmt.Sprintf("%s/%s", e.kernel.Version, base), true
	default:
		return fmt.Sprintf("initrd-%s", base), true
	}
}

// fileName extracts the final path component, reporting false for paths
// that do not end in one (empty, root, or paths ending in "." or "..").
func fileName(path string) (string, bool) {
	base := filepath.Base(path)
	switch base {
	case "", ".", "..", string(filepath.Separator):
		return "", false
	}
	return base, true
}
