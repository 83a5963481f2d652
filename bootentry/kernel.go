// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

package bootentry

import (
	"sort"

	version "github.com/knqyf263/go-deb-version"
)

// Kernel is one discovered kernel image. Records are immutable once placed
// in a catalog; entries refer to them by pointer and must not outlive it.
type Kernel struct {
	Version string
	Image   string
}

// AssetKind classifies an auxiliary file attached to a kernel.
type AssetKind int

const (
	// AssetInitRD is an initial RAM disk image.
	AssetInitRD AssetKind = iota
	// AssetUnknown is anything we do not install by name. Unknown kinds
	// are skippable, not erroneous.
	AssetUnknown
)

// AuxiliaryFile is a non-kernel file belonging to a boot entry, such as an
// initrd.
type AuxiliaryFile struct {
	Kind AssetKind
	Path string
}

// Kernels is the caller-owned catalog of discovered kernels.
type Kernels []Kernel

// Sort orders the catalog oldest first by Debian version comparison, so the
// last element is the newest kernel. Versions that fail to parse sort by
// plain string comparison against everything, keeping the order total.
func (ks Kernels) Sort() {
	sort.SliceStable(ks, func(i, j int) bool {
		vi, erri := version.NewVersion(ks[i].Version)
		vj, errj := version.NewVersion(ks[j].Version)
		if erri != nil || errj != nil {
			return ks[i].Version < ks[j].Version
		}
		return vi.LessThan(vj)
	})
}
