// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

package espfs

import (
	"bytes"
	"io"
	"log"
	"os"

	"github.com/zeebo/blake3"
	"golang.org/x/sys/unix"
)

// FilePair is a candidate copy from Source to Dest.
type FilePair struct {
	Source string
	Dest   string
}

// CompareDiagnostic is called whenever a pair comparison hits an I/O error.
// The comparator treats such pairs as changed rather than failing the
// batch, so without this hook a permission problem would be silently
// converted into an extra copy. Replace it to route the cause elsewhere.
var CompareDiagnostic = func(source, dest string, err error) {
	log.Printf("Could not compare %s and %s, assuming changed: %v", source, dest, err)
}

// ChangedFiles returns the subsequence of pairs whose source and
// destination are known to differ, preserving the input order.
//
// Pairs that cannot be compared count as changed. Boot partitions are slow,
// write-cycle-limited and at risk of corruption on power loss, so we would
// rather copy once too often than miss an update; the discarded error still
// reaches CompareDiagnostic.
func ChangedFiles(pairs []FilePair) []FilePair {
	hasher := blake3.New()

	var changed []FilePair
	for _, pair := range pairs {
		same, err := filesIdentical(hasher, pair.Source, pair.Dest)
		if err != nil {
			CompareDiagnostic(pair.Source, pair.Dest, err)
			changed = append(changed, pair)
			continue
		}
		if !same {
			changed = append(changed, pair)
		}
	}
	return changed
}

// filesIdentical compares two files, cheapest check first: size and file
// type from metadata, then a blake3 digest of the content. The hasher is
// reused across calls and reset between files.
func filesIdentical(hasher *blake3.Hasher, a, b string) (bool, error) {
	fiA, err := appFs.Stat(a)
	if err != nil {
		return false, err
	}
	fiB, err := appFs.Stat(b)
	if err != nil {
		return false, err
	}
	if fiA.Size() != fiB.Size() || fiA.Mode().Type() != fiB.Mode().Type() {
		return false, nil
	}

	digestA, err := digestFile(hasher, a, fiA.Size())
	if err != nil {
		return false, err
	}
	digestB, err := digestFile(hasher, b, fiB.Size())
	if err != nil {
		return false, err
	}
	return bytes.Equal(digestA, digestB), nil
}

// mmapMin is the size from which digesting goes through a memory mapping.
// Kernel images and initrds run to hundreds of megabytes; mapping them
// avoids a copy through userspace buffers.
const mmapMin = 1 << 20

func digestFile(hasher *blake3.Hasher, path string, size int64) ([]byte, error) {
	f, err := appFs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	hasher.Reset()
	if of, ok := f.(*os.File); ok && size >= mmapMin && int64(int(size)) == size {
		data, err := unix.Mmap(int(of.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_PRIVATE)
		if err == nil {
			defer unix.Munmap(data)
			hasher.Write(data)
			return hasher.Sum(nil), nil
		}
		// Some filesystems refuse mmap; fall through and stream.
	}
	if _, err := io.Copy(hasher, f); err != nil {
		return nil, err
	}
	return hasher.Sum(nil), nil
}
