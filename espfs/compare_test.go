// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

package espfs

import (
	"bytes"
	"io"

	"gopkg.in/check.v1"
)

type compareSuite struct {
	mapFsMixin

	savedDiagnostic func(string, string, error)
}

var _ = check.Suite(&compareSuite{})

func (s *compareSuite) SetUpTest(c *check.C) {
	s.mapFsMixin.SetUpTest(c)
	s.savedDiagnostic = CompareDiagnostic
	CompareDiagnostic = func(string, string, error) {}
}

func (s *compareSuite) TearDownTest(c *check.C) {
	CompareDiagnostic = s.savedDiagnostic
}

func (s *compareSuite) TestChangedFilesIdenticalExcluded(c *check.C) {
	s.writeFile(c, "/usr/lib/kernel/vmlinuz-6.1", []byte("kernel payload"))
	s.writeFile(c, "/boot/6.1.0/vmlinuz", []byte("kernel payload"))

	changed := ChangedFiles([]FilePair{{Source: "/usr/lib/kernel/vmlinuz-6.1", Dest: "/boot/6.1.0/vmlinuz"}})
	c.Check(changed, check.HasLen, 0)
}

func (s *compareSuite) TestChangedFilesContentDiffers(c *check.C) {
	// Equal sizes force the comparison down to the content digest.
	s.writeFile(c, "/src", []byte("payload a"))
	s.writeFile(c, "/dst", []byte("payload b"))

	changed := ChangedFiles([]FilePair{{Source: "/src", Dest: "/dst"}})
	c.Check(changed, check.DeepEquals, []FilePair{{Source: "/src", Dest: "/dst"}})
}

func (s *compareSuite) TestChangedFilesMissingDest(c *check.C) {
	s.writeFile(c, "/src", []byte("payload"))

	var diagSource, diagDest string
	var diagErr error
	CompareDiagnostic = func(source, dest string, err error) {
		diagSource, diagDest, diagErr = source, dest, err
	}

	changed := ChangedFiles([]FilePair{{Source: "/src", Dest: "/dst"}})
	c.Check(changed, check.DeepEquals, []FilePair{{Source: "/src", Dest: "/dst"}})
	// The discarded cause must stay observable.
	c.Check(diagSource, check.Equals, "/src")
	c.Check(diagDest, check.Equals, "/dst")
	c.Check(diagErr, check.NotNil)
}

// statOnlyFS fails any content read, proving metadata mismatches are
// decided without opening the files.
type statOnlyFS struct {
	FS
}

func (f statOnlyFS) Open(path string) (io.ReadSeekCloser, error) {
	panic("content read attempted for a pair already decided by metadata")
}

func (s *compareSuite) TestChangedFilesSizeMismatchSkipsContent(c *check.C) {
	s.writeFile(c, "/src", []byte("longer payload"))
	s.writeFile(c, "/dst", []byte("short"))
	appFs = statOnlyFS{appFs}

	changed := ChangedFiles([]FilePair{{Source: "/src", Dest: "/dst"}})
	c.Check(changed, check.DeepEquals, []FilePair{{Source: "/src", Dest: "/dst"}})
}

func (s *compareSuite) TestChangedFilesTypeMismatchSkipsContent(c *check.C) {
	s.writeFile(c, "/src", []byte(""))
	c.Assert(s.fs.Mkdir("/dst", 0755), check.IsNil)
	appFs = statOnlyFS{appFs}

	changed := ChangedFiles([]FilePair{{Source: "/src", Dest: "/dst"}})
	c.Check(changed, check.DeepEquals, []FilePair{{Source: "/src", Dest: "/dst"}})
}

func (s *compareSuite) TestChangedFilesPreservesOrder(c *check.C) {
	s.writeFile(c, "/src/a", []byte("same"))
	s.writeFile(c, "/dst/a", []byte("same"))
	s.writeFile(c, "/src/b", []byte("new b"))
	s.writeFile(c, "/dst/b", []byte("old b"))
	s.writeFile(c, "/src/c", []byte("fresh c"))

	changed := ChangedFiles([]FilePair{
		{Source: "/src/c", Dest: "/dst/c"},
		{Source: "/src/a", Dest: "/dst/a"},
		{Source: "/src/b", Dest: "/dst/b"},
	})
	c.Check(changed, check.DeepEquals, []FilePair{
		{Source: "/src/c", Dest: "/dst/c"},
		{Source: "/src/b", Dest: "/dst/b"},
	})
}

func (s *compareSuite) TestChangedFilesLargePayload(c *check.C) {
	// Repeating payload sized to not align with any hashing block size.
	payload := bytes.Repeat([]byte{0xde, 0xad, 0xbe, 0xef, 0x42}, 70001)
	s.writeFile(c, "/src", payload)
	s.writeFile(c, "/dst", payload)

	changed := ChangedFiles([]FilePair{{Source: "/src", Dest: "/dst"}})
	c.Check(changed, check.HasLen, 0)

	// Flip one byte in the middle; size and type still match.
	payload[len(payload)/2]++
	s.writeFile(c, "/dst", payload)

	changed = ChangedFiles([]FilePair{{Source: "/src", Dest: "/dst"}})
	c.Check(changed, check.HasLen, 1)
}
