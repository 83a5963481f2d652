// This file is part of bootform
// Copyright 2024 Ospack Developers
// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ospack/bootform/bootentry"
	"github.com/ospack/bootform/espfs"
)

func main() {
	root := flag.String("root", "/", "configured target root")
	bootDir := flag.String("boot", "/boot", "mount point of the boot partition")
	schemaName := flag.String("schema", "blsforme", "naming schema: legacy or blsforme")
	osName := flag.String("os-name", "", "os-release NAME of the target")
	osID := flag.String("os-id", "", "os-release ID of the target")
	kernelVersion := flag.String("kernel-version", "", "version of the kernel to plan for")
	kernelImage := flag.String("kernel-image", "", "path to the kernel image")
	var initrds []string
	flag.Func("initrd", "path to an initrd (repeatable)", func(p string) error {
		initrds = append(initrds, p)
		return nil
	})
	flag.Parse()

	var kind bootentry.SchemaKind
	switch *schemaName {
	case "legacy":
		kind = bootentry.Legacy
	case "blsforme":
		kind = bootentry.Blsforme
	default:
		log.Printf("Unknown schema %q", *schemaName)
		os.Exit(1)
	}
	if *kernelVersion == "" || *kernelImage == "" {
		log.Print("Both -kernel-version and -kernel-image are required")
		os.Exit(1)
	}

	schema := bootentry.Schema{
		Kind:      kind,
		OsRelease: bootentry.OsRelease{Name: *osName, ID: *osID},
	}
	kernels := bootentry.Kernels{{Version: *kernelVersion, Image: *kernelImage}}
	entry := bootentry.NewEntry(&kernels[0])
	if err := entry.LoadCmdline(*root); err != nil {
		log.Print(err)
		os.Exit(1)
	}

	fmt.Println("id:", schema.ID(entry))
	var snippets []string
	for _, cmdline := range entry.Cmdline {
		snippets = append(snippets, strings.TrimSpace(cmdline.Snippet))
	}
	if len(snippets) > 0 {
		fmt.Println("cmdline:", strings.Join(snippets, " "))
	}

	var pairs []espfs.FilePair
	if name, ok := schema.InstalledKernelName(entry); ok {
		pairs = append(pairs, espfs.FilePair{Source: *kernelImage, Dest: resolveDest(*bootDir, name)})
	}
	for _, initrd := range initrds {
		asset := bootentry.AuxiliaryFile{Kind: bootentry.AssetInitRD, Path: initrd}
		if name, ok := schema.InstalledAssetName(entry, asset); ok {
			pairs = append(pairs, espfs.FilePair{Source: initrd, Dest: resolveDest(*bootDir, name)})
		}
	}

	for _, pair := range espfs.ChangedFiles(pairs) {
		fmt.Printf("copy: %s -> %s\n", pair.Source, pair.Dest)
	}
}

// resolveDest places an install name under the boot directory, resolving
// the first path element against existing on-disk casing.
func resolveDest(bootDir, name string) string {
	if dir := path.Dir(name); dir != "." {
		return filepath.Join(espfs.JoinInsensitive(bootDir, dir), path.Base(name))
	}
	return espfs.JoinInsensitive(bootDir, name)
}
