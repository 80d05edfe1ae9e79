// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the wishlist project using Mage.
//
// Usage:
//
//	mage build          Compile wishlist binary to bin/
//	mage test:all       Run all tests
//	mage test:race      Run all tests with the race detector
//	mage test:cover     Run all tests and write coverage.out
//	mage lint           Run go vet and golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install wishlist to GOPATH/bin
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo       = "go"
	binGit      = "git"
	binaryName  = "wishlist"
	binaryDir   = "bin"
	cmdDir      = "./cmd/wishlist"
	versionVar  = "github.com/mesh-intelligence/wishlist/internal/cli.Version"
	coverageOut = "coverage.out"
)

// Build compiles the wishlist binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v",
		"-ldflags", "-X "+versionVar+"="+version(),
		"-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := os.Remove(coverageOut); err != nil && !os.IsNotExist(err) {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// version returns the latest git tag without its leading "v", or "dev"
// outside a tagged checkout.
func version() string {
	out, err := sh.Output(binGit, "describe", "--tags", "--always", "--dirty")
	if err != nil || out == "" {
		return "dev"
	}
	return strings.TrimPrefix(out, "v")
}
