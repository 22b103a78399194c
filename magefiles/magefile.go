//go:build mage

// Package main provides Mage build targets for stockbook.
//
// Usage:
//
//	mage build           Compile the stockbook binary to bin/
//	mage test            Run every test in the module
//	mage testUnit        Run package tests, skipping tests/integration
//	mage testIntegration Build the binary, then run tests/integration
//	mage cover           Run unit tests with a coverage profile
//	mage lint            Run golangci-lint
//	mage clean           Remove build and coverage artifacts
//	mage install         Install stockbook to GOPATH/bin
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName   = "stockbook"
	binaryPath   = "bin/stockbook"
	cmdDir       = "./cmd/stockbook"
	coverProfile = "coverage.out"
)

// Build compiles the stockbook binary to bin/.
func Build() error {
	if err := os.MkdirAll(filepath.Dir(binaryPath), 0o755); err != nil {
		return err
	}
	return sh.RunV("go", "build", "-v", "-o", binaryPath, cmdDir)
}

// Test runs every test in the module, integration included.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// unitPackages lists the module's packages minus the integration tree.
func unitPackages() ([]string, error) {
	out, err := sh.Output("go", "list", "./...")
	if err != nil {
		return nil, err
	}
	var pkgs []string
	for _, pkg := range strings.Fields(out) {
		if !strings.Contains(pkg, "/tests/integration") {
			pkgs = append(pkgs, pkg)
		}
	}
	return pkgs, nil
}

// TestUnit runs package tests, skipping tests/integration.
func TestUnit() error {
	pkgs, err := unitPackages()
	if err != nil {
		return err
	}
	return sh.RunV("go", append([]string{"test"}, pkgs...)...)
}

// TestIntegration builds the binary and runs the CLI integration tests.
func TestIntegration() error {
	mg.Deps(Build)
	return sh.RunV("go", "test", "./tests/integration/...")
}

// Cover runs unit tests with a coverage profile written to coverage.out.
func Cover() error {
	pkgs, err := unitPackages()
	if err != nil {
		return err
	}
	args := append([]string{"test", "-coverprofile", coverProfile}, pkgs...)
	return sh.RunV("go", args...)
}

// Lint runs golangci-lint over the module.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", coverProfile} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return sh.RunV("go", "clean")
}

// Install builds stockbook and copies it to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), binaryPath)
}
