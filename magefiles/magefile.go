//go:build mage

// Package main contains Mage build targets for xl2pdf developer tooling.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binName    = "xl2pdf"
	cmdPkg     = "./cmd/xl2pdf"
	versionVar = "github.com/agbru/xl2pdf/internal/app.Version"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the CLI binary into bin/. VERSION sets the embedded version.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	if runtime.GOOS == "windows" {
		out += ".exe"
	}
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	ldflags := fmt.Sprintf("-s -w -X %s=%s", versionVar, version)
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Generate regenerates the engine mocks.
func Generate() error {
	return sh.RunV("go", "run", "github.com/golang/mock/mockgen",
		"-source=internal/engine/engine.go",
		"-destination=internal/engine/mocks/mock_engine.go",
		"-package=mocks")
}

// Test runs the unit tests with the race detector.
func Test() error {
	mg.Deps(Generate)
	return sh.RunV("go", "test", "-race", "./internal/...")
}

// E2E builds the binary and runs the end-to-end tests.
func E2E() error {
	return sh.RunV("go", "test", "./test/e2e/...")
}

// Lint runs go vet and, when installed, golangci-lint.
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return err
	}
	if _, err := sh.Output("golangci-lint", "version"); err != nil {
		fmt.Println("golangci-lint not installed, skipping")
		return nil
	}
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}
