//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir     = "bin"
	binary     = binDir + "/spectrace"
	versionPkg = "github.com/dkoosis/spectrace/internal/version"
)

// Default target - build the binary
var Default = Build

// Build builds the spectrace binary
func Build() error {
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/spectrace")
}

// Test runs the test suite and renders it through spectrace
func Test() error {
	mg.Deps(Build)

	gotest := exec.Command("go", "test", "-json", "-race", "./...")
	gotest.Stderr = os.Stderr
	trace := exec.Command(binary, "--short")
	trace.Stdout = os.Stdout
	trace.Stderr = os.Stderr

	pipe, err := gotest.StdoutPipe()
	if err != nil {
		return fmt.Errorf("piping go test: %w", err)
	}
	trace.Stdin = pipe

	if err := trace.Start(); err != nil {
		return fmt.Errorf("starting spectrace: %w", err)
	}
	testErr := gotest.Run()
	traceErr := trace.Wait()
	if testErr != nil || traceErr != nil {
		return errors.Join(testErr, traceErr)
	}
	return nil
}

// Lint runs go vet and, when installed, golangci-lint
func Lint() error {
	if err := sh.RunV("go", "vet", "./..."); err != nil {
		return fmt.Errorf("vet failed: %w", err)
	}
	if _, err := exec.LookPath("golangci-lint"); err != nil {
		fmt.Println("golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	if err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./..."); err != nil {
		return fmt.Errorf("golangci-lint failed: %w", err)
	}
	return nil
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binDir)
}

func ldflags() string {
	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || version == "" {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil || commit == "" {
		commit = "unknown"
	}
	return strings.Join([]string{
		"-X " + versionPkg + ".Version=" + version,
		"-X " + versionPkg + ".CommitHash=" + commit,
		"-X " + versionPkg + ".BuildDate=" + time.Now().UTC().Format(time.RFC3339),
	}, " ")
}
