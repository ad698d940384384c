// Package testjson decodes go test -json NDJSON streams.
package testjson

import (
	"strings"
	"time"
)

// Actions emitted by go test -json (see go doc test2json).
const (
	ActionStart  = "start"
	ActionRun    = "run"
	ActionPause  = "pause"
	ActionCont   = "cont"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionOutput = "output"
	ActionBench  = "bench"

	// Build events (Go 1.24+) precede the test events of a package that
	// failed to compile. They carry ImportPath rather than Package.
	ActionBuildOutput = "build-output"
	ActionBuildFail   = "build-fail"
)

// TestEvent represents a single event from go test -json output.
type TestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`

	// ImportPath identifies the package being built on build events,
	// e.g. "example.com/pkg [example.com/pkg.test]".
	ImportPath string `json:"ImportPath,omitempty"`
	// FailedBuild is set on a package fail event when the failure was a
	// build error; it names the ImportPath that failed.
	FailedBuild string `json:"FailedBuild,omitempty"`
}

// IsPackageEvent reports whether the event concerns the package as a whole.
func (e TestEvent) IsPackageEvent() bool {
	return e.Test == ""
}

// IsBuildEvent reports whether the event comes from the build step rather
// than from a test binary.
func (e TestEvent) IsBuildEvent() bool {
	return e.Action == ActionBuildOutput || e.Action == ActionBuildFail
}

// IsTerminal reports whether the action ends a test or package.
func (e TestEvent) IsTerminal() bool {
	switch e.Action {
	case ActionPass, ActionFail, ActionSkip:
		return true
	}
	return false
}

// SplitTest splits a test name into its parent tests and the innermost name:
// "TestA/b/c" yields ["TestA", "b"] and "c".
func SplitTest(name string) (parents []string, leaf string) {
	parts := strings.Split(name, "/")
	return parts[:len(parts)-1], parts[len(parts)-1]
}

// ShortPackage returns the last path segment of a package name.
func ShortPackage(pkg string) string {
	if i := strings.LastIndex(pkg, "/"); i >= 0 {
		return pkg[i+1:]
	}
	return pkg
}
