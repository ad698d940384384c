package main

import "fmt"

// Exit codes for spectrace.
const (
	// ExitSuccess indicates no test failed.
	ExitSuccess = 0

	// ExitTestFailure indicates a test or package failed.
	ExitTestFailure = 1

	// ExitUsageError indicates bad flags or unusable input.
	ExitUsageError = 2

	// ExitConfigError indicates an invalid configuration.
	ExitConfigError = 3
)

// exitError carries the exit code for err up to run.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &exitError{code: ExitUsageError, err: fmt.Errorf(format, args...)}
}
