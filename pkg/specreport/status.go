package specreport

import "github.com/dkoosis/spectrace/pkg/design"

// Result is the runner's verdict for a finished test.
// Any value other than the constants below is treated as unknown.
type Result string

const (
	ResultSkipped Result = "skipped"
	ResultFailed  Result = "failed"
	ResultPending Result = "pending"
	ResultSuccess Result = "success"
)

// Status is the display token rendered at the end of a test line.
type Status int

const (
	StatusNone Status = iota // no annotation (test start lines)
	StatusUnknown
	StatusSkipped
	StatusFailed
	StatusPending
	StatusOK
)

// StatusOf maps a runner result onto its display status.
func StatusOf(r Result) Status {
	switch r {
	case ResultSkipped:
		return StatusSkipped
	case ResultFailed:
		return StatusFailed
	case ResultPending:
		return StatusPending
	case ResultSuccess:
		return StatusOK
	default:
		return StatusUnknown
	}
}

// String returns the display token.
func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "UNKNOWN"
	case StatusSkipped:
		return "SKIPPED"
	case StatusFailed:
		return "FAIL"
	case StatusPending:
		return "PENDING"
	case StatusOK:
		return "OK"
	default:
		return ""
	}
}

// Role returns the styling role for the token.
func (s Status) Role() design.Role {
	switch s {
	case StatusSkipped:
		return design.RoleSkipped
	case StatusFailed:
		return design.RoleFailure
	case StatusPending:
		return design.RolePending
	case StatusOK:
		return design.RoleSuccess
	default:
		return design.RoleNone
	}
}

// Severity returns the log severity a line with this status is written at.
func (s Status) Severity() Severity {
	if s == StatusFailed {
		return SeverityError
	}
	return SeverityInfo
}
