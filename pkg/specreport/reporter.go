package specreport

import (
	"strconv"
	"strings"

	"github.com/dkoosis/spectrace/pkg/design"
)

// EventStateChange tags every record the Reporter writes, so sinks can
// filter the trace from other log output.
const EventStateChange = "SPEC_STATE_CHANGE"

// Severity is the level a record is written at.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "info"
}

// Sink receives the rendered trace.
type Sink interface {
	// Record writes one tagged line at the given severity.
	Record(sev Severity, event, line string)
	// Separator writes a blank line between top-level suites.
	Separator()
}

// Styler decorates text for a semantic role. It must return s unchanged when
// color output is disabled.
type Styler interface {
	Style(role design.Role, s string) string
}

// TestEvent describes a test at start or end.
type TestEvent struct {
	Description string
	// Invocations counts attempts including the current one. Values below 1
	// are treated as 1.
	Invocations int
}

func (e TestEvent) attempts() int {
	if e.Invocations < 1 {
		return 1
	}
	return e.Invocations
}

// Reporter turns lifecycle events into trace lines.
type Reporter struct {
	sink    Sink
	style   Styler
	verbose bool
	suites  *Tracker
}

// New returns a Reporter writing to sink. verbose enables test start lines
// and skipped test lines; it corresponds to a debug or trace log level.
// A nil style renders plain text and a nil sink discards output.
func New(sink Sink, style Styler, verbose bool) *Reporter {
	if sink == nil {
		sink = discardSink{}
	}
	if style == nil {
		style = plainStyle{}
	}
	return &Reporter{
		sink:    sink,
		style:   style,
		verbose: verbose,
		suites:  NewTracker(style),
	}
}

// OnSuiteStart opens a suite. It writes nothing.
func (r *Reporter) OnSuiteStart(description string) {
	r.suites.Push(description)
}

// OnSuiteEnd closes the innermost suite. Closing the last open suite writes a
// separator. With no suite open the call is ignored.
func (r *Reporter) OnSuiteEnd() {
	if !r.suites.Pop() {
		return
	}
	if r.suites.Depth() == 0 {
		r.sink.Separator()
	}
}

// OnTestStart writes a line for a starting test in verbose mode only.
func (r *Reporter) OnTestStart(e TestEvent) {
	if !r.verbose {
		return
	}
	r.emit(e, StatusNone)
}

// OnTestEnd writes the result line for a finished test. Skipped tests are
// only shown in verbose mode; failures are written at error severity.
func (r *Reporter) OnTestEnd(e TestEvent, result Result) {
	status := StatusOf(result)
	if status == StatusSkipped && !r.verbose {
		return
	}
	r.emit(e, status)
}

// Line composes the text for e without writing it.
func (r *Reporter) Line(e TestEvent, status Status) string {
	var sb strings.Builder
	sb.WriteString(r.suites.Breadcrumb())
	sb.WriteString(r.style.Style(design.RoleMuted, e.Description))
	if n := e.attempts(); n > 1 {
		sb.WriteString(r.style.Style(design.RoleMuted, " [Retry #"+strconv.Itoa(n-1)+"]"))
	}
	if status != StatusNone {
		// Separate segments: the token's reset would otherwise strip the
		// muted color from the closing bracket.
		sb.WriteString(r.style.Style(design.RoleMuted, " ["))
		sb.WriteString(r.style.Style(status.Role(), status.String()))
		sb.WriteString(r.style.Style(design.RoleMuted, "]"))
	}
	return sb.String()
}

// Depth returns the number of open suites.
func (r *Reporter) Depth() int {
	return r.suites.Depth()
}

// Breadcrumb returns the current styled suite prefix.
func (r *Reporter) Breadcrumb() string {
	return r.suites.Breadcrumb()
}

// Verbose reports whether start and skipped lines are shown.
func (r *Reporter) Verbose() bool {
	return r.verbose
}

func (r *Reporter) emit(e TestEvent, status Status) {
	r.sink.Record(status.Severity(), EventStateChange, r.Line(e, status))
}

type plainStyle struct{}

func (plainStyle) Style(_ design.Role, s string) string { return s }

type discardSink struct{}

func (discardSink) Record(Severity, string, string) {}
func (discardSink) Separator()                      {}
