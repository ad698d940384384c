// Package logsink writes the test trace and the tool's own diagnostics
// through a charmbracelet/log logger.
package logsink

import (
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/dkoosis/spectrace/pkg/specreport"
)

// Format selects the record encoding.
type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatLogfmt Format = "logfmt"
)

// Formats lists the accepted formats.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatLogfmt}
}

// Options configures a Sink.
type Options struct {
	Level      log.Level
	Format     Format
	Color      bool
	Timestamps bool
	Prefix     string
}

// Sink is a leveled, structured log writer. It implements specreport.Sink and
// is safe for concurrent use.
type Sink struct {
	out    *lockedWriter
	logger *log.Logger
	level  log.Level
	format Format
}

var _ specreport.Sink = (*Sink)(nil)

// New returns a Sink writing to w.
func New(w io.Writer, opts Options) *Sink {
	if opts.Format == "" {
		opts.Format = FormatText
	}
	out := &lockedWriter{w: w}

	logger := log.NewWithOptions(out, log.Options{
		Level:           opts.Level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
		TimeFormat:      "15:04:05.000",
		Formatter:       formatter(opts.Format),
	})
	logger.SetStyles(styles())
	if opts.Color {
		logger.SetColorProfile(termenv.ANSI256)
	} else {
		logger.SetColorProfile(termenv.Ascii)
	}

	return &Sink{
		out:    out,
		logger: logger,
		level:  opts.Level,
		format: opts.Format,
	}
}

// Record writes line at sev, tagged with event.
func (s *Sink) Record(sev specreport.Severity, event, line string) {
	lvl := log.InfoLevel
	if sev == specreport.SeverityError {
		lvl = log.ErrorLevel
	}
	s.logger.Log(lvl, line, "event", event)
}

// Separator writes a blank line. Structured formats have no blank records, so
// it is a no-op for them.
func (s *Sink) Separator() {
	if s.format != FormatText {
		return
	}
	_, _ = s.out.Write([]byte{'\n'})
}

// Verbose reports whether the sink level is debug or trace.
func (s *Sink) Verbose() bool {
	return IsVerbose(s.level)
}

// Level returns the sink level.
func (s *Sink) Level() log.Level {
	return s.level
}

// Logger returns the underlying logger, for diagnostics that are not part of
// the trace.
func (s *Sink) Logger() *log.Logger {
	return s.logger
}

func formatter(f Format) log.Formatter {
	switch f {
	case FormatJSON:
		return log.JSONFormatter
	case FormatLogfmt:
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

func styles() *log.Styles {
	st := log.DefaultStyles()
	st.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRACE").
		Bold(true).
		MaxWidth(4).
		Foreground(lipgloss.Color("61"))
	// Trace lines carry their own styling and may contain tabs.
	st.Message = lipgloss.NewStyle().TabWidth(lipgloss.NoTabConversion)
	st.Keys["event"] = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	st.Values["event"] = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	return st
}

// lockedWriter serializes writes from the logger and Separator.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}
