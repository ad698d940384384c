package specreport

import (
	"strings"

	"github.com/dkoosis/spectrace/pkg/design"
)

const (
	crumbSeparator  = " > "
	crumbTerminator = ": "
)

// Tracker maintains the stack of currently open suites and the breadcrumb
// derived from it. The breadcrumb is recomputed on every Push and Pop.
type Tracker struct {
	style  Styler
	frames []frame
	crumb  string
}

type frame struct {
	description string
}

// NewTracker returns an empty tracker. A nil style renders plain text.
func NewTracker(style Styler) *Tracker {
	if style == nil {
		style = plainStyle{}
	}
	return &Tracker{style: style}
}

// Push opens a suite.
func (t *Tracker) Push(description string) {
	t.frames = append(t.frames, frame{description: description})
	t.regenerate()
}

// Pop closes the innermost suite. It reports false and leaves the tracker
// untouched when no suite is open.
func (t *Tracker) Pop() bool {
	n := len(t.frames)
	if n == 0 {
		return false
	}
	t.frames[n-1] = frame{}
	t.frames = t.frames[:n-1]
	t.regenerate()
	return true
}

// Depth returns the number of open suites.
func (t *Tracker) Depth() int {
	return len(t.frames)
}

// Frames returns the open suite descriptions, outermost first.
func (t *Tracker) Frames() []string {
	out := make([]string, len(t.frames))
	for i, f := range t.frames {
		out[i] = f.description
	}
	return out
}

// Breadcrumb returns the styled prefix for lines rendered inside the current
// suite, e.g. "A > B: ". It is empty when no suite is open.
func (t *Tracker) Breadcrumb() string {
	return t.crumb
}

func (t *Tracker) regenerate() {
	if len(t.frames) == 0 {
		t.crumb = ""
		return
	}

	var sb strings.Builder
	for i, f := range t.frames {
		if i > 0 {
			sb.WriteString(crumbSeparator)
		}
		sb.WriteString(f.description)
	}
	sb.WriteString(crumbTerminator)
	t.crumb = t.style.Style(design.RoleEmphasis, sb.String())
}
