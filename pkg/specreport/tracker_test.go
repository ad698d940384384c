package specreport

import (
	"strings"
	"testing"

	"github.com/dkoosis/spectrace/pkg/design"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_BreadcrumbFollowsBalancedPushPop(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil)
	assert.Equal(t, "", tr.Breadcrumb())

	steps := []struct {
		push string // empty means pop
		want string
	}{
		{push: "A", want: "A: "},
		{push: "B", want: "A > B: "},
		{push: "C", want: "A > B > C: "},
		{want: "A > B: "},
		{push: "D", want: "A > B > D: "},
		{want: "A > B: "},
		{want: "A: "},
		{want: ""},
	}
	for i, s := range steps {
		if s.push != "" {
			tr.Push(s.push)
		} else {
			require.True(t, tr.Pop(), "step %d", i)
		}
		assert.Equal(t, s.want, tr.Breadcrumb(), "step %d", i)
		assert.Equal(t, expectedCrumb(tr.Frames()), tr.Breadcrumb(), "step %d", i)
	}
}

func TestTracker_PopOnEmptyStaysAtZero(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil)
	assert.NotPanics(t, func() {
		assert.False(t, tr.Pop())
		assert.False(t, tr.Pop())
	})
	assert.Equal(t, 0, tr.Depth())
	assert.Equal(t, "", tr.Breadcrumb())

	tr.Push("A")
	assert.Equal(t, "A: ", tr.Breadcrumb())
}

func TestTracker_BreadcrumbUsesEmphasisRole(t *testing.T) {
	t.Parallel()

	style := &recordingStyle{}
	tr := NewTracker(style)
	tr.Push("A")
	tr.Push("B")

	assert.Equal(t, "<emphasis>A > B: </emphasis>", tr.Breadcrumb())

	tr.Pop()
	tr.Pop()
	assert.Equal(t, "", tr.Breadcrumb(), "empty breadcrumb must not be styled")
}

func TestTracker_FramesIsACopy(t *testing.T) {
	t.Parallel()

	tr := NewTracker(nil)
	tr.Push("A")
	frames := tr.Frames()
	frames[0] = "mutated"

	assert.Equal(t, []string{"A"}, tr.Frames())
}

func expectedCrumb(frames []string) string {
	if len(frames) == 0 {
		return ""
	}
	return strings.Join(frames, " > ") + ": "
}

// recordingStyle wraps text in <role> tags so tests can see which role was used.
type recordingStyle struct{}

func (recordingStyle) Style(role design.Role, s string) string {
	if role == design.RoleNone {
		return s
	}
	return "<" + role.String() + ">" + s + "</" + role.String() + ">"
}
