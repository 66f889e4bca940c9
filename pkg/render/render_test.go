package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/duenote/pkg/model"
	"github.com/harrisonrobin/duenote/pkg/triage"
)

var today = time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

func newTestRenderer(buf *bytes.Buffer, notes []model.Note) *Renderer {
	return New(buf, Options{
		Today: today,
		Width: ContentWidth(notes),
		Plain: true,
	})
}

func TestContentWidth(t *testing.T) {
	assert.Equal(t, MinContentWidth, ContentWidth(nil))

	short := []model.Note{{Content: "01 Jan 24 >>> Buy milk"}}
	assert.Equal(t, MinContentWidth, ContentWidth(short))

	long := strings.Repeat("x", 72)
	notes := []model.Note{
		{Content: "01 Jan 24 >>> Buy milk"},
		{Content: "01 Jan 24 >>> " + long},
	}
	assert.Equal(t, 72, ContentWidth(notes))
}

func TestSectionEmptyBucketRendersNothing(t *testing.T) {
	var buf bytes.Buffer
	newTestRenderer(&buf, nil).Section("Urgent:", nil)
	assert.Empty(t, buf.String())
}

func TestSectionSortsByDueDate(t *testing.T) {
	notes := []model.Note{
		{Content: "20 Jan 24 >>> later", Book: model.Book{Label: "work"}},
		{Content: "02 Jan 24 >>> sooner", Book: model.Book{Label: "work"}},
	}

	var buf bytes.Buffer
	newTestRenderer(&buf, notes).Section("Upcoming", notes)
	out := buf.String()

	require.Contains(t, out, "sooner")
	require.Contains(t, out, "later")
	assert.Less(t, strings.Index(out, "sooner"), strings.Index(out, "later"))
	assert.Contains(t, out, "02 Jan 24")
	assert.Contains(t, out, "20 Jan 24")
}

func TestSectionStableTieOrder(t *testing.T) {
	notes := []model.Note{
		{Content: "02 Jan 24 >>> first in fetch order"},
		{Content: "02 Jan 24 >>> second in fetch order"},
	}

	var buf bytes.Buffer
	newTestRenderer(&buf, notes).Section("Urgent:", notes)
	out := buf.String()

	assert.Less(t, strings.Index(out, "first in fetch order"), strings.Index(out, "second in fetch order"))
}

func TestSectionTitleCasesBookLabel(t *testing.T) {
	notes := []model.Note{
		{Content: "02 Jan 24 >>> read", Book: model.Book{Label: "bedtime reading"}},
	}

	var buf bytes.Buffer
	newTestRenderer(&buf, notes).Section("Urgent:", notes)
	assert.Contains(t, buf.String(), "Bedtime Reading")
}

func TestSectionNormalizesContent(t *testing.T) {
	notes := []model.Note{
		{Content: "(WAITING) >>> 15 Mar 25 >>> Reply to Alice", Book: model.Book{Label: "work"}},
	}

	var buf bytes.Buffer
	newTestRenderer(&buf, notes).Section("Waiting on Input from Others", notes)
	out := buf.String()

	assert.Contains(t, out, "Reply to Alice")
	assert.NotContains(t, out, "(WAITING)")
	assert.Contains(t, out, "15 Mar 25")
}

func TestSectionsFixedOrder(t *testing.T) {
	notes := []model.Note{
		{Content: "01 Jan 24 >>> overdue thing"},
		{Content: "18 Jan 24 >>> due next week"},
		{Content: "01 Mar 24 >>> someday"},
		{Content: "(WAITING) >>> 15 Mar 25 >>> Reply to Alice"},
	}

	var buf bytes.Buffer
	r := newTestRenderer(&buf, notes)
	r.Sections(triage.Split(notes, today))
	out := buf.String()

	headers := []string{"Urgent:", "Upcoming", "Longer Term", "Waiting on Input from Others"}
	last := -1
	for _, h := range headers {
		idx := strings.Index(out, h)
		require.NotEqual(t, -1, idx, "missing header %q", h)
		assert.Greater(t, idx, last, "header %q out of order", h)
		last = idx
	}
}

func TestSectionsSkipEmptyBuckets(t *testing.T) {
	notes := []model.Note{
		{Content: "01 Jan 24 >>> overdue thing"},
	}

	var buf bytes.Buffer
	r := newTestRenderer(&buf, notes)
	r.Sections(triage.Split(notes, today))
	out := buf.String()

	assert.Contains(t, out, "Urgent:")
	assert.NotContains(t, out, "Upcoming")
	assert.NotContains(t, out, "Longer Term")
	assert.NotContains(t, out, "Waiting on Input from Others")
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	newTestRenderer(&buf, nil).Banner()
	out := buf.String()

	assert.Contains(t, out, "No notes found")
	assert.Contains(t, out, "authentication key")
	assert.Contains(t, out, "check your credentials")
}
