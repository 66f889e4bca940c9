package triage

import (
	"strings"
	"time"

	"github.com/harrisonrobin/duenote/pkg/duedate"
	"github.com/harrisonrobin/duenote/pkg/model"
)

// Category is the single bucket a note is assigned to.
type Category int

const (
	Urgent Category = iota
	Upcoming
	LongTerm
	Waiting
)

func (c Category) String() string {
	switch c {
	case Urgent:
		return "urgent"
	case Upcoming:
		return "upcoming"
	case LongTerm:
		return "long-term"
	case Waiting:
		return "waiting"
	}
	return "unknown"
}

// Classify assigns exactly one category given a note's content, its
// extracted due date, and today. Waiting-marked content wins outright;
// the embedded date only matters later for sort order within the
// bucket. Everything else buckets on whole days until due: under 7 is
// urgent (overdue included), under 14 is upcoming, the rest, sentinel
// included, is long term.
func Classify(content string, due, today time.Time) Category {
	if strings.HasPrefix(content, duedate.WaitingMarker) {
		return Waiting
	}
	switch d := DaysUntil(due, today); {
	case d < 7:
		return Urgent
	case d < 14:
		return Upcoming
	default:
		return LongTerm
	}
}

// DaysUntil counts whole calendar days from today to due. Both sides
// are collapsed to UTC midnights and differenced in Unix seconds; the
// sentinel sits far enough out that a time.Duration would overflow.
func DaysUntil(due, today time.Time) int {
	return int((midnight(due).Unix() - midnight(today).Unix()) / 86400)
}

// Today returns the current date with the time of day dropped. It is
// computed once per run and threaded through classification and
// rendering so a run that crosses midnight stays consistent.
func Today() time.Time {
	return midnight(time.Now())
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Buckets holds the four classification outcomes in display order.
type Buckets struct {
	Urgent   []model.Note
	Upcoming []model.Note
	LongTerm []model.Note
	Waiting  []model.Note
}

// Split assigns every note to exactly one bucket, preserving fetch
// order within each bucket.
func Split(notes []model.Note, today time.Time) Buckets {
	var b Buckets
	for _, n := range notes {
		switch Classify(n.Content, duedate.Extract(n.Content), today) {
		case Waiting:
			b.Waiting = append(b.Waiting, n)
		case Urgent:
			b.Urgent = append(b.Urgent, n)
		case Upcoming:
			b.Upcoming = append(b.Upcoming, n)
		default:
			b.LongTerm = append(b.LongTerm, n)
		}
	}
	return b
}
