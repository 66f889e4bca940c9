package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/harrisonrobin/duenote/pkg/colors"
	"github.com/harrisonrobin/duenote/pkg/duedate"
	"github.com/harrisonrobin/duenote/pkg/model"
	"github.com/harrisonrobin/duenote/pkg/triage"
)

// MinContentWidth is the floor for the content column.
const MinContentWidth = 50

const (
	dateColumnWidth = 12
	bookColumnWidth = 15
)

// Options configures a Renderer.
type Options struct {
	// Today is the date-only value shared by the whole run; dates
	// strictly before it render as overdue.
	Today time.Time
	// Width is the content column width, normally ContentWidth(notes).
	Width int
	// Books assigns accent colors to book labels. May be nil.
	Books *colors.Cache
	// Plain disables color output entirely.
	Plain bool
}

// Renderer is an explicitly constructed rendering context. All output
// goes through its writer, so tests can capture it without touching
// process state.
type Renderer struct {
	out   io.Writer
	today time.Time
	books *colors.Cache
	title cases.Caser

	date    lipgloss.Style
	overdue lipgloss.Style
	content lipgloss.Style
	book    lipgloss.Style
	border  lipgloss.Style
}

func New(out io.Writer, opts Options) *Renderer {
	re := lipgloss.NewRenderer(out)
	if opts.Plain {
		re.SetColorProfile(termenv.Ascii)
	}

	width := opts.Width
	if width < MinContentWidth {
		width = MinContentWidth
	}

	return &Renderer{
		out:     out,
		today:   opts.Today,
		books:   opts.Books,
		title:   cases.Title(language.English),
		date:    re.NewStyle().Width(dateColumnWidth).Align(lipgloss.Center),
		overdue: re.NewStyle().Width(dateColumnWidth).Align(lipgloss.Center).Foreground(lipgloss.Color("9")),
		content: re.NewStyle().Width(width).Foreground(lipgloss.Color("11")),
		book:    re.NewStyle().Width(bookColumnWidth).Align(lipgloss.Center),
		border:  re.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// ContentWidth picks the shared content column width: the longest
// normalized content across all notes, floored at MinContentWidth, so
// the columns line up visually across sections.
func ContentWidth(notes []model.Note) int {
	w := MinContentWidth
	for _, n := range notes {
		if l := lipgloss.Width(duedate.Normalize(n.Content)); l > w {
			w = l
		}
	}
	return w
}

// Sections renders the four buckets in their fixed display order.
func (r *Renderer) Sections(b triage.Buckets) {
	r.Section("Urgent:", b.Urgent)
	r.Section("Upcoming", b.Upcoming)
	r.Section("Longer Term", b.LongTerm)
	r.Section("Waiting on Input from Others", b.Waiting)
}

// Section renders one bucket as a three-column table (due date,
// normalized content, book), sorted ascending by due date with ties
// kept in fetch order. An empty bucket renders nothing at all.
func (r *Renderer) Section(title string, notes []model.Note) {
	if len(notes) == 0 {
		return
	}

	fmt.Fprintf(r.out, "\n%s\n", title)

	sorted := make([]model.Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return duedate.Extract(sorted[i].Content).Before(duedate.Extract(sorted[j].Content))
	})

	overdue := make([]bool, len(sorted))
	bookStyles := make([]lipgloss.Style, len(sorted))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.border).
		BorderRow(false).
		Wrap(true)

	for i, n := range sorted {
		due := duedate.Extract(n.Content)
		overdue[i] = due.Before(r.today)
		bookStyles[i] = r.book.Foreground(lipgloss.Color(r.bookColor(n.Book.Label)))
		t.Row(due.Format(duedate.Layout), duedate.Normalize(n.Content), r.title.String(n.Book.Label))
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch col {
		case 0:
			if row >= 0 && row < len(overdue) && overdue[row] {
				return r.overdue
			}
			return r.date
		case 1:
			return r.content
		default:
			if row >= 0 && row < len(bookStyles) {
				return bookStyles[row]
			}
			return r.book
		}
	})

	fmt.Fprintln(r.out, t.Render())
}

// Banner prints the remediation hints shown when zero notes came back.
func (r *Renderer) Banner() {
	fmt.Fprintln(r.out, "No notes found. This could be due to:")
	fmt.Fprintln(r.out, "   - A problem with the API request")
	fmt.Fprintln(r.out, "   - An incorrect or expired authentication key")
	fmt.Fprintln(r.out, "   - No notes being available in the account")
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "Please check your credentials and try again.")
}

func (r *Renderer) bookColor(label string) string {
	if r.books == nil {
		return colors.DefaultColorID
	}
	return r.books.GetColorID(label)
}
