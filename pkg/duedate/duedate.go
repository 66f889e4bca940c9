package duedate

import (
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// Layout is the grammar's date shape: two-digit day, three-letter
	// month abbreviation, two-digit year ("01 Jan 24").
	Layout = "02 Jan 06"

	// WaitingMarker flags a note that is blocked on somebody else.
	WaitingMarker = "(WAITING)"

	datePattern = `\b\d{2} [A-Za-z]{3} \d{2}\b`
)

// Sentinel is the far-future date returned when no due date can be
// extracted. It sorts after every real date and always lands a note in
// the long-term bucket.
var Sentinel = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

var (
	dateRe          = regexp.MustCompile(datePattern)
	waitingPrefixRe = regexp.MustCompile(`^\(WAITING\) >>> ` + datePattern + ` >>> `)
	plainPrefixRe   = regexp.MustCompile(`^` + datePattern + ` >>> `)

	monthCase = cases.Title(language.English)
)

// Extract parses a due date out of note content.
//
// Content starting with WaitingMarker is scanned for the first
// "DD MMM YY" substring anywhere in the text. Any other content must
// carry the date in its first nine characters, with no fallback scan.
// A missing or invalid calendar date yields Sentinel, never an error:
// note content is user-authored free text and must not be able to
// break the run.
//
// Two-digit years follow time.Parse's pivot: 69-99 map to 19xx,
// 00-68 map to 20xx.
func Extract(content string) time.Time {
	if strings.HasPrefix(content, WaitingMarker) {
		if m := dateRe.FindString(content); m != "" {
			if t, err := parseDate(m); err == nil {
				return t
			}
		}
		return Sentinel
	}

	if len(content) < len(Layout) {
		return Sentinel
	}
	if t, err := parseDate(content[:len(Layout)]); err == nil {
		return t
	}
	return Sentinel
}

// Normalize strips the date-encoding preamble from content, leaving the
// human-authored body. Waiting notes lose "(WAITING) >>> <date> >>> ",
// plain notes lose a leading "<date> >>> "; anything that doesn't match
// those exact shapes is left alone apart from whitespace trimming.
//
// Normalize is idempotent: the stripped prefix no longer appears at the
// start of its own output.
func Normalize(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, WaitingMarker) {
		content = waitingPrefixRe.ReplaceAllString(content, "")
	} else {
		content = plainPrefixRe.ReplaceAllString(content, "")
	}
	return strings.TrimSpace(content)
}

// parseDate parses a "DD MMM YY" token. time.Parse insists on "Jan"
// casing while the grammar accepts any month casing, so the month
// letters are folded first.
func parseDate(s string) (time.Time, error) {
	if len(s) == len(Layout) {
		s = s[:3] + monthCase.String(s[3:6]) + s[6:]
	}
	return time.Parse(Layout, s)
}
