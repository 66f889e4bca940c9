package dnote

import (
	"errors"
	"fmt"
	"time"

	"github.com/harrisonrobin/duenote/pkg/model"
)

// Wire types mirror the notes API payloads exactly. The rest of the
// program only ever sees model.Note.

type wireBook struct {
	UUID  string `json:"uuid"`
	Label string `json:"label"`
}

type wireUser struct {
	Name string `json:"name"`
	UUID string `json:"uuid"`
}

type wireNote struct {
	UUID      string   `json:"uuid"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Content   string   `json:"content"`
	AddedOn   int64    `json:"added_on"`
	Public    bool     `json:"public"`
	USN       int      `json:"usn"`
	Book      wireBook `json:"book"`
	User      wireUser `json:"user"`
}

type wireNotesResponse struct {
	Notes []wireNote `json:"notes"`
	Total int        `json:"total"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	Key string `json:"key"`
}

// validate enforces the payload shape: the identifiers the rest of the
// run keys on must be present. A violation fails the whole fetch closed.
func (w wireNote) validate() error {
	if w.UUID == "" {
		return errors.New("note is missing uuid")
	}
	if w.Book.UUID == "" {
		return fmt.Errorf("note %s: book is missing uuid", w.UUID)
	}
	if w.User.UUID == "" {
		return fmt.Errorf("note %s: user is missing uuid", w.UUID)
	}
	return nil
}

func (w wireNote) toModel() model.Note {
	return model.Note{
		ID:        w.UUID,
		CreatedAt: parseTimestamp(w.CreatedAt),
		UpdatedAt: parseTimestamp(w.UpdatedAt),
		Content:   w.Content,
		AddedOn:   w.AddedOn,
		Public:    w.Public,
		Sequence:  w.USN,
		Book:      model.Book{ID: w.Book.UUID, Label: w.Book.Label},
		Author:    model.Author{Name: w.User.Name, ID: w.User.UUID},
	}
}

// parseTimestamp is lenient: the timestamps are informational only, so
// an unparseable one degrades to the zero time instead of failing the
// payload.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
