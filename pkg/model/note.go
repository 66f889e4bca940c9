package model

import "time"

// Book is the notebook a note belongs to.
type Book struct {
	ID    string `json:"uuid"`
	Label string `json:"label"`
}

// Author is the account that wrote a note.
type Author struct {
	Name string `json:"name"`
	ID   string `json:"uuid"`
}

// Note represents one note from any source (live fetch or snapshot).
// It is read-only once constructed.
type Note struct {
	ID        string    `json:"uuid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Content   string    `json:"content"`
	AddedOn   int64     `json:"added_on"`
	Public    bool      `json:"public"`
	Sequence  int       `json:"usn"`
	Book      Book      `json:"book"`
	Author    Author    `json:"user"`
}

// Result is one run's worth of notes plus the server-reported total.
type Result struct {
	Notes []Note `json:"notes"`
	Total int    `json:"total"`
}

// Empty is the fail-soft result used whenever the fetch path breaks down.
func Empty() Result {
	return Result{Notes: []Note{}, Total: 0}
}
