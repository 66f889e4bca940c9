package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/harrisonrobin/duenote/pkg/model"
)

const (
	xdgAppName   = "duenote"
	snapshotFile = "snapshot.json"
)

// contents is what gets written to disk: the last successful fetch plus
// when it happened.
type contents struct {
	FetchedAt time.Time    `json:"fetched_at"`
	Result    model.Result `json:"result"`
}

// Store persists the last successful fetch so the dashboard can still
// render with -offline or while the service is unreachable.
type Store struct {
	Path string
}

func New() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return &Store{Path: filepath.Join(home, ".config", xdgAppName, snapshotFile)}, nil
}

// Load returns the saved result. A missing or unreadable snapshot is an
// error; the caller downgrades it to an empty result.
func (s *Store) Load() (model.Result, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return model.Empty(), err
	}
	defer f.Close()

	var c contents
	if err := json.NewDecoder(f).Decode(&c); err != nil {
		return model.Empty(), err
	}
	if c.Result.Notes == nil {
		c.Result.Notes = []model.Note{}
	}
	return c.Result, nil
}

func (s *Store) Save(res model.Result) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(contents{FetchedAt: time.Now(), Result: res})
}
