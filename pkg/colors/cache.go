package colors

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"
)

type BookState struct {
	ColorID      string    `json:"color_id"`
	LastModified time.Time `json:"last_modified"`
}

// Cache assigns each book label a stable ANSI color for the rendered
// table, persisted between runs so a book keeps its color.
type Cache struct {
	Path  string
	Books map[string]*BookState `json:"books"`
	dirty bool
}

const (
	xdgAppName = "duenote"
	cacheFile  = "book_colors.json"
)

// palette is the pool of ANSI color codes handed out to books. Plain
// white and the red reserved for overdue dates are excluded.
var palette = []string{"2", "3", "4", "5", "6", "10", "11", "12", "13", "14"}

// DefaultColorID is used for notes without a book label.
const DefaultColorID = "7"

func NewCache() (*Cache, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".config", xdgAppName, cacheFile)

	cache := &Cache{
		Path:  path,
		Books: make(map[string]*BookState),
	}

	if _, err := os.Stat(path); err == nil {
		if err := cache.Load(); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

func (c *Cache) Load() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&c.Books)
}

func (c *Cache) Save() error {
	if !c.dirty {
		return nil
	}
	dir := filepath.Dir(c.Path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		log.Printf("Error creating book color cache directory: %v", err)
		return err
	}

	f, err := os.Create(c.Path)
	if err != nil {
		log.Printf("Error creating book color cache file: %v", err)
		return err
	}
	defer f.Close()
	err = json.NewEncoder(f).Encode(c.Books)
	if err == nil {
		c.dirty = false
	}
	return err
}

// GetColorID returns the ANSI color code for a book label, assigning
// one from the palette on first sight and evicting the least recently
// seen book when the palette runs out.
func (c *Cache) GetColorID(book string) string {
	if book == "" {
		return DefaultColorID
	}

	state, exists := c.Books[book]
	if exists {
		state.LastModified = time.Now()
		c.dirty = true
		return state.ColorID
	}

	return c.assignColor(book)
}

func (c *Cache) assignColor(book string) string {
	used := make(map[string]bool)
	for _, s := range c.Books {
		used[s.ColorID] = true
	}

	for _, id := range palette {
		if !used[id] {
			c.Books[book] = &BookState{
				ColorID:      id,
				LastModified: time.Now(),
			}
			c.dirty = true
			return id
		}
	}

	// Palette is full -> evict LRU (oldest modified)
	var oldestBook string
	var oldestTime time.Time
	first := true

	for b, s := range c.Books {
		if first || s.LastModified.Before(oldestTime) {
			oldestTime = s.LastModified
			oldestBook = b
			first = false
		}
	}

	if oldestBook != "" {
		recycledColor := c.Books[oldestBook].ColorID
		delete(c.Books, oldestBook)

		c.Books[book] = &BookState{
			ColorID:      recycledColor,
			LastModified: time.Now(),
		}
		c.dirty = true
		return recycledColor
	}

	return palette[0] // Fallback
}
