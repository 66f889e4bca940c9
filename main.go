package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/harrisonrobin/duenote/pkg/colors"
	"github.com/harrisonrobin/duenote/pkg/config"
	"github.com/harrisonrobin/duenote/pkg/dnote"
	"github.com/harrisonrobin/duenote/pkg/model"
	"github.com/harrisonrobin/duenote/pkg/render"
	"github.com/harrisonrobin/duenote/pkg/snapshot"
	"github.com/harrisonrobin/duenote/pkg/triage"
)

func main() {
	// 1. Parse Flags
	offline := flag.Bool("offline", false, "Render from the last saved snapshot instead of fetching")
	reauth := flag.Bool("reauth", false, "Discard any cached session key before fetching")
	plain := flag.Bool("plain", false, "Disable color output")
	flag.Parse()

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: could not read configuration: %v", err)
	}

	// 3. Compute today once so a run crossing midnight stays consistent.
	today := triage.Today()

	snap, err := snapshot.New()
	if err != nil {
		log.Printf("Warning: snapshot store unavailable: %v", err)
	}

	// 4. Gather Notes (live fetch, or snapshot in offline mode)
	var result model.Result
	if *offline {
		result = loadSnapshot(snap)
	} else {
		result = fetchNotes(cfg, *reauth, snap)
	}

	// 5. Classify and Render
	books, err := colors.NewCache()
	if err != nil {
		log.Printf("Warning: failed to initialize book color cache: %v", err)
	}

	r := render.New(os.Stdout, render.Options{
		Today: today,
		Width: render.ContentWidth(result.Notes),
		Books: books,
		Plain: *plain,
	})

	if result.Total == 0 {
		r.Banner()
		return
	}

	r.Sections(triage.Split(result.Notes, today))

	if books != nil {
		if err := books.Save(); err != nil {
			log.Printf("Warning: failed to save book color cache: %v", err)
		}
	}
}

// fetchNotes runs the signin + listing round trip. Every failure is
// logged and downgraded to an empty result; the worst observable
// outcome is the "no notes found" banner.
func fetchNotes(cfg config.Config, reauth bool, snap *snapshot.Store) model.Result {
	if !cfg.HasCredentials() {
		log.Printf("Error: DNOTE_EMAIL or DNOTE_PASSWORD environment variable not set.")
		return model.Empty()
	}

	tokens, err := dnote.NewTokenStore()
	if err != nil {
		log.Printf("Warning: session key cache unavailable: %v", err)
	}
	if reauth && tokens != nil {
		if err := tokens.Clear(); err != nil {
			log.Printf("Warning: could not discard cached session key: %v", err)
		}
	}

	client := dnote.NewClient(cfg.BaseURL, cfg.Email, cfg.Password, cfg.Timeout, tokens)
	result, err := client.FetchNotes(context.Background())
	if err != nil {
		log.Printf("Failed to fetch notes: %v", err)
		return model.Empty()
	}

	if snap != nil {
		if err := snap.Save(result); err != nil {
			log.Printf("Warning: failed to save snapshot: %v", err)
		}
	}
	return result
}

func loadSnapshot(snap *snapshot.Store) model.Result {
	if snap == nil {
		return model.Empty()
	}
	result, err := snap.Load()
	if err != nil {
		log.Printf("Failed to load snapshot: %v", err)
		return model.Empty()
	}
	return result
}
