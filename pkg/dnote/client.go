package dnote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/harrisonrobin/duenote/pkg/model"
)

// Client talks to the notes API. Every failure is returned to the
// caller, which downgrades it to an empty result; nothing here is fatal.
type Client struct {
	baseURL  string
	email    string
	password string
	http     *http.Client
	tokens   *TokenStore
}

// NewClient creates a notes API client. tokens may be nil, in which
// case every call signs in from scratch.
func NewClient(baseURL, email, password string, timeout time.Duration, tokens *TokenStore) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		password: password,
		http:     &http.Client{Timeout: timeout},
		tokens:   tokens,
	}
}

// SignIn exchanges the account credentials for a bearer key and caches
// it for later runs.
func (c *Client) SignIn(ctx context.Context) (string, error) {
	body, err := json.Marshal(signinRequest{Email: c.email, Password: c.password})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/signin", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("signin request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("signin failed: %s", resp.Status)
	}

	var sr signinResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("failed to decode signin response: %w", err)
	}
	if sr.Key == "" {
		return "", errors.New("signin response carried no key")
	}

	if c.tokens != nil {
		if err := c.tokens.Save(sr.Key); err != nil {
			log.Printf("Warning: could not cache session key: %v", err)
		}
	}
	return sr.Key, nil
}

// FetchNotes retrieves the account's notes. A cached session key is
// tried first; if the server rejects it the key is discarded and the
// signin runs exactly once more.
func (c *Client) FetchNotes(ctx context.Context) (model.Result, error) {
	var key string
	cached := false
	if c.tokens != nil {
		if k, err := c.tokens.Load(); err == nil && k != "" {
			key, cached = k, true
		}
	}
	if key == "" {
		k, err := c.SignIn(ctx)
		if err != nil {
			return model.Empty(), err
		}
		key = k
	}

	res, status, err := c.listNotes(ctx, key)
	if err != nil && cached && (status == http.StatusUnauthorized || status == http.StatusForbidden) {
		if cerr := c.tokens.Clear(); cerr != nil {
			log.Printf("Warning: could not discard stale session key: %v", cerr)
		}
		key, err = c.SignIn(ctx)
		if err != nil {
			return model.Empty(), err
		}
		res, _, err = c.listNotes(ctx, key)
	}
	if err != nil {
		return model.Empty(), err
	}
	return res, nil
}

func (c *Client) listNotes(ctx context.Context, key string) (model.Result, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/notes", nil)
	if err != nil {
		return model.Empty(), 0, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return model.Empty(), 0, fmt.Errorf("notes request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.Empty(), resp.StatusCode, fmt.Errorf("notes request failed: %s", resp.Status)
	}

	res, err := ParseNotes(resp.Body)
	if err != nil {
		return model.Empty(), resp.StatusCode, err
	}
	return res, resp.StatusCode, nil
}

// ParseNotes decodes and validates a notes listing payload from an
// io.Reader. Any shape violation fails the whole payload closed.
func ParseNotes(r io.Reader) (model.Result, error) {
	var wire wireNotesResponse
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return model.Empty(), fmt.Errorf("failed to decode notes response: %w", err)
	}

	res := model.Result{Notes: make([]model.Note, 0, len(wire.Notes)), Total: wire.Total}
	for _, n := range wire.Notes {
		if err := n.validate(); err != nil {
			return model.Empty(), fmt.Errorf("invalid notes payload: %w", err)
		}
		res.Notes = append(res.Notes, n.toModel())
	}
	return res, nil
}
