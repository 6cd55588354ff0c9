// Package auth handles OAuth2 token management and persistence for the
// host process. Core logic never touches tokens directly; it receives an
// already-constructed mailbox adapter.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// ErrTokenNotSet indicates no OAuth token is available yet.
var ErrTokenNotSet = errors.New("no token defined")

const stateTTL = 5 * time.Minute

// Token manages the OAuth2 token with thread-safe access, optional disk
// persistence and CSRF-state bookkeeping for the authorization flow.
type Token struct {
	mu            sync.RWMutex
	cfg           *oauth2.Config
	token         *oauth2.Token
	persistPath   string
	pendingStates map[string]time.Time
}

// NewToken creates a Token manager, loading a previously persisted token
// when the file exists.
func NewToken(cfg *oauth2.Config, persistPath string) (*Token, error) {
	t := &Token{
		cfg:           cfg,
		persistPath:   persistPath,
		pendingStates: make(map[string]time.Time),
	}
	if persistPath == "" {
		return t, nil
	}

	f, err := os.Open(persistPath)
	defer func() { _ = f.Close() }()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("Token file %s doesn't exist yet, it will be created on shutdown", persistPath)

			return t, nil
		}

		return nil, fmt.Errorf("os.Open failed: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("json.NewDecoder.Decode failed: %w", err)
	}
	t.token = token

	return t, nil
}

// RedirectURL generates the authorization URL with a fresh random state.
func (t *Token) RedirectURL() (string, error) {
	state, err := t.newState()
	if err != nil {
		return "", fmt.Errorf("newState failed: %w", err)
	}

	return t.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (t *Token) newState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.pendingStates[state] = now.Add(stateTTL)

	for s, exp := range t.pendingStates {
		if exp.Before(now) {
			delete(t.pendingStates, s)
		}
	}

	return state, nil
}

func (t *Token) takeState(state string) bool {
	if state == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, exists := t.pendingStates[state]
	if !exists {
		return false
	}

	delete(t.pendingStates, state)

	return !time.Now().After(expiry)
}

// AuthorizeCode exchanges an authorization code for an access token after
// validating the state parameter.
func (t *Token) AuthorizeCode(ctx context.Context, code string, state string) error {
	if !t.takeState(state) {
		return errors.New("invalid or expired state parameter")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	tok, err := t.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("cfg.Exchange failed: %w", err)
	}

	t.token = tok

	return nil
}

// OAuthToken returns the current token, ErrTokenNotSet before authorization.
func (t *Token) OAuthToken() (*oauth2.Token, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.token == nil {
		return nil, ErrTokenNotSet
	}

	return t.token, nil
}

// Persist writes the token to disk, creating the parent directory when
// needed. A nil token or empty path is a no-op.
func (t *Token) Persist() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.persistPath == "" || t.token == nil {
		return nil
	}

	if dir := filepath.Dir(t.persistPath); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("os.MkdirAll failed: %w", err)
		}
	}

	f, err := os.OpenFile(t.persistPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	defer func() { _ = f.Close() }()
	if err != nil {
		return fmt.Errorf("os.OpenFile failed: %w", err)
	}

	if err := json.NewEncoder(f).Encode(t.token); err != nil {
		return fmt.Errorf("json.NewEncoder.Encode failed: %w", err)
	}

	return nil
}
