// Package gservice adapts the Gmail API to the narrow remote-mailbox
// surface the assistant needs: list unread, send, label, trash, mark
// read. All calls go through a per-process throttle.
package gservice

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mailvox/mailvox/internal/auth"
)

const gmailUserID = "me"

// GMail is the remote mailbox adapter. Construct once and inject; the
// host process owns the OAuth lifecycle through cfg and tok.
type GMail struct {
	cfg      *oauth2.Config
	tok      *auth.Token
	throttle *Throttle
}

// NewGMail creates the adapter.
func NewGMail(cfg *oauth2.Config, tok *auth.Token) *GMail {
	return &GMail{
		cfg:      cfg,
		tok:      tok,
		throttle: NewThrottle(callsPerSecond),
	}
}

func (m *GMail) newSvc(ctx context.Context) (*gmail.Service, error) {
	t, err := m.tok.OAuthToken()
	if err != nil {
		return nil, fmt.Errorf("tok.OAuthToken failed: %w", err)
	}

	clt := m.cfg.Client(ctx, t)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(clt))
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService failed: %w", err)
	}

	return svc, nil
}
