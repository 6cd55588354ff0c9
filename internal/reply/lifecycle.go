// Package reply governs the draft-review-edit-send lifecycle of an email
// reply across conversational turns.
//
// The state machine is: none -> initiated -> drafted <-> editing ->
// send_pending -> none. Send success, cancel and terminal failure all
// return to none; a failed send keeps the draft so the user can retry
// without redoing prior steps.
package reply

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mailvox/mailvox/internal/compose"
	"github.com/mailvox/mailvox/internal/mailbox"
)

// Stage identifies where a reply is in its lifecycle.
type Stage string

const (
	StageNone      Stage = "none"
	StageInitiated Stage = "initiated"
	StageDrafted   Stage = "drafted"
	StageEditing   Stage = "editing"
)

var (
	// ErrNoTarget means no email is selected to reply to.
	ErrNoTarget = errors.New("no email selected to reply to")
	// ErrNotInitiated means the operation requires an initiated reply.
	ErrNotInitiated = errors.New("reply has not been initiated")
	// ErrNoDraft means the operation requires a drafted reply body.
	ErrNoDraft = errors.New("no reply draft to work with")
	// ErrMissingInput means the chosen style requires free-text content.
	ErrMissingInput = errors.New("reply style requires user content")
)

// DraftState is the serialized reply lifecycle carried between turns.
// The target fields are captured at initiation so navigating the inbox
// mid-reply cannot redirect the reply.
type DraftState struct {
	Stage         Stage         `json:"stage"`
	Style         compose.Style `json:"style,omitempty"`
	CustomStyle   string        `json:"custom_style,omitempty"`
	Draft         string        `json:"draft,omitempty"`
	TargetID      string        `json:"target_id,omitempty"`
	TargetSender  string        `json:"target_sender,omitempty"`
	TargetSubject string        `json:"target_subject,omitempty"`
	TargetBody    string        `json:"target_body,omitempty"`
}

// None is the empty lifecycle state.
func None() DraftState {
	return DraftState{Stage: StageNone}
}

var noReplyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`no[-.]?reply`),
	regexp.MustCompile(`do[-.]?not[-.]?reply`),
	regexp.MustCompile(`no[-.]?response`),
	regexp.MustCompile(`automated`),
}

// IsNoReplyAddress reports whether a sender string looks like an address
// that does not accept responses.
func IsNoReplyAddress(sender string) bool {
	lower := strings.ToLower(sender)
	for _, p := range noReplyPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// NoReplyWarning is emitted, not enforced: replying to such an address
// stays possible.
const NoReplyWarning = "This appears to be a no-reply email address which typically doesn't accept responses."

// Initiate starts a reply against the given message. It returns the new
// state and an optional warning for no-reply senders.
func Initiate(msg mailbox.EmailSummary) (DraftState, string, error) {
	if (msg.SenderAddr == "" && msg.SenderName == "") || msg.Subject == "" {
		return None(), "", ErrNoTarget
	}

	state := DraftState{
		Stage:         StageInitiated,
		TargetID:      msg.ID,
		TargetSender:  msg.Sender(),
		TargetSubject: msg.Subject,
		TargetBody:    msg.Content(),
	}

	var warning string
	if IsNoReplyAddress(msg.Sender()) {
		warning = NoReplyWarning
	}

	return state, warning, nil
}

// SetStyle records the requested register on an initiated reply.
func (s DraftState) SetStyle(style compose.Style, customLabel string) (DraftState, error) {
	if s.Stage == StageNone {
		return s, ErrNotInitiated
	}
	s.Style = style
	s.CustomStyle = customLabel
	return s, nil
}

// GenerateDraft produces the reply body through the drafter. Styles that
// carry the user's own words (verbatim, custom) require free text.
func (s DraftState) GenerateDraft(ctx context.Context, d *compose.Drafter, userContent string) (DraftState, bool, error) {
	if s.Stage != StageInitiated && s.Stage != StageDrafted {
		return s, false, ErrNotInitiated
	}
	if s.Style == "" {
		return s, false, ErrMissingInput
	}
	if s.Style == compose.StyleVerbatim && strings.TrimSpace(userContent) == "" {
		return s, false, ErrMissingInput
	}
	if s.Style == compose.StyleCustom && s.CustomStyle == "" && strings.TrimSpace(userContent) == "" {
		return s, false, ErrMissingInput
	}

	draft, fellBack := d.Draft(ctx, compose.DraftRequest{
		Style:       s.Style,
		CustomStyle: s.CustomStyle,
		UserContent: userContent,
		Sender:      s.TargetSender,
		Subject:     s.TargetSubject,
		Original:    s.TargetBody,
	})

	s.Draft = draft
	s.Stage = StageDrafted

	return s, fellBack, nil
}

// EditDraft applies a free-text edit instruction to the current draft.
func (s DraftState) EditDraft(ctx context.Context, d *compose.Drafter, instruction string) (DraftState, bool, error) {
	if s.Stage != StageDrafted && s.Stage != StageEditing {
		return s, false, ErrNoDraft
	}
	if strings.TrimSpace(instruction) == "" {
		return s, false, ErrMissingInput
	}

	draft, fellBack := d.Edit(ctx, s.Draft, instruction, s.TargetSender)

	s.Draft = draft
	s.Stage = StageDrafted

	return s, fellBack, nil
}

// StartOver discards the draft text but keeps the reply target, returning
// to the initiated stage.
func (s DraftState) StartOver() DraftState {
	if s.Stage == StageNone {
		return s
	}
	s.Draft = ""
	s.Style = ""
	s.CustomStyle = ""
	s.Stage = StageInitiated
	return s
}

// Cancel abandons the reply entirely.
func (s DraftState) Cancel() DraftState {
	return None()
}

var addressPattern = regexp.MustCompile(`\((.*?)\)`)

// ExtractAddress pulls the bare address out of the composite sender
// display string "Name (address)". Without a parenthesis pair the whole
// string is used, degraded but non-fatal.
func ExtractAddress(sender string) string {
	if m := addressPattern.FindStringSubmatch(sender); m != nil {
		return m[1]
	}
	return sender
}

// SubjectForReply prefixes "Re: " unless the subject already carries it,
// compared case-insensitively.
func SubjectForReply(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

// Sender delivers a finished reply to the remote mailbox.
type Sender interface {
	Send(ctx context.Context, to, subject, body, inReplyTo string) error
}

// Send delivers the drafted reply. On success the lifecycle resets to
// none; on failure the full state is preserved for a retry.
func (s DraftState) Send(ctx context.Context, remote Sender) (DraftState, error) {
	if strings.TrimSpace(s.Draft) == "" {
		return s, ErrNoDraft
	}
	if s.TargetSender == "" {
		return s, ErrNoTarget
	}

	to := ExtractAddress(s.TargetSender)
	subject := SubjectForReply(s.TargetSubject)

	if err := remote.Send(ctx, to, subject, s.Draft, s.TargetID); err != nil {
		return s, fmt.Errorf("send reply failed: %w", err)
	}

	return None(), nil
}
