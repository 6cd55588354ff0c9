// Package mailbox holds the in-memory unread-message list and its cursor.
//
// A Snapshot is immutable once fetched: every refresh replaces the whole
// list, it is never patched in place. Navigation and selection only move
// the cursor. The package performs no I/O; fetching and mutation against
// the remote mailbox happen one layer up.
package mailbox

import (
	"errors"
	"fmt"
)

// NoCursor marks a snapshot without an active selection.
const NoCursor = -1

// DefaultMaxMessages caps how many unread messages a refresh keeps.
const DefaultMaxMessages = 10

// ErrNoSelection is returned when navigation is attempted before any
// message has been selected.
var ErrNoSelection = errors.New("no email selected")

// EmailSummary is one fetched message. Fields are fixed at fetch time.
type EmailSummary struct {
	ID         string   `json:"id"`
	SenderName string   `json:"sender_name"`
	SenderAddr string   `json:"sender"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body,omitempty"`
	Snippet    string   `json:"snippet,omitempty"`
	Date       string   `json:"date"`
	LabelIDs   []string `json:"labels,omitempty"`
	Read       bool     `json:"read"`
}

// Sender returns the composite display form "Name (address)" used in
// user-facing output and reply targeting.
func (e EmailSummary) Sender() string {
	return fmt.Sprintf("%s (%s)", e.SenderName, e.SenderAddr)
}

// Content returns the best available message text, preferring the full
// body over the snippet.
func (e EmailSummary) Content() string {
	if e.Body != "" {
		return e.Body
	}
	return e.Snippet
}

// Snapshot is the ordered unread-message list plus the cursor position.
// Order is whatever the remote store returned, preserved verbatim.
type Snapshot struct {
	Messages []EmailSummary `json:"messages"`
	Cursor   int            `json:"cursor"`
}

// Refresh builds a new snapshot from freshly fetched messages, capped at
// max (DefaultMaxMessages when max <= 0). The cursor starts absent. An
// empty input yields an empty snapshot, not an error.
func Refresh(msgs []EmailSummary, max int) Snapshot {
	if max <= 0 {
		max = DefaultMaxMessages
	}
	if len(msgs) > max {
		msgs = msgs[:max]
	}

	out := make([]EmailSummary, len(msgs))
	copy(out, msgs)

	return Snapshot{Messages: out, Cursor: NoCursor}
}

// Len returns the number of messages in the snapshot.
func (s Snapshot) Len() int { return len(s.Messages) }

// Current returns the message under the cursor.
func (s Snapshot) Current() (EmailSummary, error) {
	if s.Cursor == NoCursor || s.Cursor < 0 || s.Cursor >= len(s.Messages) {
		return EmailSummary{}, ErrNoSelection
	}
	return s.Messages[s.Cursor], nil
}

// Direction selects which neighbour Navigate moves to.
type Direction string

const (
	Next     Direction = "next"
	Previous Direction = "previous"
)

// Outcome reports what a navigation step did.
type Outcome string

const (
	// Moved means the cursor advanced by exactly one position.
	Moved Outcome = "moved"
	// AtUpperBound means the cursor was already on the last message.
	AtUpperBound Outcome = "at_upper_bound"
	// AtLowerBound means the cursor was already on the first message.
	AtLowerBound Outcome = "at_lower_bound"
)

// Navigate moves the cursor one step in the given direction. Hitting
// either end leaves the cursor unchanged and reports the bound; that is
// an answerable outcome, not an error.
func (s Snapshot) Navigate(dir Direction) (Snapshot, Outcome, error) {
	if s.Cursor == NoCursor || len(s.Messages) == 0 {
		return s, "", ErrNoSelection
	}

	switch dir {
	case Next:
		if s.Cursor >= len(s.Messages)-1 {
			return s, AtUpperBound, nil
		}
		s.Cursor++
		return s, Moved, nil
	case Previous:
		if s.Cursor <= 0 {
			return s, AtLowerBound, nil
		}
		s.Cursor--
		return s, Moved, nil
	default:
		return s, "", fmt.Errorf("unknown direction %q", dir)
	}
}

// Select places the cursor on the given 1-based position.
func (s Snapshot) Select(index1 int) (Snapshot, error) {
	if index1 < 1 || index1 > len(s.Messages) {
		return s, &OutOfRangeError{Index: index1, Length: len(s.Messages)}
	}
	s.Cursor = index1 - 1
	return s, nil
}
