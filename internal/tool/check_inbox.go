package tool

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/mailbox"
	"github.com/mailvox/mailvox/internal/state"
)

// CheckInboxRequest refreshes the unread-message list.
type CheckInboxRequest struct {
	State       string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
	MaxMessages int    `json:"max_messages,omitempty" jsonschema:"cap on fetched messages, default 10"`
}

type checkInboxSvc interface {
	ListUnread(ctx context.Context, max int) ([]mailbox.EmailSummary, error)
}

// NewCheckInbox creates the check_inbox tool.
func NewCheckInbox(svc checkInboxSvc) *CheckInbox {
	return &CheckInbox{svc: svc}
}

// CheckInbox replaces the conversation's inbox snapshot with a fresh
// fetch. The previous list is never patched, only replaced wholesale.
type CheckInbox struct {
	svc checkInboxSvc
}

// CheckInbox fetches unread messages and lists them numbered.
func (t *CheckInbox) CheckInbox(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CheckInboxRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	max := input.MaxMessages
	if max <= 0 {
		max = mailbox.DefaultMaxMessages
	}

	msgs, err := t.svc.ListUnread(ctx, max)
	if err != nil {
		log.Println("svc.ListUnread failed", err)
		return respond(conv, msgMailboxUnavailable)
	}

	conv.Inbox = mailbox.Refresh(msgs, max)

	if conv.Inbox.Len() == 0 {
		return respond(conv, "No new emails! Your inbox is all caught up.")
	}

	return respond(conv, listUnread(conv.Inbox))
}

func listUnread(s mailbox.Snapshot) string {
	var sb strings.Builder

	if s.Len() == 1 {
		sb.WriteString("You have 1 unread email:\n\n")
	} else {
		fmt.Fprintf(&sb, "You have %d unread emails:\n\n", s.Len())
	}

	for i, msg := range s.Messages {
		fmt.Fprintf(&sb, "%d. From: %s\n   Subject: %s\n   Date: %s\n\n", i+1, msg.Sender(), msg.Subject, msg.Date)
	}

	sb.WriteString("Which email would you like to read? You can pick a number, a sender or a subject.")

	return sb.String()
}
