package tool

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/state"
)

// DeleteEmailRequest moves the selected email to the trash.
type DeleteEmailRequest struct {
	State string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
}

// MarkReadRequest clears the unread flag on the selected email.
type MarkReadRequest struct {
	State string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
}

type modifySvc interface {
	Trash(ctx context.Context, msgID string) error
	MarkRead(ctx context.Context, msgID string) error
}

// NewModifyEmail creates the delete and mark-read tools.
func NewModifyEmail(svc modifySvc) *ModifyEmail {
	return &ModifyEmail{svc: svc}
}

// ModifyEmail performs the single-message mutations. The inbox snapshot
// is never patched in place; a fresh check_inbox is the way to see the
// change reflected in the list.
type ModifyEmail struct {
	svc modifySvc
}

// DeleteEmail trashes the selected email.
func (t *ModifyEmail) DeleteEmail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DeleteEmailRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	msg, err := conv.Inbox.Current()
	if err != nil {
		return respond(conv, msgNoSelection)
	}

	if err := t.svc.Trash(ctx, msg.ID); err != nil {
		log.Println("svc.Trash failed", err)
		return respond(conv, "I couldn't delete that email right now. Please try again.")
	}

	return respond(conv, fmt.Sprintf("The email from %s has been moved to the trash. Ask me to check your inbox to refresh the list.", msg.Sender()))
}

// MarkRead marks the selected email as read.
func (t *ModifyEmail) MarkRead(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input MarkReadRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	msg, err := conv.Inbox.Current()
	if err != nil {
		return respond(conv, msgNoSelection)
	}

	if err := t.svc.MarkRead(ctx, msg.ID); err != nil {
		log.Println("svc.MarkRead failed", err)
		return respond(conv, "I couldn't mark that email as read right now. Please try again.")
	}

	return respond(conv, fmt.Sprintf("Marked the email from %s as read.", msg.Sender()))
}
