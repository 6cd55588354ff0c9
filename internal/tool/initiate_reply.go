package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/reply"
	"github.com/mailvox/mailvox/internal/state"
)

// InitiateReplyRequest starts a reply to the currently selected email, or
// to one named by the selection.
type InitiateReplyRequest struct {
	State     string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
	Selection string `json:"selection,omitempty" jsonschema:"optional: which email to reply to, when not the currently selected one"`
}

// NewInitiateReply creates the initiate_reply tool.
func NewInitiateReply() *InitiateReply {
	return &InitiateReply{}
}

// InitiateReply captures the reply target so navigating the inbox
// afterwards cannot redirect the reply.
type InitiateReply struct{}

const styleMenu = "How would you like to reply?\n" +
	"1. Tell me what to write in your own words\n" +
	"2. A professional response\n" +
	"3. A casual response\n" +
	"4. A custom style you describe"

// InitiateReply starts the reply lifecycle against the selected email.
func (t *InitiateReply) InitiateReply(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input InitiateReplyRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	if sel := strings.TrimSpace(input.Selection); sel != "" {
		index, _, err := conv.Inbox.ResolveSelection(sel)
		if err != nil {
			return respond(conv, selectionHelp(conv.Inbox, err))
		}
		conv.Inbox, err = conv.Inbox.Select(index)
		if err != nil {
			return respond(conv, selectionHelp(conv.Inbox, err))
		}
	}

	msg, err := conv.Inbox.Current()
	if err != nil {
		return respond(conv, msgNoSelection)
	}

	draft, warning, err := reply.Initiate(msg)
	if err != nil {
		if errors.Is(err, reply.ErrNoTarget) {
			return respond(conv, "I don't have enough information about this email to reply to it.")
		}
		return respond(conv, "I couldn't start a reply to this email.")
	}
	conv.Reply = draft

	message := fmt.Sprintf("Replying to %s about %q.\n\n%s", msg.Sender(), msg.Subject, styleMenu)
	if warning != "" {
		message = warning + "\n\n" + message
	}

	return respond(conv, message)
}
