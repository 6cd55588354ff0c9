package tool

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/mailbox"
	"github.com/mailvox/mailvox/internal/state"
)

// NavigateEmailRequest moves the cursor to a neighbouring email.
type NavigateEmailRequest struct {
	State     string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
	Direction string `json:"direction" jsonschema:"either next or previous"`
}

// NewNavigateEmail creates the navigate_email tool.
func NewNavigateEmail() *NavigateEmail {
	return &NavigateEmail{}
}

// NavigateEmail steps the inbox cursor. Hitting either end of the list is
// reported, not treated as a failure.
type NavigateEmail struct{}

// NavigateEmail moves the cursor one step and shows the resulting email.
func (t *NavigateEmail) NavigateEmail(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input NavigateEmailRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	var dir mailbox.Direction
	switch input.Direction {
	case "next", "forward":
		dir = mailbox.Next
	case "previous", "prev", "back":
		dir = mailbox.Previous
	default:
		return respond(conv, "I can go to the next or the previous email. Which one?")
	}

	snapshot, outcome, err := conv.Inbox.Navigate(dir)
	if err != nil {
		if errors.Is(err, mailbox.ErrNoSelection) {
			return respond(conv, msgNoSelection)
		}
		return respond(conv, selectionHelp(conv.Inbox, err))
	}
	conv.Inbox = snapshot

	msg, err := conv.Inbox.Current()
	if err != nil {
		return respond(conv, msgNoSelection)
	}

	switch outcome {
	case mailbox.AtUpperBound:
		return respond(conv, "You're already at the last email.\n\n"+describeEmail(conv.Inbox.Cursor+1, conv.Inbox.Len(), msg))
	case mailbox.AtLowerBound:
		return respond(conv, "You're already at the first email.\n\n"+describeEmail(conv.Inbox.Cursor+1, conv.Inbox.Len(), msg))
	default:
		return respond(conv, describeEmail(conv.Inbox.Cursor+1, conv.Inbox.Len(), msg))
	}
}
