package tool

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/state"
)

// ReadEmailRequest selects and shows one email. With an empty selection
// the currently selected email is shown again.
type ReadEmailRequest struct {
	State     string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
	Selection string `json:"selection,omitempty" jsonschema:"which email the user asked for: a number, ordinal, sender or subject fragment"`
}

// NewReadEmail creates the read_email tool.
func NewReadEmail() *ReadEmail {
	return &ReadEmail{}
}

// ReadEmail resolves a selection utterance against the inbox snapshot and
// renders the chosen message. Purely local, no remote calls.
type ReadEmail struct{}

// ReadEmail resolves the selection and shows the message in full.
func (t *ReadEmail) ReadEmail(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ReadEmailRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	if conv.Inbox.Len() == 0 {
		return respond(conv, msgNoEmails)
	}

	if sel := strings.TrimSpace(input.Selection); sel != "" {
		index, _, err := conv.Inbox.ResolveSelection(sel)
		if err != nil {
			// Selection stays untouched so the next utterance is a
			// fresh attempt.
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

	return respond(conv, describeEmail(conv.Inbox.Cursor+1, conv.Inbox.Len(), msg))
}
