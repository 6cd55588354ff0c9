// Package tool exposes the assistant's operations as MCP tools.
//
// Every tool receives the serialized conversation state from the previous
// turn, performs exactly one core operation with at most one remote call,
// and returns a user-facing message plus the updated state. Failures of
// the mailbox or the completion service become messages in the response,
// never tool errors; only a corrupted request is reported as an error.
package tool

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/mailbox"
	"github.com/mailvox/mailvox/internal/state"
)

// Response is the uniform tool result.
type Response struct {
	Message string `json:"message" jsonschema:"text to show the user"`
	State   string `json:"state" jsonschema:"updated conversation state, pass it to the next tool call"`
}

// respond encodes the conversation into the uniform response.
func respond(c state.Conversation, message string) (*mcp.CallToolResult, Response, error) {
	raw, err := c.Encode()
	if err != nil {
		return nil, Response{}, fmt.Errorf("state encode failed: %w", err)
	}

	return nil, Response{Message: message, State: raw}, nil
}

const (
	msgMailboxUnavailable = "I'm having trouble accessing your emails right now. Please try again later."
	msgNoEmails           = "There are no emails loaded. Ask me to check your inbox first."
	msgNoSelection        = "Please select an email first. You can pick one by number, sender or subject."
)

// describeEmail renders one message in full, the way the read and
// navigate operations present it.
func describeEmail(pos, total int, msg mailbox.EmailSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Email %d of %d\n", pos, total)
	fmt.Fprintf(&sb, "From: %s\n", msg.Sender())
	fmt.Fprintf(&sb, "Subject: %s\n", msg.Subject)
	fmt.Fprintf(&sb, "Date: %s\n\n", msg.Date)
	sb.WriteString(msg.Content())

	return sb.String()
}

// selectionHelp explains the valid selection formats after a failed
// resolution.
func selectionHelp(s mailbox.Snapshot, err error) string {
	var oor *mailbox.OutOfRangeError
	if errors.As(err, &oor) {
		if oor.Length == 1 {
			return "There is only 1 email in your inbox. Please choose email 1."
		}
		return fmt.Sprintf("There are only %d emails in your inbox. Please choose a number between 1 and %d.", oor.Length, oor.Length)
	}

	var nm *mailbox.NoMatchError
	if errors.As(err, &nm) {
		return fmt.Sprintf("I couldn't find an email matching %q. You can pick by number, sender name or subject.", nm.Query)
	}

	if s.Len() == 0 {
		return msgNoEmails
	}

	return msgNoSelection
}
