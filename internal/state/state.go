// Package state is the serialization boundary between the stateless core
// and the conversation store owned by the dialogue host. The host carries
// the encoded form between turns; inside the core only the typed
// Conversation is passed around, never raw JSON.
package state

import (
	"encoding/json"
	"fmt"

	"github.com/mailvox/mailvox/internal/mailbox"
	"github.com/mailvox/mailvox/internal/reply"
)

// Conversation is everything the assistant remembers between turns.
type Conversation struct {
	Inbox           mailbox.Snapshot `json:"inbox"`
	Reply           reply.DraftState `json:"reply"`
	SuggestedLabels []string         `json:"suggested_labels,omitempty"`
	ExistingLabels  []string         `json:"existing_labels,omitempty"`
}

// New returns the empty conversation state.
func New() Conversation {
	return Conversation{
		Inbox: mailbox.Snapshot{Cursor: mailbox.NoCursor},
		Reply: reply.None(),
	}
}

// Decode restores a conversation from its serialized form. An empty
// string is a fresh conversation, not an error.
func Decode(raw string) (Conversation, error) {
	if raw == "" {
		return New(), nil
	}

	c := New()
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return New(), fmt.Errorf("decode conversation state failed: %w", err)
	}

	if c.Reply.Stage == "" {
		c.Reply = reply.None()
	}

	return c, nil
}

// Encode serializes the conversation for the host to carry to the next
// turn.
func (c Conversation) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode conversation state failed: %w", err)
	}
	return string(raw), nil
}
