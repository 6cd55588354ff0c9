package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/reply"
	"github.com/mailvox/mailvox/internal/state"
)

// CancelReplyRequest abandons or restarts the reply in progress.
type CancelReplyRequest struct {
	State     string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
	Utterance string `json:"utterance,omitempty" jsonschema:"what the user said, used to tell start over from cancel"`
}

// NewCancelReply creates the cancel_reply tool.
func NewCancelReply() *CancelReply {
	return &CancelReply{}
}

// CancelReply ends the reply lifecycle. "Start over" phrasing keeps the
// reply target and drops only the draft; anything else abandons the reply
// entirely.
type CancelReply struct{}

// CancelReply cancels or restarts the reply in progress.
func (t *CancelReply) CancelReply(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input CancelReplyRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	if conv.Reply.Stage == reply.StageNone {
		return respond(conv, "There's no reply in progress.")
	}

	if option, ok := reply.NormalizeReviewOption(input.Utterance); ok && option == reply.ReviewStartOver {
		conv.Reply = conv.Reply.StartOver()
		return respond(conv, "Okay, let's start the reply over.\n\n"+styleMenu)
	}

	conv.Reply = conv.Reply.Cancel()

	return respond(conv, "Reply cancelled.")
}
