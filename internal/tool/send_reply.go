package tool

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/reply"
	"github.com/mailvox/mailvox/internal/state"
)

// SendReplyRequest delivers the drafted reply.
type SendReplyRequest struct {
	State string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
}

type sendReplySvc interface {
	Send(ctx context.Context, to, subject, body, inReplyTo string) error
}

// NewSendReply creates the send_reply tool.
func NewSendReply(svc sendReplySvc) *SendReply {
	return &SendReply{svc: svc}
}

// SendReply sends the current draft. A failed send keeps the draft so the
// user can retry without redrafting.
type SendReply struct {
	svc sendReplySvc
}

// SendReply delivers the draft and resets the reply lifecycle on success.
func (t *SendReply) SendReply(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SendReplyRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	target := conv.Reply.TargetSender

	next, err := conv.Reply.Send(ctx, t.svc)
	if err != nil {
		switch {
		case errors.Is(err, reply.ErrNoDraft):
			return respond(conv, "There's no draft to send yet. Generate a reply first.")
		case errors.Is(err, reply.ErrNoTarget):
			return respond(conv, "I don't know who this reply should go to. Pick an email and start the reply again.")
		default:
			log.Println("send reply failed", err)
			return respond(conv, "I couldn't send your reply just now. Your draft is saved, so you can try sending it again.")
		}
	}
	conv.Reply = next

	return respond(conv, fmt.Sprintf("Your reply to %s has been sent.", target))
}
