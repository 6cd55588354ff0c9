package tool

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/compose"
	"github.com/mailvox/mailvox/internal/reply"
	"github.com/mailvox/mailvox/internal/state"
)

// GenerateReplyDraftRequest turns a style choice plus optional free text
// into a complete draft.
type GenerateReplyDraftRequest struct {
	State   string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
	Style   string `json:"style,omitempty" jsonschema:"how the reply should read: a menu number, professional, casual, own words, or a described style"`
	Content string `json:"content,omitempty" jsonschema:"what the user wants to say, required when writing in their own words"`
}

// EditReplyDraftRequest applies an edit instruction to the current draft.
type EditReplyDraftRequest struct {
	State       string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
	Instruction string `json:"instruction" jsonschema:"how to change the draft, or a full replacement message"`
}

// NewReplyDraft creates the draft generation and editing tools.
func NewReplyDraft(drafter *compose.Drafter) *ReplyDraft {
	return &ReplyDraft{drafter: drafter}
}

// ReplyDraft produces and revises reply drafts through the composer, with
// the deterministic template standing in when the service is unavailable.
type ReplyDraft struct {
	drafter *compose.Drafter
}

const reviewPrompt = "Would you like to send it, edit it, start over or cancel?"

const fallbackNote = "I couldn't reach the writing assistant, so I prepared a simple draft instead."

// GenerateReplyDraft generates the reply body in the requested style.
func (t *ReplyDraft) GenerateReplyDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateReplyDraftRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	if conv.Reply.Stage == reply.StageNone {
		return respond(conv, "There's no reply in progress. Pick an email and ask me to reply to it first.")
	}

	if input.Style != "" {
		style, custom := reply.NormalizeStyle(input.Style)
		conv.Reply, err = conv.Reply.SetStyle(style, custom)
		if err != nil {
			return respond(conv, "There's no reply in progress. Pick an email and ask me to reply to it first.")
		}
	}

	next, fellBack, err := conv.Reply.GenerateDraft(ctx, t.drafter, input.Content)
	if err != nil {
		switch {
		case errors.Is(err, reply.ErrMissingInput):
			return respond(conv, "Tell me what you'd like the reply to say, or pick one of the styles:\n"+styleMenu)
		case errors.Is(err, reply.ErrNotInitiated):
			return respond(conv, "There's no reply in progress. Pick an email and ask me to reply to it first.")
		default:
			return respond(conv, "I couldn't prepare a draft for this reply.")
		}
	}
	conv.Reply = next

	message := "Here's your draft reply:\n\n" + conv.Reply.Draft + "\n\n" + reviewPrompt
	if fellBack {
		message = fallbackNote + "\n\n" + message
	}

	return respond(conv, message)
}

// EditReplyDraft revises the current draft. An instruction that already
// reads as a complete message replaces the draft verbatim.
func (t *ReplyDraft) EditReplyDraft(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EditReplyDraftRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	next, fellBack, err := conv.Reply.EditDraft(ctx, t.drafter, input.Instruction)
	if err != nil {
		switch {
		case errors.Is(err, reply.ErrNoDraft):
			return respond(conv, "There's no draft to edit yet. Generate a reply first.")
		case errors.Is(err, reply.ErrMissingInput):
			return respond(conv, "Tell me what you'd like to change about the draft.")
		default:
			return respond(conv, "I couldn't apply that change to the draft.")
		}
	}
	conv.Reply = next

	message := "Here's the updated draft:\n\n" + conv.Reply.Draft + "\n\n" + reviewPrompt
	if fellBack {
		message = fallbackNote + "\n\n" + message
	}

	return respond(conv, message)
}
