package tool

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/gservice"
	"github.com/mailvox/mailvox/internal/labels"
	"github.com/mailvox/mailvox/internal/state"
)

// SuggestLabelsRequest proposes labels for the selected email.
type SuggestLabelsRequest struct {
	State string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
}

// ApplyLabelRequest attaches the chosen label to the selected email.
type ApplyLabelRequest struct {
	State  string `json:"state,omitempty" jsonschema:"conversation state from the previous call"`
	Choice string `json:"choice" jsonschema:"the user's label choice: use recommendation, a number from the existing-label list, or a label name"`
}

type labelSvc interface {
	ListLabels(ctx context.Context) ([]gservice.Label, error)
	ApplyLabel(ctx context.Context, msgID, labelName string) error
}

// NewLabelEmail creates the label suggestion and application tools.
func NewLabelEmail(svc labelSvc, suggester *labels.Suggester) *LabelEmail {
	return &LabelEmail{svc: svc, suggester: suggester}
}

// LabelEmail proposes category labels for the selected email and applies
// the user's choice, creating the label remotely when it doesn't exist.
type LabelEmail struct {
	svc       labelSvc
	suggester *labels.Suggester
}

// SuggestLabels lists the user's existing labels alongside suggestions
// for the selected email, and remembers both for the apply step.
func (t *LabelEmail) SuggestLabels(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SuggestLabelsRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	msg, err := conv.Inbox.Current()
	if err != nil {
		return respond(conv, msgNoSelection)
	}

	existing, err := t.svc.ListLabels(ctx)
	if err != nil {
		log.Println("svc.ListLabels failed", err)
		existing = nil
	}

	conv.ExistingLabels = conv.ExistingLabels[:0]
	for _, l := range existing {
		conv.ExistingLabels = append(conv.ExistingLabels, l.Name)
	}

	conv.SuggestedLabels = t.suggester.Suggest(ctx, msg.Subject, msg.Content())

	var sb strings.Builder
	fmt.Fprintf(&sb, "For the email from %s about %q I'd suggest: %s.\n",
		msg.Sender(), msg.Subject, strings.Join(conv.SuggestedLabels, ", "))

	if len(conv.ExistingLabels) > 0 {
		sb.WriteString("\nYour existing labels:\n")
		for i, name := range conv.ExistingLabels {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, name)
		}
	}

	sb.WriteString("\nSay \"use recommendation\", pick a number, or name any label to apply.")

	return respond(conv, sb.String())
}

// ApplyLabel resolves the user's choice and attaches the label.
func (t *LabelEmail) ApplyLabel(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ApplyLabelRequest,
) (*mcp.CallToolResult, Response, error) {
	conv, err := state.Decode(input.State)
	if err != nil {
		return nil, Response{}, err
	}

	msg, err := conv.Inbox.Current()
	if err != nil {
		return respond(conv, msgNoSelection)
	}

	name, ok := labels.ResolveChoice(input.Choice, conv.ExistingLabels, conv.SuggestedLabels)
	if !ok {
		return respond(conv, "Which label should I apply? You can name one, pick a number, or say \"use recommendation\".")
	}

	if err := t.svc.ApplyLabel(ctx, msg.ID, name); err != nil {
		log.Println("svc.ApplyLabel failed", err)
		// Suggestions are kept so the user can retry the same choice.
		return respond(conv, fmt.Sprintf("I couldn't apply the label %q right now. Please try again.", name))
	}

	conv.SuggestedLabels = nil
	conv.ExistingLabels = nil

	return respond(conv, fmt.Sprintf("Applied the label %q to the email from %s.", name, msg.Sender()))
}
