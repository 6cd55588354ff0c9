package compose

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Style names the register a reply draft should be written in.
type Style string

const (
	// StyleVerbatim formats the user's own words without changing them.
	StyleVerbatim Style = "user_content"
	// StyleProfessional drafts a formal business reply.
	StyleProfessional Style = "professional"
	// StyleCasual drafts a friendly, informal reply.
	StyleCasual Style = "casual"
	// StyleCustom drafts in a free-form register named by the user.
	StyleCustom Style = "custom"
)

const draftSystemRole = "You are a helpful assistant that formats emails."

// DraftRequest carries everything needed to compose one reply body.
type DraftRequest struct {
	Style       Style
	CustomStyle string // register label, only for StyleCustom
	UserContent string // the user's words or instructions
	Sender      string // composite "Name (address)" display string
	Subject     string
	Original    string // original message body
}

// Drafter composes reply bodies through a Generator, falling back to a
// fixed template whenever the service fails or is not configured.
type Drafter struct {
	gen Generator
}

// NewDrafter creates a Drafter.
func NewDrafter(gen Generator) *Drafter {
	return &Drafter{gen: gen}
}

// Draft produces a complete formatted reply (greeting, body, signature).
// It never fails: service errors degrade to the deterministic template,
// and the returned bool reports whether that fallback was used.
func (d *Drafter) Draft(ctx context.Context, req DraftRequest) (string, bool) {
	prompt := buildPrompt(req)

	text, err := d.gen.Generate(ctx, GenerateRequest{
		System:      draftSystemRole,
		Prompt:      prompt,
		MaxTokens:   500,
		Temperature: 0.5,
	})
	if err != nil {
		log.Println("draft generation failed, using template:", err)
		return FallbackDraft(req.UserContent, req.Sender), true
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackDraft(req.UserContent, req.Sender), true
	}

	return text, false
}

// Edit applies a free-text edit instruction to an existing draft. An
// instruction that already reads as a complete message (more than twenty
// words opening with a greeting) is adopted verbatim without a service
// call.
func (d *Drafter) Edit(ctx context.Context, draft, instruction, sender string) (string, bool) {
	if LooksLikeCompleteMessage(instruction) {
		return strings.TrimSpace(instruction), false
	}

	prompt := fmt.Sprintf(`Revise the email draft below according to the user's instruction.
Keep the greeting and sign-off unless the instruction says otherwise.
Return only the revised email text.

Current draft:
%s

Instruction: %s`, draft, instruction)

	text, err := d.gen.Generate(ctx, GenerateRequest{
		System:      draftSystemRole,
		Prompt:      prompt,
		MaxTokens:   500,
		Temperature: 0.5,
	})
	if err != nil {
		log.Println("draft edit failed, using template:", err)
		return FallbackDraft(instruction, sender), true
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return FallbackDraft(instruction, sender), true
	}

	return text, false
}

// Each style keeps its own prompt shape so the requested register is
// always named explicitly for the completion service.
func buildPrompt(req DraftRequest) string {
	switch req.Style {
	case StyleVerbatim:
		return fmt.Sprintf(`Format the user's content into a professional email reply.

Original email subject: %s
Original email sender: %s

User's content: %s

Create a well-formatted email that uses the user's content verbatim.
Add an appropriate greeting and professional sign-off.
Do not add any new content or change the user's message.`,
			req.Subject, req.Sender, req.UserContent)

	case StyleCasual:
		return fmt.Sprintf(`Draft a casual, friendly reply to the email below.

Original email subject: %s
Original email sender: %s
Original email content:
%s

Write a warm, informal response that addresses the email's main points.
Keep the tone relaxed and conversational. Start with a friendly greeting
and end with a casual sign-off.`,
			req.Subject, req.Sender, req.Original)

	case StyleCustom:
		return fmt.Sprintf(`Draft a reply to the email below in a %s style.

Original email subject: %s
Original email sender: %s
Original email content:
%s

Write a response in the requested %s register that addresses the email's
main points. Start with an appropriate greeting and end with a matching
sign-off.`,
			req.CustomStyle, req.Subject, req.Sender, req.Original, req.CustomStyle)

	default: // StyleProfessional
		return fmt.Sprintf(`Draft a professional reply to the email below.

Original email subject: %s
Original email sender: %s
Original email content:
%s

Write a well-formatted, professional response that addresses the email's
main points while maintaining appropriate tone and etiquette. The reply
should be concise but complete. Start with an appropriate greeting and
end with a professional sign-off.`,
			req.Subject, req.Sender, req.Original)
	}
}

// RecipientName extracts a first name from the composite sender display
// string "Name (address)", defaulting to "there".
func RecipientName(sender string) string {
	name := sender
	if idx := strings.Index(sender, "("); idx >= 0 {
		name = sender[:idx]
	}

	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return "there"
	}

	return fields[0]
}

// FallbackDraft builds the deterministic reply template used whenever the
// completion service is unavailable. Empty content produces the minimal
// greeting-plus-signature form.
func FallbackDraft(content, sender string) string {
	greeting := fmt.Sprintf("Hello %s,", RecipientName(sender))
	signature := "Best regards,\n[Your Name]"

	content = strings.TrimSpace(content)
	if content == "" {
		return greeting + "\n\n" + signature
	}

	return greeting + "\n\n" + content + "\n\n" + signature
}

var greetingWords = []string{"hello", "hi", "dear", "hey", "greetings"}

// LooksLikeCompleteMessage judges whether free text is already a full
// reply rather than an edit instruction: over twenty words and containing
// a greeting word.
func LooksLikeCompleteMessage(text string) bool {
	words := strings.Fields(text)
	if len(words) <= 20 {
		return false
	}

	lower := strings.ToLower(text)
	for _, g := range greetingWords {
		if strings.Contains(lower, g) {
			return true
		}
	}

	return false
}
