package gservice

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/mailvox/mailvox/internal/format"
	"github.com/mailvox/mailvox/internal/mailbox"
)

// ListUnread fetches up to max unread inbox messages in the order Gmail
// returns them, with headers parsed and bodies reduced to clean plain
// text.
func (m *GMail) ListUnread(ctx context.Context, max int) ([]mailbox.EmailSummary, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	if err := m.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	list, err := svc.Users.Messages.List(gmailUserID).
		LabelIds("INBOX", "UNREAD").
		MaxResults(int64(max)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("messages.List failed: %w", err)
	}

	summaries := make([]mailbox.EmailSummary, 0, len(list.Messages))

	for _, ref := range list.Messages {
		if err := m.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		msg, err := svc.Users.Messages.Get(gmailUserID, ref.Id).
			Format("full").
			Context(ctx).
			Do()
		if err != nil {
			return nil, fmt.Errorf("messages.Get %s failed: %w", ref.Id, err)
		}

		summaries = append(summaries, summarize(msg))
	}

	return summaries, nil
}

func summarize(msg *gmail.Message) mailbox.EmailSummary {
	summary := mailbox.EmailSummary{
		ID:       msg.Id,
		Snippet:  msg.Snippet,
		LabelIDs: msg.LabelIds,
		Date:     "Recently",
		Read:     true,
	}

	for _, id := range msg.LabelIds {
		if id == "UNREAD" {
			summary.Read = false
			break
		}
	}

	if msg.Payload == nil {
		return summary
	}

	for _, header := range msg.Payload.Headers {
		switch header.Name {
		case "Subject":
			summary.Subject = header.Value
		case "From":
			summary.SenderName, summary.SenderAddr = parseFrom(header.Value)
		case "Date":
			summary.Date = format.FriendlyDate(header.Value)
		}
	}

	body := extractBody(msg.Payload)
	if body == "" {
		body = msg.Snippet
	}
	summary.Body = format.CleanBody(body)

	return summary
}

// parseFrom splits a From header into display name and bare address.
// "Name <addr>" keeps both; a bare address uses its local part as the
// name.
func parseFrom(from string) (name, addr string) {
	if idx := strings.Index(from, "<"); idx != -1 {
		name = strings.Trim(strings.TrimSpace(from[:idx]), `"'`)
		rest := from[idx+1:]
		if end := strings.Index(rest, ">"); end != -1 {
			addr = strings.TrimSpace(rest[:end])
		}
		if name == "" {
			name = addr
		}
		return name, addr
	}

	addr = strings.TrimSpace(from)
	name = addr
	if at := strings.Index(addr, "@"); at > 0 {
		name = addr[:at]
	}

	return name, addr
}

// extractBody walks the payload tree preferring text/plain; text/html is
// converted when no plain part exists anywhere.
func extractBody(payload *gmail.MessagePart) string {
	plain, htmlBody := walkParts(payload)
	if plain != "" {
		return plain
	}
	if htmlBody != "" {
		return format.HTML2Text([]byte(htmlBody))
	}
	return ""
}

func walkParts(part *gmail.MessagePart) (plain, htmlBody string) {
	if part.Body != nil && part.Body.Data != "" {
		data := decodeBase64URL(part.Body.Data)
		switch part.MimeType {
		case "text/plain":
			plain = data
		case "text/html":
			htmlBody = data
		}
	}

	for _, child := range part.Parts {
		childPlain, childHTML := walkParts(child)
		if plain == "" {
			plain = childPlain
		}
		if htmlBody == "" {
			htmlBody = childHTML
		}
		if plain != "" {
			break
		}
	}

	return plain, htmlBody
}

func decodeBase64URL(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return data
		}
	}
	return string(decoded)
}

// Send delivers a plain-text message, threading it onto the replied-to
// message when inReplyTo is set.
func (m *GMail) Send(ctx context.Context, to, subject, body, inReplyTo string) error {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w", err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "To: %s\r\n", to)
	fmt.Fprintf(&sb, "Subject: %s\r\n", subject)
	if inReplyTo != "" {
		fmt.Fprintf(&sb, "In-Reply-To: %s\r\n", inReplyTo)
		fmt.Fprintf(&sb, "References: %s\r\n", inReplyTo)
	}
	sb.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)

	raw := base64.URLEncoding.EncodeToString([]byte(sb.String()))

	if err := m.throttle.Wait(ctx); err != nil {
		return err
	}

	_, err = svc.Users.Messages.Send(gmailUserID, &gmail.Message{Raw: raw}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("messages.Send failed: %w", err)
	}

	return nil
}

// Trash moves a message to the trash and out of the inbox.
func (m *GMail) Trash(ctx context.Context, msgID string) error {
	return m.modify(ctx, msgID, &gmail.ModifyMessageRequest{
		AddLabelIds:    []string{"TRASH"},
		RemoveLabelIds: []string{"INBOX"},
	})
}

// MarkRead clears the unread flag on a message.
func (m *GMail) MarkRead(ctx context.Context, msgID string) error {
	return m.modify(ctx, msgID, &gmail.ModifyMessageRequest{
		RemoveLabelIds: []string{"UNREAD"},
	})
}

func (m *GMail) modify(ctx context.Context, msgID string, req *gmail.ModifyMessageRequest) error {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w", err)
	}

	if err := m.throttle.Wait(ctx); err != nil {
		return err
	}

	if _, err := svc.Users.Messages.Modify(gmailUserID, msgID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("messages.Modify %s failed: %w", msgID, err)
	}

	return nil
}
