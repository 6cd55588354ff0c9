package gservice

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// Label is a user-visible mailbox label.
type Label struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var systemLabelIDs = map[string]struct{}{
	"INBOX": {}, "SENT": {}, "SPAM": {}, "TRASH": {}, "DRAFT": {}, "UNREAD": {},
	"IMPORTANT": {}, "STARRED": {}, "CHAT": {},
}

func isSystemLabel(id string) bool {
	if strings.HasPrefix(id, "CATEGORY_") {
		return true
	}
	_, ok := systemLabelIDs[id]
	return ok
}

// ListLabels returns the user's own labels, system labels excluded.
func (m *GMail) ListLabels(ctx context.Context) ([]Label, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	if err := m.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	list, err := svc.Users.Labels.List(gmailUserID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("labels.List failed: %w", err)
	}

	labels := make([]Label, 0, len(list.Labels))
	for _, l := range list.Labels {
		if isSystemLabel(l.Id) {
			continue
		}
		labels = append(labels, Label{ID: l.Id, Name: l.Name})
	}

	return labels, nil
}

// ApplyLabel attaches the named label to a message, creating the label
// first when no existing label matches the name case-insensitively.
func (m *GMail) ApplyLabel(ctx context.Context, msgID, labelName string) error {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w", err)
	}

	labelID, err := m.getOrCreateLabel(ctx, svc, labelName)
	if err != nil {
		return err
	}

	return m.modify(ctx, msgID, &gmail.ModifyMessageRequest{
		AddLabelIds: []string{labelID},
	})
}

func (m *GMail) getOrCreateLabel(ctx context.Context, svc *gmail.Service, name string) (string, error) {
	if err := m.throttle.Wait(ctx); err != nil {
		return "", err
	}

	list, err := svc.Users.Labels.List(gmailUserID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("labels.List failed: %w", err)
	}

	for _, l := range list.Labels {
		if strings.EqualFold(l.Name, name) {
			return l.Id, nil
		}
	}

	if err := m.throttle.Wait(ctx); err != nil {
		return "", err
	}

	created, err := svc.Users.Labels.Create(gmailUserID, &gmail.Label{Name: name}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("labels.Create %q failed: %w", name, err)
	}

	return created.Id, nil
}
