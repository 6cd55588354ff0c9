package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/mailvox/mailvox/internal/compose"
	"github.com/mailvox/mailvox/internal/gservice"
	"github.com/mailvox/mailvox/internal/labels"
	"github.com/mailvox/mailvox/internal/mailbox"
	"github.com/mailvox/mailvox/internal/tool"
)

type remoteMock struct {
	ListUnreadFunc func(ctx context.Context, max int) ([]mailbox.EmailSummary, error)
	SendFunc       func(ctx context.Context, to, subject, body, inReplyTo string) error
	ListLabelsFunc func(ctx context.Context) ([]gservice.Label, error)
	ApplyLabelFunc func(ctx context.Context, msgID, labelName string) error
	TrashFunc      func(ctx context.Context, msgID string) error
	MarkReadFunc   func(ctx context.Context, msgID string) error
}

func (m *remoteMock) ListUnread(ctx context.Context, max int) ([]mailbox.EmailSummary, error) {
	return m.ListUnreadFunc(ctx, max)
}

func (m *remoteMock) Send(ctx context.Context, to, subject, body, inReplyTo string) error {
	return m.SendFunc(ctx, to, subject, body, inReplyTo)
}

func (m *remoteMock) ListLabels(ctx context.Context) ([]gservice.Label, error) {
	return m.ListLabelsFunc(ctx)
}

func (m *remoteMock) ApplyLabel(ctx context.Context, msgID, labelName string) error {
	return m.ApplyLabelFunc(ctx, msgID, labelName)
}

func (m *remoteMock) Trash(ctx context.Context, msgID string) error {
	return m.TrashFunc(ctx, msgID)
}

func (m *remoteMock) MarkRead(ctx context.Context, msgID string) error {
	return m.MarkReadFunc(ctx, msgID)
}

type generatorMock struct {
	GenerateFunc func(ctx context.Context, req compose.GenerateRequest) (string, error)
}

func (m *generatorMock) Generate(ctx context.Context, req compose.GenerateRequest) (string, error) {
	return m.GenerateFunc(ctx, req)
}

func failingGenerator() *generatorMock {
	return &generatorMock{
		GenerateFunc: func(_ context.Context, _ compose.GenerateRequest) (string, error) {
			return "", errors.New("service unavailable")
		},
	}
}

func inboxMessages() []mailbox.EmailSummary {
	return []mailbox.EmailSummary{
		{ID: "m-1", SenderName: "Jane Doe", SenderAddr: "jane@x.com", Subject: "Meeting tomorrow",
			Body: "Can we meet tomorrow at 10?", Date: "Sep 14, 2025 at 12:12 PM"},
		{ID: "m-2", SenderName: "Acme Billing", SenderAddr: "billing@acme.com", Subject: "Your invoice",
			Body: "Your invoice and payment details are attached.", Date: "Sep 14, 2025 at 1:30 PM"},
		{ID: "m-3", SenderName: "Support", SenderAddr: "no-reply@service.com", Subject: "Important update",
			Body: "We updated our terms of service.", Date: "Sep 14, 2025 at 2:45 PM"},
	}
}

func stockedRemote() *remoteMock {
	return &remoteMock{
		ListUnreadFunc: func(_ context.Context, _ int) ([]mailbox.EmailSummary, error) {
			return inboxMessages(), nil
		},
	}
}

type session struct {
	ctx    context.Context
	client *mcp.ClientSession
	server *mcp.ServerSession
}

func (s *session) Close() {
	s.client.Close()
	s.server.Close()
}

func newSession(t *testing.T, svc *remoteMock, gen compose.Generator) *session {
	t.Helper()

	drafter := compose.NewDrafter(gen)
	suggester := labels.NewSuggester(gen)
	server := tool.NewServer(svc, drafter, suggester)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client"}, nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	ctx := context.Background()

	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	return &session{ctx: ctx, client: clientSession, server: serverSession}
}

func callTool(t *testing.T, s *session, name string, args any) tool.Response {
	t.Helper()

	result, err := s.client.CallTool(s.ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	require.False(t, result.IsError, "tool %s returned error: %v", name, result.Content)
	require.NotEmpty(t, result.Content)

	var response tool.Response
	require.NoError(t, json.Unmarshal(
		[]byte(result.Content[0].(*mcp.TextContent).Text),
		&response,
	))

	return response
}
