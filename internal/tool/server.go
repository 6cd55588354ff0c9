package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mailvox/mailvox/internal/compose"
	"github.com/mailvox/mailvox/internal/labels"
)

type mailboxSvc interface {
	checkInboxSvc
	sendReplySvc
	labelSvc
	modifySvc
}

// NewServer creates an MCP server exposing the email assistant operations.
func NewServer(svc mailboxSvc, drafter *compose.Drafter, suggester *labels.Suggester) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "mailvox", Version: "v1.0.0"}, nil)

	checkInbox := NewCheckInbox(svc)
	readEmail := NewReadEmail()
	navigate := NewNavigateEmail()
	initiate := NewInitiateReply()
	draft := NewReplyDraft(drafter)
	send := NewSendReply(svc)
	cancel := NewCancelReply()
	label := NewLabelEmail(svc, suggester)
	modify := NewModifyEmail(svc)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_inbox",
		Description: "Fetch unread emails and list them numbered",
	}, checkInbox.CheckInbox)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read_email",
		Description: "Show one email, selected by number, sender or subject",
	}, readEmail.ReadEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "navigate_email",
		Description: "Move to the next or previous email in the list",
	}, navigate.NavigateEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "initiate_reply",
		Description: "Start a reply to the selected email",
	}, initiate.InitiateReply)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_reply_draft",
		Description: "Draft the reply in the requested style",
	}, draft.GenerateReplyDraft)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit_reply_draft",
		Description: "Revise the current reply draft",
	}, draft.EditReplyDraft)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "send_reply",
		Description: "Send the drafted reply",
	}, send.SendReply)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "cancel_reply",
		Description: "Cancel the reply in progress, or start it over",
	}, cancel.CancelReply)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "suggest_labels",
		Description: "Suggest category labels for the selected email",
	}, label.SuggestLabels)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_label",
		Description: "Apply a label to the selected email, creating it if needed",
	}, label.ApplyLabel)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_email",
		Description: "Move the selected email to the trash",
	}, modify.DeleteEmail)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mark_read",
		Description: "Mark the selected email as read",
	}, modify.MarkRead)

	return server
}
