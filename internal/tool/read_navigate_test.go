package tool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mailvox/mailvox/internal/tool"
)

func TestReadThenNavigateScenario(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})

	read := callTool(t, s, "read_email", tool.ReadEmailRequest{State: inbox.State, Selection: "the second one"})
	assert.Contains(t, read.Message, "Email 2 of 3")
	assert.Contains(t, read.Message, "From: Acme Billing (billing@acme.com)")
	assert.Contains(t, read.Message, "Your invoice and payment details are attached.")

	next := callTool(t, s, "navigate_email", tool.NavigateEmailRequest{State: read.State, Direction: "next"})
	assert.Contains(t, next.Message, "Email 3 of 3")
	assert.Contains(t, next.Message, "From: Support (no-reply@service.com)")

	bounded := callTool(t, s, "navigate_email", tool.NavigateEmailRequest{State: next.State, Direction: "next"})
	assert.Contains(t, bounded.Message, "already at the last email")
	assert.Contains(t, bounded.Message, "Email 3 of 3", "cursor stays on the last email")
}

func TestReadEmailByKeyword(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})

	read := callTool(t, s, "read_email", tool.ReadEmailRequest{State: inbox.State, Selection: "the invoice email"})
	assert.Contains(t, read.Message, "Email 2 of 3")
}

func TestReadEmailOutOfRange(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})

	resp := callTool(t, s, "read_email", tool.ReadEmailRequest{State: inbox.State, Selection: "7"})
	assert.Contains(t, resp.Message, "only 3 emails")
	assert.Contains(t, resp.Message, "between 1 and 3")
}

func TestReadEmailNoMatch(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})

	resp := callTool(t, s, "read_email", tool.ReadEmailRequest{State: inbox.State, Selection: "zzz nothing here"})
	assert.Contains(t, resp.Message, "couldn't find an email matching")
	assert.Contains(t, resp.Message, "number, sender name or subject")
}

func TestReadEmailWithoutInbox(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	resp := callTool(t, s, "read_email", tool.ReadEmailRequest{Selection: "1"})
	assert.Contains(t, resp.Message, "no emails loaded")
}

func TestNavigateWithoutSelection(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})

	resp := callTool(t, s, "navigate_email", tool.NavigateEmailRequest{State: inbox.State, Direction: "next"})
	assert.Contains(t, resp.Message, "select an email first")
}

func TestNavigateUnknownDirection(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	resp := callTool(t, s, "navigate_email", tool.NavigateEmailRequest{Direction: "sideways"})
	assert.Contains(t, resp.Message, "next or the previous")
}
