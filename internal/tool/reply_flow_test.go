package tool_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailvox/mailvox/internal/compose"
	"github.com/mailvox/mailvox/internal/reply"
	"github.com/mailvox/mailvox/internal/state"
	"github.com/mailvox/mailvox/internal/tool"
)

// Full lifecycle against the no-reply sender: warning on initiate,
// fallback draft when the composer is down, send with the extracted
// address and the Re: prefix.
func TestReplyLifecycleWithFallbackDraft(t *testing.T) {
	var sentTo, sentSubject, sentBody, sentInReplyTo string

	svc := stockedRemote()
	svc.SendFunc = func(_ context.Context, to, subject, body, inReplyTo string) error {
		sentTo, sentSubject, sentBody, sentInReplyTo = to, subject, body, inReplyTo
		return nil
	}

	s := newSession(t, svc, failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})

	initiated := callTool(t, s, "initiate_reply", tool.InitiateReplyRequest{State: inbox.State, Selection: "3"})
	assert.Contains(t, initiated.Message, "no-reply email address")
	assert.Contains(t, initiated.Message, "Replying to Support (no-reply@service.com)")
	assert.Contains(t, initiated.Message, "professional")

	drafted := callTool(t, s, "generate_reply_draft", tool.GenerateReplyDraftRequest{State: initiated.State, Style: "2"})
	assert.Contains(t, drafted.Message, "couldn't reach the writing assistant")
	assert.Contains(t, drafted.Message, "Hello Support,")
	assert.Contains(t, drafted.Message, "Best regards,\n[Your Name]")

	conv, err := state.Decode(drafted.State)
	require.NoError(t, err)
	assert.Equal(t, reply.StageDrafted, conv.Reply.Stage)
	assert.Equal(t, compose.StyleProfessional, conv.Reply.Style)

	sent := callTool(t, s, "send_reply", tool.SendReplyRequest{State: drafted.State})
	assert.Contains(t, sent.Message, "has been sent")

	assert.Equal(t, "no-reply@service.com", sentTo)
	assert.Equal(t, "Re: Important update", sentSubject)
	assert.Equal(t, conv.Reply.Draft, sentBody)
	assert.Equal(t, "m-3", sentInReplyTo)

	conv, err = state.Decode(sent.State)
	require.NoError(t, err)
	assert.Equal(t, reply.StageNone, conv.Reply.Stage)
	assert.Empty(t, conv.Reply.Draft)
}

func TestSendFailureKeepsDraft(t *testing.T) {
	svc := stockedRemote()
	svc.SendFunc = func(_ context.Context, _, _, _, _ string) error {
		return errors.New("smtp down")
	}

	s := newSession(t, svc, failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})
	initiated := callTool(t, s, "initiate_reply", tool.InitiateReplyRequest{State: inbox.State, Selection: "1"})
	drafted := callTool(t, s, "generate_reply_draft", tool.GenerateReplyDraftRequest{State: initiated.State, Style: "professional"})

	failed := callTool(t, s, "send_reply", tool.SendReplyRequest{State: drafted.State})
	assert.Contains(t, failed.Message, "draft is saved")

	conv, err := state.Decode(failed.State)
	require.NoError(t, err)
	assert.Equal(t, reply.StageDrafted, conv.Reply.Stage)
	assert.NotEmpty(t, conv.Reply.Draft, "failed send keeps the draft for a retry")

	// Retry succeeds once the remote recovers.
	svc.SendFunc = func(_ context.Context, _, _, _, _ string) error { return nil }
	retried := callTool(t, s, "send_reply", tool.SendReplyRequest{State: failed.State})
	assert.Contains(t, retried.Message, "has been sent")
}

func TestSendWithoutDraft(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	resp := callTool(t, s, "send_reply", tool.SendReplyRequest{})
	assert.Contains(t, resp.Message, "no draft to send")
}

func TestGenerateDraftRequiresContentForOwnWords(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})
	initiated := callTool(t, s, "initiate_reply", tool.InitiateReplyRequest{State: inbox.State, Selection: "1"})

	resp := callTool(t, s, "generate_reply_draft", tool.GenerateReplyDraftRequest{State: initiated.State, Style: "1"})
	assert.Contains(t, resp.Message, "Tell me what you'd like the reply to say")

	conv, err := state.Decode(resp.State)
	require.NoError(t, err)
	assert.Equal(t, reply.StageInitiated, conv.Reply.Stage, "missing content leaves the lifecycle where it was")
}

func TestGenerateDraftWithoutReplyInProgress(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	resp := callTool(t, s, "generate_reply_draft", tool.GenerateReplyDraftRequest{Style: "professional"})
	assert.Contains(t, resp.Message, "no reply in progress")
}

func TestEditReplyDraft(t *testing.T) {
	gen := &generatorMock{
		GenerateFunc: func(_ context.Context, req compose.GenerateRequest) (string, error) {
			return "Hello Jane,\n\nRevised body.\n\nBest regards,\nMe", nil
		},
	}

	s := newSession(t, stockedRemote(), gen)
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})
	initiated := callTool(t, s, "initiate_reply", tool.InitiateReplyRequest{State: inbox.State, Selection: "1"})
	drafted := callTool(t, s, "generate_reply_draft", tool.GenerateReplyDraftRequest{State: initiated.State, Style: "casual"})

	edited := callTool(t, s, "edit_reply_draft", tool.EditReplyDraftRequest{State: drafted.State, Instruction: "make it shorter"})
	assert.Contains(t, edited.Message, "updated draft")
	assert.Contains(t, edited.Message, "Revised body.")

	conv, err := state.Decode(edited.State)
	require.NoError(t, err)
	assert.Equal(t, reply.StageDrafted, conv.Reply.Stage)
}

func TestEditReplyDraftWithoutDraft(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	resp := callTool(t, s, "edit_reply_draft", tool.EditReplyDraftRequest{Instruction: "make it shorter"})
	assert.Contains(t, resp.Message, "no draft to edit")
}

func TestCancelReply(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})
	initiated := callTool(t, s, "initiate_reply", tool.InitiateReplyRequest{State: inbox.State, Selection: "1"})

	cancelled := callTool(t, s, "cancel_reply", tool.CancelReplyRequest{State: initiated.State, Utterance: "never mind, cancel it"})
	assert.Contains(t, cancelled.Message, "Reply cancelled")

	conv, err := state.Decode(cancelled.State)
	require.NoError(t, err)
	assert.Equal(t, reply.StageNone, conv.Reply.Stage)
	assert.Empty(t, conv.Reply.TargetID)
}

func TestStartOverKeepsTarget(t *testing.T) {
	s := newSession(t, stockedRemote(), failingGenerator())
	defer s.Close()

	inbox := callTool(t, s, "check_inbox", tool.CheckInboxRequest{})
	initiated := callTool(t, s, "initiate_reply", tool.InitiateReplyRequest{State: inbox.State, Selection: "1"})
	drafted := callTool(t, s, "generate_reply_draft", tool.GenerateReplyDraftRequest{State: initiated.State, Style: "professional"})

	restarted := callTool(t, s, "cancel_reply", tool.CancelReplyRequest{State: drafted.State, Utterance: "let's start over"})
	assert.Contains(t, restarted.Message, "start the reply over")

	conv, err := state.Decode(restarted.State)
	require.NoError(t, err)
	assert.Equal(t, reply.StageInitiated, conv.Reply.Stage)
	assert.Equal(t, "m-1", conv.Reply.TargetID, "start over keeps the reply target")
	assert.Empty(t, conv.Reply.Draft)
}
