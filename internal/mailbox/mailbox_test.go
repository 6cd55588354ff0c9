package mailbox_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailvox/mailvox/internal/mailbox"
)

func testMessages(n int) []mailbox.EmailSummary {
	msgs := make([]mailbox.EmailSummary, 0, n)
	for i := 1; i <= n; i++ {
		msgs = append(msgs, mailbox.EmailSummary{
			ID:         fmt.Sprintf("m-%03d", i),
			SenderName: fmt.Sprintf("Sender %d", i),
			SenderAddr: fmt.Sprintf("sender%d@test.com", i),
			Subject:    fmt.Sprintf("Subject %d", i),
			Snippet:    fmt.Sprintf("snippet %d", i),
			Date:       "Sep 14, 2025 at 12:12 PM",
		})
	}
	return msgs
}

func TestRefresh(t *testing.T) {
	snap := mailbox.Refresh(testMessages(3), 10)
	assert.Equal(t, 3, snap.Len())
	assert.Equal(t, mailbox.NoCursor, snap.Cursor)

	_, err := snap.Current()
	assert.ErrorIs(t, err, mailbox.ErrNoSelection)
}

func TestRefreshCapsAtMax(t *testing.T) {
	snap := mailbox.Refresh(testMessages(15), 0)
	assert.Equal(t, mailbox.DefaultMaxMessages, snap.Len())

	snap = mailbox.Refresh(testMessages(15), 5)
	assert.Equal(t, 5, snap.Len())
	assert.Equal(t, "m-001", snap.Messages[0].ID)
}

func TestRefreshEmpty(t *testing.T) {
	snap := mailbox.Refresh(nil, 10)
	assert.Equal(t, 0, snap.Len())
	assert.Equal(t, mailbox.NoCursor, snap.Cursor)
}

func TestNavigate(t *testing.T) {
	snap := mailbox.Refresh(testMessages(3), 10)

	_, _, err := snap.Navigate(mailbox.Next)
	assert.ErrorIs(t, err, mailbox.ErrNoSelection)

	snap, err = snap.Select(1)
	require.NoError(t, err)

	snap, outcome, err := snap.Navigate(mailbox.Next)
	require.NoError(t, err)
	assert.Equal(t, mailbox.Moved, outcome)
	assert.Equal(t, 1, snap.Cursor)

	snap, outcome, err = snap.Navigate(mailbox.Next)
	require.NoError(t, err)
	assert.Equal(t, mailbox.Moved, outcome)
	assert.Equal(t, 2, snap.Cursor)

	snap, outcome, err = snap.Navigate(mailbox.Next)
	require.NoError(t, err)
	assert.Equal(t, mailbox.AtUpperBound, outcome)
	assert.Equal(t, 2, snap.Cursor)

	snap, outcome, err = snap.Navigate(mailbox.Previous)
	require.NoError(t, err)
	assert.Equal(t, mailbox.Moved, outcome)
	assert.Equal(t, 1, snap.Cursor)
}

func TestNavigateAtLowerBound(t *testing.T) {
	snap := mailbox.Refresh(testMessages(2), 10)
	snap, err := snap.Select(1)
	require.NoError(t, err)

	snap, outcome, err := snap.Navigate(mailbox.Previous)
	require.NoError(t, err)
	assert.Equal(t, mailbox.AtLowerBound, outcome)
	assert.Equal(t, 0, snap.Cursor)
}

func TestNavigateRoundTrip(t *testing.T) {
	for _, length := range []int{1, 2, 5, 10} {
		for start := 0; start < length; start++ {
			snap := mailbox.Refresh(testMessages(length), 10)
			snap, err := snap.Select(start + 1)
			require.NoError(t, err)

			steps := length - 1 - start
			for i := 0; i < steps; i++ {
				var outcome mailbox.Outcome
				snap, outcome, err = snap.Navigate(mailbox.Next)
				require.NoError(t, err)
				require.Equal(t, mailbox.Moved, outcome)
			}
			for i := 0; i < steps; i++ {
				snap, _, err = snap.Navigate(mailbox.Previous)
				require.NoError(t, err)
			}

			assert.Equal(t, start, snap.Cursor, "length=%d start=%d", length, start)
		}
	}
}

func TestSelect(t *testing.T) {
	snap := mailbox.Refresh(testMessages(3), 10)

	snap, err := snap.Select(2)
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Cursor)

	cur, err := snap.Current()
	require.NoError(t, err)
	assert.Equal(t, "m-002", cur.ID)

	_, err = snap.Select(0)
	var oor *mailbox.OutOfRangeError
	require.ErrorAs(t, err, &oor)

	_, err = snap.Select(4)
	require.ErrorAs(t, err, &oor)
	assert.Equal(t, 4, oor.Index)
	assert.Equal(t, 3, oor.Length)
}

func TestSelectThenNavigate(t *testing.T) {
	snap := mailbox.Refresh(testMessages(5), 10)
	for i := 1; i < 5; i++ {
		s, err := snap.Select(i)
		require.NoError(t, err)

		s, outcome, err := s.Navigate(mailbox.Next)
		require.NoError(t, err)
		assert.Equal(t, mailbox.Moved, outcome)
		assert.Equal(t, i, s.Cursor)
	}
}

func TestSenderAndContent(t *testing.T) {
	msg := mailbox.EmailSummary{
		SenderName: "Jane Doe",
		SenderAddr: "jane@x.com",
		Snippet:    "short preview",
	}
	assert.Equal(t, "Jane Doe (jane@x.com)", msg.Sender())
	assert.Equal(t, "short preview", msg.Content())

	msg.Body = "full body"
	assert.Equal(t, "full body", msg.Content())
}
