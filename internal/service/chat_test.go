package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestChatSendSchedulesOneReply(t *testing.T) {
	defer goleak.VerifyNone(t)

	ws := newTestWorkspace(testStandard, nil)
	view, ok := ws.OpenChat("e1")
	require.True(t, ok)

	greeting := view.Snapshot().Messages
	require.Len(t, greeting, 1)
	assert.Equal(t, "Hi Standard User, how can I help you today?", greeting[0].Text)
	assert.Equal(t, "e1", greeting[0].SenderID)
	assert.Equal(t, testNow.Add(-time.Hour), greeting[0].Timestamp)

	msg, ok := view.Send("  Ciao  ")
	require.True(t, ok)
	assert.Equal(t, "Ciao", msg.Text)
	assert.Equal(t, testStandard.ID, msg.SenderID)
	assert.Len(t, view.Snapshot().Messages, 2)

	require.Eventually(t, func() bool { return len(view.Snapshot().Messages) == 3 }, time.Second, 5*time.Millisecond)
	reply := view.Snapshot().Messages[2]
	assert.Equal(t, CannedReply, reply.Text)
	assert.Equal(t, "e1", reply.SenderID)

	time.Sleep(50 * time.Millisecond)
	assert.Len(t, view.Snapshot().Messages, 3)
	assert.Zero(t, view.Pending())
}

func TestChatIgnoresBlankMessages(t *testing.T) {
	defer goleak.VerifyNone(t)

	ws := newTestWorkspace(testStandard, nil)
	view, _ := ws.OpenChat("e2")

	_, ok := view.Send("   ")
	assert.False(t, ok)
	assert.Len(t, view.Snapshot().Messages, 1)
	assert.Zero(t, view.Pending())
}

func TestChatCloseCancelsPendingReplies(t *testing.T) {
	defer goleak.VerifyNone(t)

	deps := testDeps(nil)
	deps.ReplyDelay = time.Hour
	ws := NewWorkspace("s", testStandard, deps)
	view, _ := ws.OpenChat("e3")
	_, _ = view.Send("one")
	_, _ = view.Send("two")
	assert.Equal(t, 2, view.Pending())

	ws.CloseChat()

	assert.True(t, view.Closed())
	assert.Zero(t, view.Pending())
	assert.Empty(t, view.Snapshot().Messages)
	_, open := ws.Chat()
	assert.False(t, open)
	_, ok := view.Send("late")
	assert.False(t, ok)
}

func TestClosedChatNeverReceivesLateReply(t *testing.T) {
	defer goleak.VerifyNone(t)

	ws := newTestWorkspace(testStandard, nil)
	view, _ := ws.OpenChat("e1")
	_, _ = view.Send("Ciao")
	ws.Close()

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, view.Snapshot().Messages)
}

func TestReopeningChatDiscardsPrevious(t *testing.T) {
	defer goleak.VerifyNone(t)

	ws := newTestWorkspace(testStandard, nil)
	first, _ := ws.OpenChat("e1")
	_, _ = first.Send("hello")

	second, ok := ws.OpenChat("e4")
	require.True(t, ok)
	assert.True(t, first.Closed())
	assert.Equal(t, "e4", second.Peer().ID)
	current, _ := ws.Chat()
	assert.Same(t, second, current)

	_, ok = ws.OpenChat("nobody")
	assert.False(t, ok)
	ws.Close()
}

func TestSuggestReplyOnlyAfterPeerMessage(t *testing.T) {
	defer goleak.VerifyNone(t)

	deps := testDeps(&fakeGenerator{text: "Sure, talk soon."})
	deps.ReplyDelay = time.Hour
	ws := NewWorkspace("s", testStandard, deps)
	defer ws.Close()
	view, _ := ws.OpenChat("e1")

	suggestion, ok := ws.SuggestChatReply(context.Background())
	require.True(t, ok)
	assert.Equal(t, "Sure, talk soon.", suggestion)
	assert.Equal(t, "Sure, talk soon.", view.Snapshot().Input)
	assert.Len(t, view.Snapshot().Messages, 1, "suggestion is not sent")

	_, _ = view.Send("my turn")
	_, ok = ws.SuggestChatReply(context.Background())
	assert.False(t, ok)
}

func TestSuggestReplyWithoutChat(t *testing.T) {
	ws := newTestWorkspace(testStandard, &fakeGenerator{text: "x"})
	_, ok := ws.SuggestChatReply(context.Background())
	assert.False(t, ok)
}
