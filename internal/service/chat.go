package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/nexushub/internal/assist"
	"github.com/spec-kit/nexushub/internal/domain"
)

// CannedReply is the counterpart's automatic answer to every message.
const CannedReply = "Great, let's catch up later for the details."

// ChatSnapshot is a copy of a chat view's state.
type ChatSnapshot struct {
	Peer     domain.Employee
	Messages []domain.ChatMessage
	Input    string
}

// ChatView is an ephemeral conversation with one employee. It lives until
// Close or until another chat is opened in the same workspace.
type ChatView struct {
	mu       sync.Mutex
	self     domain.Identity
	peer     domain.Employee
	messages []domain.ChatMessage
	input    string
	pending  map[*time.Timer]struct{}
	closed   bool

	delay time.Duration
	now   func() time.Time
	newID func() string
}

func newChatView(self domain.Identity, peer domain.Employee, delay time.Duration, now func() time.Time, newID func() string) *ChatView {
	v := &ChatView{
		self:    self,
		peer:    peer,
		pending: make(map[*time.Timer]struct{}),
		delay:   delay,
		now:     now,
		newID:   newID,
	}
	v.messages = []domain.ChatMessage{{
		ID:         newID(),
		SenderID:   peer.ID,
		ReceiverID: self.ID,
		Text:       fmt.Sprintf("Hi %s, how can I help you today?", self.Name),
		Timestamp:  now().Add(-time.Hour),
	}}
	return v
}

// Peer returns the employee on the other side.
func (v *ChatView) Peer() domain.Employee {
	return v.peer
}

// Snapshot copies the current state.
func (v *ChatView) Snapshot() ChatSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return ChatSnapshot{
		Peer:     v.peer,
		Messages: append([]domain.ChatMessage(nil), v.messages...),
		Input:    v.input,
	}
}

// SetInput replaces the unsent input text.
func (v *ChatView) SetInput(text string) {
	v.mu.Lock()
	v.input = text
	v.mu.Unlock()
}

// Send appends a message from the session identity and schedules exactly one
// canned reply. Blank text and closed views are ignored.
func (v *ChatView) Send(text string) (domain.ChatMessage, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, false
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return domain.ChatMessage{}, false
	}
	msg := domain.ChatMessage{
		ID:         v.newID(),
		SenderID:   v.self.ID,
		ReceiverID: v.peer.ID,
		Text:       text,
		Timestamp:  v.now(),
	}
	v.messages = append(v.messages, msg)
	v.input = ""

	var timer *time.Timer
	timer = time.AfterFunc(v.delay, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		delete(v.pending, timer)
		v.replyLocked()
	})
	v.pending[timer] = struct{}{}
	return msg, true
}

func (v *ChatView) replyLocked() {
	if v.closed {
		return
	}
	v.messages = append(v.messages, domain.ChatMessage{
		ID:         v.newID(),
		SenderID:   v.peer.ID,
		ReceiverID: v.self.ID,
		Text:       CannedReply,
		Timestamp:  v.now(),
	})
}

// SuggestReply asks the assist client for an answer to the counterpart's
// last message and stores it as the unsent input. It does nothing when the
// last message was not sent by the counterpart.
func (v *ChatView) SuggestReply(ctx context.Context, client *assist.Client) (string, bool) {
	v.mu.Lock()
	if v.closed || len(v.messages) == 0 {
		v.mu.Unlock()
		return "", false
	}
	last := v.messages[len(v.messages)-1]
	v.mu.Unlock()
	if last.SenderID != v.peer.ID {
		return "", false
	}

	suggestion := client.SuggestReply(ctx, last.Text)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || ctx.Err() != nil {
		return "", false
	}
	v.input = suggestion
	return suggestion, true
}

// Pending returns the number of scheduled replies.
func (v *ChatView) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.pending)
}

// Close discards the conversation and cancels scheduled replies.
func (v *ChatView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	for timer := range v.pending {
		timer.Stop()
	}
	v.pending = nil
	v.messages = nil
	v.input = ""
}

// Closed reports whether Close was called.
func (v *ChatView) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}
