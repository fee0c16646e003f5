package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/nexushub/internal/assist"
	"github.com/spec-kit/nexushub/internal/domain"
)

func TestAssistBulletinDraft(t *testing.T) {
	ws := newTestWorkspace(testStandard, &fakeGenerator{text: "Title: Summer hours\nOffices close at 16:00 in August."})

	_, ok := ws.AssistBulletinDraft(context.Background(), "")
	assert.False(t, ok, "blank topic is ignored")

	ws.Bulletin.EditDraft(func(d *domain.BulletinDraft) { d.Topic = "summer hours" })
	generated, ok := ws.AssistBulletinDraft(context.Background(), "friendly")

	require.True(t, ok)
	assert.Equal(t, "Summer hours", generated.Title)
	draft := ws.Bulletin.Draft()
	assert.Equal(t, "Summer hours", draft.Title)
	assert.Equal(t, "Offices close at 16:00 in August.", draft.Content)
	assert.Equal(t, "summer hours", draft.Topic)
}

func TestAssistBulletinDraftFallbackNotStored(t *testing.T) {
	ws := newTestWorkspace(testStandard, &fakeGenerator{err: errors.New("quota")})
	ws.Bulletin.EditDraft(func(d *domain.BulletinDraft) {
		d.Topic = "x"
		d.Title = "mine"
	})

	generated, ok := ws.AssistBulletinDraft(context.Background(), "")

	assert.False(t, ok)
	assert.Equal(t, assist.FallbackBulletinTitle, generated.Title)
	assert.Equal(t, "mine", ws.Bulletin.Draft().Title)
}

func TestReshipmentEmail(t *testing.T) {
	ws := newTestWorkspace(testStandard, &fakeGenerator{text: "Dear Elena, your order is on its way."})

	email, ok := ws.ReshipmentEmail(context.Background(), "rs1")
	require.True(t, ok)
	assert.Equal(t, "Dear Elena, your order is on its way.", email)

	_, ok = ws.ReshipmentEmail(context.Background(), "nope")
	assert.False(t, ok)
}

func TestReshipmentEmailWithoutBackend(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)
	email, ok := ws.ReshipmentEmail(context.Background(), "rs2")
	require.True(t, ok)
	assert.Equal(t, assist.FallbackEmail, email)
}

func TestOpenChatAfterCloseIsRefused(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)
	ws.Close()

	view, ok := ws.OpenChat("e1")
	assert.False(t, ok)
	assert.Nil(t, view)
	_, ok = ws.Chat()
	assert.False(t, ok)
}

func TestOpenChatRacingClose(t *testing.T) {
	ws := newTestWorkspace(testStandard, nil)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		opened []*ChatView
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if view, ok := ws.OpenChat("e1"); ok {
				mu.Lock()
				opened = append(opened, view)
				mu.Unlock()
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		ws.Close()
	}()
	wg.Wait()

	_, ok := ws.Chat()
	assert.False(t, ok)
	for _, view := range opened {
		assert.True(t, view.Closed())
	}
}
