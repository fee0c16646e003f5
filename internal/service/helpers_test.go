package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spec-kit/nexushub/internal/assist"
	"github.com/spec-kit/nexushub/internal/domain"
	"github.com/spec-kit/nexushub/internal/events"
)

// 2024-05-22 is a Wednesday.
var testNow = time.Date(2024, 5, 22, 9, 30, 0, 0, time.UTC)

var (
	testAdmin    = domain.Identity{ID: "u-admin", Name: "Admin User", Email: "admin@nexushub.it", Role: domain.RoleAdmin}
	testStandard = domain.Identity{ID: "u-std", Name: "Standard User", Email: "user@nexushub.it", Role: domain.RoleStandard}
)

type fakeGenerator struct {
	mu    sync.Mutex
	text  string
	json  string
	err   error
	block chan struct{}
	calls int
}

func (f *fakeGenerator) GenerateText(ctx context.Context, _ string) (string, error) {
	return f.respond(ctx, f.text)
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, _ string, _ assist.Schema) (string, error) {
	return f.respond(ctx, f.json)
}

func (f *fakeGenerator) respond(ctx context.Context, out string) (string, error) {
	f.mu.Lock()
	f.calls++
	block := f.block
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return out, f.err
}

func sequentialIDs() func() string {
	var n int64
	return func() string {
		return fmt.Sprintf("id-%d", atomic.AddInt64(&n, 1))
	}
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

func testDeps(gen assist.Generator) WorkspaceDeps {
	var client *assist.Client
	if gen != nil {
		client = assist.NewClient(gen, nil, assist.WithClock(func() time.Time { return testNow }))
	}
	return WorkspaceDeps{
		Assist:     client,
		Location:   time.UTC,
		ReplyDelay: 20 * time.Millisecond,
		Now:        func() time.Time { return testNow },
		NewID:      sequentialIDs(),
	}
}

func newTestWorkspace(identity domain.Identity, gen assist.Generator) *Workspace {
	return NewWorkspace("sess-test", identity, testDeps(gen))
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
