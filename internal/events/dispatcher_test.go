package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_DeliversToAllHandlers(t *testing.T) {
	d := NewInMemoryDispatcher()
	var got []string

	d.Subscribe(EventRecordCreated, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.RecordID)
		return errors.New("boom")
	})
	d.Subscribe(EventRecordCreated, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.RecordID)
		return nil
	})
	d.Subscribe(EventRecordDeleted, func(_ context.Context, e Event) error {
		got = append(got, "deleted")
		return nil
	})

	err := d.Publish(context.Background(), Event{Type: EventRecordCreated, RecordID: "r1"})
	assert.EqualError(t, err, "boom")
	assert.Equal(t, []string{"first:r1", "second:r1"}, got)
}

func TestDispatcher_NoListeners(t *testing.T) {
	d := NewInMemoryDispatcher()
	assert.NoError(t, d.Publish(context.Background(), Event{Type: EventSessionEnded}))
}
