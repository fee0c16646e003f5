package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Snapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/boards/returns", "GET", 200, time.Millisecond)
	m.RecordRequest("/boards/returns", "GET", 200, time.Millisecond)
	m.RecordError("/boards/returns", "PATCH", "NOT_FOUND")
	m.RecordAssist("suggest_reply", true)
	m.RecordAssist("suggest_reply", false)

	snap := m.Snapshot()
	require.Len(t, snap.Requests, 1)
	assert.Equal(t, Counter{Key: "/boards/returns|GET|200", Count: 2}, snap.Requests[0])
	require.Len(t, snap.Errors, 1)
	assert.Equal(t, int64(1), snap.Errors[0].Count)
	require.Len(t, snap.Assist, 2)
	assert.Equal(t, "suggest_reply|fallback", snap.Assist[0].Key)
	assert.Equal(t, "suggest_reply|ok", snap.Assist[1].Key)
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, 0)
	m.RecordError("/", "GET", "X")
	m.RecordAssist("x", true)
	assert.Equal(t, Snapshot{}, m.Snapshot())
}
