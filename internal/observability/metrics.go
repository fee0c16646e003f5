package observability

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu            sync.Mutex
	requestCount  map[string]int64
	errorCount    map[string]int64
	totalDuration map[string]time.Duration
	assistCalls   map[string]int64
}

// Counter is one labelled counter value.
type Counter struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	Requests []Counter `json:"requests"`
	Errors   []Counter `json:"errors"`
	Assist   []Counter `json:"assist"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:  make(map[string]int64),
		errorCount:    make(map[string]int64),
		totalDuration: make(map[string]time.Duration),
		assistCalls:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.totalDuration[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordAssist counts generative assist calls by operation and outcome.
func (m *Metrics) RecordAssist(operation string, ok bool) {
	if m == nil {
		return
	}
	outcome := "fallback"
	if ok {
		outcome = "ok"
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assistCalls[operation+"|"+outcome]++
}

// Snapshot copies the counters in key order.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		Requests: sortedCounters(m.requestCount),
		Errors:   sortedCounters(m.errorCount),
		Assist:   sortedCounters(m.assistCalls),
	}
}

func sortedCounters(src map[string]int64) []Counter {
	out := make([]Counter, 0, len(src))
	for key, count := range src {
		out = append(out, Counter{Key: key, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].Key, out[j].Key) < 0 })
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
