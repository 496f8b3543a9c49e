package observability

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu           sync.Mutex
	requestCount map[string]int64
	errorCount   map[string]int64
	latency      map[string]time.Duration
}

// RouteStats summarises one route/method pair.
type RouteStats struct {
	Requests   int64   `json:"requests"`
	AvgLatency float64 `json:"avgLatencyMs"`
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Requests map[string]int64      `json:"requests"`
	Errors   map[string]int64      `json:"errors"`
	Routes   map[string]RouteStats `json:"routes"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
		latency:      make(map[string]time.Duration),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[pathKey(path, method, strconv.Itoa(status))]++
	m.latency[method+" "+path] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[pathKey(path, method, code)]++
}

// Snapshot copies the current counters.
func (m *Metrics) Snapshot() Snapshot {
	snap := Snapshot{
		Requests: map[string]int64{},
		Errors:   map[string]int64{},
		Routes:   map[string]RouteStats{},
	}
	if m == nil {
		return snap
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	perRoute := map[string]int64{}
	for k, v := range m.requestCount {
		snap.Requests[k] = v
		method, path := splitKey(k)
		perRoute[method+" "+path] += v
	}
	for k, v := range m.errorCount {
		snap.Errors[k] = v
	}
	for route, n := range perRoute {
		snap.Routes[route] = RouteStats{
			Requests:   n,
			AvgLatency: float64(m.latency[route].Microseconds()) / 1000 / float64(n),
		}
	}
	return snap
}

func pathKey(path, method, suffix string) string {
	return path + "|" + method + "|" + suffix
}

func splitKey(key string) (method, path string) {
	parts := strings.SplitN(key, "|", 3)
	if len(parts) < 2 {
		return "", key
	}
	return parts[1], parts[0]
}
