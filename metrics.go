package lightning

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

/*
Metrics counts what a Dispatcher has done. Gate counters are lock-free so the
engines can bump them once per operation; call-level figures take the mutex
once per Apply.

A nil *Metrics is valid and records nothing.
*/
type Metrics struct {
	mu             sync.RWMutex
	ApplyCalls     int64
	Failures       map[string]int64
	TotalApplyTime time.Duration

	latencyWindows []time.Duration
	windowSize     int

	gateCounts    []atomic.Int64
	parallelGates atomic.Int64
	strips        atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{
		Failures:       make(map[string]int64),
		latencyWindows: make([]time.Duration, 0, 1000), // Store last 1000 measurements
		windowSize:     1000,
		gateCounts:     make([]atomic.Int64, len(library)),
	}
}

func (m *Metrics) recordApply(startTime time.Time, err error) {
	if m == nil {
		return
	}
	duration := time.Since(startTime)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.ApplyCalls++
	m.TotalApplyTime += duration
	if err != nil {
		m.Failures[errorKind(err)]++
	}

	m.latencyWindows = append(m.latencyWindows, duration)
	if len(m.latencyWindows) > m.windowSize {
		m.latencyWindows = m.latencyWindows[1:]
	}
}

func (m *Metrics) recordGate(g *Gate, strips int) {
	if m == nil {
		return
	}
	m.gateCounts[g.id].Add(1)
	if strips > 0 {
		m.parallelGates.Add(1)
		m.strips.Add(int64(strips))
	}
}

// GateCounts returns how many times each gate was applied, omitting gates
// that never ran.
func (m *Metrics) GateCounts() map[string]int64 {
	out := make(map[string]int64)
	if m == nil {
		return out
	}
	for i := range m.gateCounts {
		if n := m.gateCounts[i].Load(); n > 0 {
			out[library[i].Name] = n
		}
	}
	return out
}

// ParallelGates returns how many gate applications went through the pool.
func (m *Metrics) ParallelGates() int64 {
	if m == nil {
		return 0
	}
	return m.parallelGates.Load()
}

// Latency returns the average, p95 and p99 Apply latency over the window.
func (m *Metrics) Latency() (avg, p95, p99 time.Duration) {
	if m == nil {
		return 0, 0, 0
	}

	m.mu.RLock()
	sorted := make([]time.Duration, len(m.latencyWindows))
	copy(sorted, m.latencyWindows)
	m.mu.RUnlock()

	if len(sorted) == 0 {
		return 0, 0, 0
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	var total time.Duration
	for _, d := range sorted {
		total += d
	}

	return total / time.Duration(len(sorted)), sorted[percentileIndex(len(sorted), 0.95)], sorted[percentileIndex(len(sorted), 0.99)]
}

func percentileIndex(n int, q float64) int {
	idx := int(float64(n) * q)
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func (m *Metrics) ExportMetrics() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}

	avg, p95, p99 := m.Latency()

	m.mu.RLock()
	defer m.mu.RUnlock()

	failures := make(map[string]int64, len(m.Failures))
	var failed int64
	for kind, n := range m.Failures {
		failures[kind] = n
		failed += n
	}

	successRate := 0.0
	if m.ApplyCalls > 0 {
		successRate = float64(m.ApplyCalls-failed) / float64(m.ApplyCalls)
	}

	return map[string]interface{}{
		"apply_calls":    m.ApplyCalls,
		"success_rate":   successRate,
		"failures":       failures,
		"gates":          m.GateCounts(),
		"parallel_gates": m.parallelGates.Load(),
		"strips":         m.strips.Load(),
		"avg_latency":    avg.Microseconds(),
		"p95_latency":    p95.Microseconds(),
		"p99_latency":    p99.Microseconds(),
	}
}
