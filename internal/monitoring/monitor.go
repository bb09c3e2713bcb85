// Package monitoring collects runtime counters for the ordering service and
// exposes them as a snapshot on the API.
package monitoring

import (
	"sync"
	"time"
)

// Monitor collects and provides runtime metrics
type Monitor struct {
	mu        sync.RWMutex
	counters  map[string]int64
	values    map[string]interface{}
	startTime time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		counters:  make(map[string]int64),
		values:    make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// Incr increments a named counter
func (m *Monitor) Incr(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters[name]++
}

// Record stores a point-in-time metric value
func (m *Monitor) Record(name string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
}

// Counter returns the current value of a named counter
func (m *Monitor) Counter(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.counters[name]
}

// Snapshot returns all current metrics plus uptime
func (m *Monitor) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := make(map[string]interface{}, len(m.counters)+len(m.values)+1)
	for k, v := range m.counters {
		snapshot[k] = v
	}
	for k, v := range m.values {
		snapshot[k] = v
	}
	snapshot["uptime_seconds"] = time.Since(m.startTime).Seconds()
	return snapshot
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counters = make(map[string]int64)
	m.values = make(map[string]interface{})
}
