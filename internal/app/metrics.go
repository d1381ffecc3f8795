package app

import (
	"sync/atomic"
	"time"
)

// Metrics tracks event and frame counters.
type Metrics struct {
	eventCount    atomic.Uint64
	eventTotalNs  atomic.Int64
	eventsDropped atomic.Uint64

	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMaxNs   atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent records event processing timing.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordEventDropped records an event rejected by a full queue.
func (m *Metrics) RecordEventDropped() {
	m.eventsDropped.Add(1)
}

// RecordFrame records the time spent painting one frame.
func (m *Metrics) RecordFrame(duration time.Duration) {
	ns := duration.Nanoseconds()
	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)

	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	events := m.eventCount.Load()
	frames := m.frameCount.Load()

	var avgEventNs, avgFrameNs int64
	if events > 0 {
		avgEventNs = m.eventTotalNs.Load() / int64(events)
	}
	if frames > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frames)
	}

	return MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		EventCount:     events,
		AvgEventNs:     avgEventNs,
		EventsDropped:  m.eventsDropped.Load(),
		FrameCount:     frames,
		AvgFrameTimeNs: avgFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	EventCount     uint64
	AvgEventNs     int64
	EventsDropped  uint64
	FrameCount     uint64
	AvgFrameTimeNs int64
	MaxFrameTimeNs int64
}
