// Package perf tracks frame timings and summarizes rendering health on a
// fixed reporting interval.
package perf

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultWindow is the rolling frame-time window capacity.
	DefaultWindow = 60
	// DefaultInterval is how often Stats are recomputed.
	DefaultInterval = 500 * time.Millisecond
	// DropCooldown rate-limits the drop callback.
	DropCooldown = 5 * time.Second

	// frame budget at 60fps, in milliseconds.
	targetFrameMS = 1000.0 / 60.0
	jankThreshold = 1.5 * targetFrameMS
)

// Bucket is a coarse performance grade.
type Bucket string

const (
	BucketGood Bucket = "good"
	BucketOK   Bucket = "ok"
	BucketPoor Bucket = "poor"
)

// Stats summarizes the rolling window. Times are milliseconds.
type Stats struct {
	Avg    float64
	Min    float64
	Max    float64
	FPS    float64
	Jank   float64
	Bucket Bucket
}

// DropHandler is invoked when FPS falls below the configured threshold.
type DropHandler func(Stats)

// Monitor keeps a rolling window of frame times and recomputes Stats once
// per interval. It is driven from the render thread; no internal locking.
type Monitor struct {
	frames []float64
	next   int

	interval   time.Duration
	lastReport time.Time
	lastStats  Stats

	dropFPS    float64
	onDrop     DropHandler
	lastDrop   time.Time
	hasDropped bool

	now func() time.Time
}

// NewMonitor returns a monitor with the default window and interval.
func NewMonitor() *Monitor {
	return &Monitor{
		frames:   make([]float64, 0, DefaultWindow),
		interval: DefaultInterval,
		now:      time.Now,
	}
}

// OnDrop registers a handler fired when FPS falls below threshold, at most
// once per cooldown period.
func (m *Monitor) OnDrop(thresholdFPS float64, h DropHandler) {
	m.dropFPS = thresholdFPS
	m.onDrop = h
}

// RecordFrame adds one frame duration to the window and, when the report
// interval has elapsed, recomputes Stats. It returns the stats and whether
// they were recomputed on this call.
func (m *Monitor) RecordFrame(frame time.Duration) (Stats, bool) {
	ms := float64(frame) / float64(time.Millisecond)
	if len(m.frames) < DefaultWindow {
		m.frames = append(m.frames, ms)
	} else {
		m.frames[m.next] = ms
		m.next = (m.next + 1) % DefaultWindow
	}

	now := m.now()
	if m.lastReport.IsZero() {
		m.lastReport = now
		return m.lastStats, false
	}
	if now.Sub(m.lastReport) < m.interval {
		return m.lastStats, false
	}
	m.lastReport = now
	m.lastStats = m.compute()
	m.maybeDrop(now)
	return m.lastStats, true
}

// Stats returns the most recently computed summary.
func (m *Monitor) Stats() Stats { return m.lastStats }

func (m *Monitor) compute() Stats {
	if len(m.frames) == 0 {
		return Stats{}
	}
	avg := stat.Mean(m.frames, nil)
	std := stat.StdDev(m.frames, nil)
	if math.IsNaN(std) {
		std = 0
	}

	min, max := m.frames[0], m.frames[0]
	slow := 0
	for _, f := range m.frames {
		min = math.Min(min, f)
		max = math.Max(max, f)
		if f > jankThreshold {
			slow++
		}
	}

	fps := 0.0
	if avg > 0 {
		fps = 1000 / avg
	}

	// Jank blends the slow-frame fraction and timing variance, each
	// contributing up to half the score.
	slowPart := float64(slow) / float64(len(m.frames)) * 50
	stdPart := math.Min(std/targetFrameMS, 1) * 50
	jank := math.Min(slowPart+stdPart, 100)

	bucket := BucketPoor
	switch {
	case fps >= 55:
		bucket = BucketGood
	case fps >= 30:
		bucket = BucketOK
	}

	return Stats{Avg: avg, Min: min, Max: max, FPS: fps, Jank: jank, Bucket: bucket}
}

func (m *Monitor) maybeDrop(now time.Time) {
	if m.onDrop == nil || m.dropFPS <= 0 || m.lastStats.FPS >= m.dropFPS {
		return
	}
	if m.hasDropped && now.Sub(m.lastDrop) < DropCooldown {
		return
	}
	m.lastDrop = now
	m.hasDropped = true
	m.onDrop(m.lastStats)
}
