package stats

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	at time.Time
	us int64
}

// Snapshot aggregates the durations recorded for one operation, in
// microseconds.
type Snapshot struct {
	Count int     `json:"count"`
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us float64 `json:"p50_us"`
	P95Us float64 `json:"p95_us"`
	P99Us float64 `json:"p99_us"`
}

// Tracker keeps per-operation durations within a rolling window.
type Tracker struct {
	mu      sync.Mutex
	samples map[string][]sample
	maxAge  time.Duration
}

func NewTracker(maxAge time.Duration) *Tracker {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &Tracker{
		samples: make(map[string][]sample),
		maxAge:  maxAge,
	}
}

// Record stores a duration for op.
func (t *Tracker) Record(op string, d time.Duration) {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples[op] = append(prune(t.samples[op], now.Add(-t.maxAge)), sample{at: now, us: us})
}

// Time records the time elapsed since start for op.
func (t *Tracker) Time(op string, start time.Time) {
	t.Record(op, time.Since(start))
}

// Snapshot aggregates every operation that still has samples in the window.
func (t *Tracker) Snapshot() map[string]Snapshot {
	cutoff := time.Now().Add(-t.maxAge)

	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Snapshot, len(t.samples))
	for op, ss := range t.samples {
		ss = prune(ss, cutoff)
		if len(ss) == 0 {
			delete(t.samples, op)
			continue
		}
		t.samples[op] = ss
		out[op] = aggregate(ss)
	}
	return out
}

func aggregate(ss []sample) Snapshot {
	values := make([]int64, 0, len(ss))
	var sum int64
	for _, s := range ss {
		values = append(values, s.us)
		sum += s.us
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return Snapshot{
		Count: len(values),
		MinUs: values[0],
		MaxUs: values[len(values)-1],
		AvgUs: float64(sum) / float64(len(values)),
		P50Us: percentile(values, 50),
		P95Us: percentile(values, 95),
		P99Us: percentile(values, 99),
	}
}

// prune drops samples older than cutoff, reusing ss's backing array.
func prune(ss []sample, cutoff time.Time) []sample {
	n := 0
	for _, s := range ss {
		if !s.at.Before(cutoff) {
			ss[n] = s
			n++
		}
	}
	return ss[:n]
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := (float64(len(sorted)-1) * pct) / 100.0
	lower := int(index)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo := float64(sorted[lower])
	hi := float64(sorted[lower+1])
	return lo + (hi-lo)*weight
}
