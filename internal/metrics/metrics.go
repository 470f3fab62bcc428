package metrics

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Occupancy is one activity's roster size at observation time.
type Occupancy struct {
	Activity     string
	Participants int
	Capacity     int
}

// OccupancyFunc reads current occupancy for the gauge callback.
type OccupancyFunc func(ctx context.Context) ([]Occupancy, error)

type opKey struct {
	operation string
	outcome   string
}

// Recorder counts enrollment outcomes in memory and forwards them to
// OpenTelemetry instruments when Setup configured them.
type Recorder struct {
	mu     sync.Mutex
	counts map[opKey]int
	otel   *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		counts: make(map[opKey]int),
		otel:   otel,
	}
}

// RecordEnrollment counts one enrollment operation by outcome.
func (r *Recorder) RecordEnrollment(operation, outcome string) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.counts[opKey{operation: operation, outcome: outcome}]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordEnrollment(operation, outcome)
	}
}

// EnrollmentCount returns how many operations ended with outcome.
func (r *Recorder) EnrollmentCount(operation, outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[opKey{operation: operation, outcome: outcome}]
}

// Snapshot is a copy of the counts recorded for one operation.
type Snapshot struct {
	Total    int
	Outcomes map[string]int
}

// Snapshot returns the outcome counts for operation.
func (r *Recorder) Snapshot(operation string) Snapshot {
	snap := Snapshot{Outcomes: map[string]int{}}
	if r == nil {
		return snap
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, n := range r.counts {
		if k.operation != operation {
			continue
		}
		snap.Outcomes[k.outcome] = n
		snap.Total += n
	}
	return snap
}

// Operations lists every operation name seen so far, sorted.
func (r *Recorder) Operations() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]struct{})
	for k := range r.counts {
		seen[k.operation] = struct{}{}
	}
	ops := make([]string, 0, len(seen))
	for op := range seen {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// ObserveOccupancy registers fn as the source for the occupancy gauges.
// Without OpenTelemetry it does nothing.
func (r *Recorder) ObserveOccupancy(fn OccupancyFunc) error {
	if r == nil || r.otel == nil || fn == nil {
		return nil
	}
	return r.otel.observeOccupancy(fn)
}
