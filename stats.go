package heatshrink

import "go.uber.org/atomic"

// Stats accumulates codec activity counters. Its fields are safe for
// concurrent use from multiple goroutines each driving their own,
// independent Encoder/Decoder instance — never from two goroutines
// sharing one instance, which spec.md §5 forbids regardless. cmd/
// heatshrink-bench shares a single Stats across its worker pool.
type Stats struct {
	BytesSunk     atomic.Uint64
	BytesEmitted  atomic.Uint64
	Literals      atomic.Uint64
	Backrefs      atomic.Uint64
	BackrefBytes  atomic.Uint64
	BacklogShifts atomic.Uint64
}

// NewStats returns a zeroed Stats recorder.
func NewStats() *Stats { return &Stats{} }

func (s *Stats) recordSink(n int) {
	if s == nil || n <= 0 {
		return
	}
	s.BytesSunk.Add(uint64(n))
}

func (s *Stats) recordEmit(n int) {
	if s == nil || n <= 0 {
		return
	}
	s.BytesEmitted.Add(uint64(n))
}

func (s *Stats) recordLiteral() {
	if s == nil {
		return
	}
	s.Literals.Inc()
}

func (s *Stats) recordBackref(length int) {
	if s == nil {
		return
	}
	s.Backrefs.Inc()
	s.BackrefBytes.Add(uint64(length))
}

func (s *Stats) recordBacklogShift() {
	if s == nil {
		return
	}
	s.BacklogShifts.Inc()
}
