package search

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// AcceleratedEngine is the pluggable slot spec.md §9 reserves for
// "architecture-specific SIMD intrinsics (treated as one pluggable
// backend among several)". No assembly is written here — the
// acceleration is a stdlib bytes.LastIndexByte prefilter instead of a
// byte-by-byte scan for the first-byte check — but the engine still
// queries CPU feature flags the way a real SIMD backend would gate
// its fast path, purely to label the name Name reports. Its output is
// byte-identical to ScalarEngine regardless of what the CPU reports,
// exactly as spec.md §9 requires.
type AcceleratedEngine struct {
	hasAVX2 bool
}

// NewAccelerated returns the accelerated search engine, detecting AVX2
// once at construction for diagnostic purposes only.
func NewAccelerated() *AcceleratedEngine {
	return &AcceleratedEngine{hasAVX2: cpu.X86.HasAVX2}
}

func (e *AcceleratedEngine) Name() string {
	if e.hasAVX2 {
		return "accelerated(avx2)"
	}
	return "accelerated(generic)"
}

func (e *AcceleratedEngine) Prepare([]byte, int) {}

func (e *AcceleratedEngine) FindLongestMatch(buf []byte, start, end, maxLen int) (int, int) {
	if maxLen < 2 {
		return NotFound, 0
	}
	bestLen := 0
	bestPos := -1
	needleLen := 2

	for needleLen <= maxLen {
		pos := probeAccelerated(buf, start, end, needleLen)
		if pos < 0 {
			break
		}
		matchLen := extend(buf, pos, end, maxLen)
		if matchLen > bestLen {
			bestLen = matchLen
			bestPos = pos
			if matchLen >= maxLen {
				break
			}
		}
		needleLen = bestLen + 1
	}

	if bestPos < 0 {
		return NotFound, 0
	}
	return end - bestPos, bestLen
}

// probeAccelerated finds the closest position in buf[start:end) whose
// needleLen-byte run matches buf[end:end+needleLen]. It repeatedly
// asks bytes.LastIndexByte for the nearest remaining candidate sharing
// the needle's first byte, then verifies the full run, shrinking the
// search window on a mismatch instead of stepping one byte at a time.
func probeAccelerated(buf []byte, start, end, needleLen int) int {
	first := buf[end]
	window := end
	for window > start {
		rel := bytes.LastIndexByte(buf[start:window], first)
		if rel < 0 {
			return -1
		}
		pos := start + rel
		match := true
		for i := 1; i < needleLen; i++ {
			if buf[pos+i] != buf[end+i] {
				match = false
				break
			}
		}
		if match {
			return pos
		}
		window = pos
	}
	return -1
}
