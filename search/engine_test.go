package search

import "testing"

func engines(capacity int) []Engine {
	return []Engine{NewScalar(), NewAccelerated(), NewIndexed(capacity)}
}

func TestEnginesAgreeSelfReferential(t *testing.T) {
	buf := []byte("aaaaaaaa")
	end := 1
	maxLen := 4

	for _, e := range engines(len(buf)) {
		// Prepare must see past end, exactly as the encoder's own
		// Prepare(buffer, inputOffset+inputSize) call does before any
		// FindLongestMatch probes a smaller end within that range.
		e.Prepare(buf, len(buf))
		dist, length := e.FindLongestMatch(buf, 0, end, maxLen)
		if dist != 1 {
			t.Errorf("%s: distance = %d, want 1 (closest self-referential match)", e.Name(), dist)
		}
		if length != maxLen {
			t.Errorf("%s: length = %d, want %d", e.Name(), length, maxLen)
		}
	}
}

func TestEnginesAgreeOnRepeatedPattern(t *testing.T) {
	buf := []byte("abcabcabcabd")
	end := len(buf) - 3
	start := 0
	maxLen := 3

	var first struct {
		dist, length int
		set          bool
	}
	for _, e := range engines(len(buf)) {
		e.Prepare(buf, len(buf))
		dist, length := e.FindLongestMatch(buf, start, end, maxLen)
		if !first.set {
			first.dist, first.length, first.set = dist, length, true
			continue
		}
		if dist != first.dist || length != first.length {
			t.Errorf("%s disagrees: got (%d,%d), want (%d,%d)", e.Name(), dist, length, first.dist, first.length)
		}
	}
}

func TestEnginesNoMatch(t *testing.T) {
	buf := []byte("abcdefgh")
	end := 4
	for _, e := range engines(len(buf)) {
		e.Prepare(buf, len(buf))
		dist, length := e.FindLongestMatch(buf, 0, end, 4)
		if dist != NotFound {
			t.Errorf("%s: distance = %d, want NotFound", e.Name(), dist)
		}
		if length != 0 {
			t.Errorf("%s: length = %d, want 0", e.Name(), length)
		}
	}
}

func TestEnginesPreferClosestOnTie(t *testing.T) {
	// Two equal-length candidates for needle "xy": one far (pos 0),
	// one near (pos 4). The closest must win regardless of engine.
	buf := []byte("xyzzxyzzxy")
	end := 8
	for _, e := range engines(len(buf)) {
		e.Prepare(buf, len(buf))
		dist, length := e.FindLongestMatch(buf, 0, end, 2)
		if length != 2 {
			t.Fatalf("%s: length = %d, want 2", e.Name(), length)
		}
		if dist != 4 {
			t.Errorf("%s: distance = %d, want 4 (closest occurrence)", e.Name(), dist)
		}
	}
}
