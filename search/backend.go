// Package search implements the sliding-window pattern-search engine
// that powers the encoder's longest-match lookup. It is deliberately
// decoupled from the encoder state machine: an Engine is a pure
// function of a window buffer, so alternative implementations (scalar
// reference, hash-chain index, accelerated) can be swapped in at
// construction time without touching the state machine.
//
// Every Engine must answer the same question — "what is the longest
// run of bytes starting at end that also occurs starting somewhere in
// [start,end), and how close is the nearest such occurrence" — and,
// per spec, all engines must agree byte-for-byte on the answer. The
// shared tie-break rule that makes that possible: among equal-length
// matches, prefer the one closest to end (smallest distance).
package search

// NotFound is the sentinel distance returned when no useful match
// exists.
const NotFound = -1

// Engine finds the longest match for the upcoming bytes at buf[end:]
// against the history in buf[start:end).
type Engine interface {
	// Prepare runs once per buffer fill, before any FindLongestMatch
	// call against that fill. Engines that need no precomputation
	// (Scalar, Accelerated) may make this a no-op.
	Prepare(buf []byte, end int)

	// FindLongestMatch returns the distance (1..end-start) back from
	// end to the closest-longest match and its length (up to maxLen),
	// or (NotFound, 0) if no match of length >= 2 exists.
	FindLongestMatch(buf []byte, start, end, maxLen int) (distance, length int)

	// Name identifies the engine for diagnostics/logging.
	Name() string
}

// extend grows a confirmed candidate at pos forward, byte by byte,
// against the bytes at end, up to maxLen bytes. Reads past len(buf)
// never occur: callers size buf so the lookahead region starting at
// end is fully addressable up to maxLen bytes.
func extend(buf []byte, pos, end, maxLen int) int {
	n := 0
	for n < maxLen && buf[pos+n] == buf[end+n] {
		n++
	}
	return n
}
