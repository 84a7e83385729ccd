package search

// IndexedEngine is the alternative backend from spec.md §4.1.2: a
// per-byte-value hash chain built once per buffer fill, used to walk
// only the positions that could possibly match instead of scanning the
// whole window. It adds an int32 per buffer byte (four bytes for each
// byte of the 2*WLEN double buffer) to the encoder's RAM use in
// exchange for faster matching on larger windows, and
// is incompatible with the generic needle-growing driver the other
// engines share — it answers the whole longest-match contract in a
// single chain walk, per spec.md §9's "optional index backend" note.
//
// Grounded in the teacher's do_indexing/find_longest_match pair.
type IndexedEngine struct {
	chain []int32 // chain[i] = previous buffer offset with the same byte value as buf[i], or -1
}

// NewIndexed returns an indexed search engine. capacity must be the
// full size of the encoder's double buffer (2*WLEN).
func NewIndexed(capacity int) *IndexedEngine {
	return &IndexedEngine{chain: make([]int32, capacity)}
}

func (e *IndexedEngine) Name() string { return "indexed" }

// Prepare rebuilds the hash chain over buf[0:end). FindLongestMatch
// starts its walk at chain[end], so Prepare's end must be strictly
// greater than any end later passed to FindLongestMatch.
func (e *IndexedEngine) Prepare(buf []byte, end int) {
	var last [256]int32
	for i := range last {
		last[i] = -1
	}
	for i := 0; i < end; i++ {
		v := buf[i]
		e.chain[i] = last[v]
		last[v] = int32(i)
	}
}

func (e *IndexedEngine) FindLongestMatch(buf []byte, start, end, maxLen int) (int, int) {
	if maxLen < 1 || end >= len(e.chain) {
		return NotFound, 0
	}

	bestLen := 0
	bestPos := -1

	pos := e.chain[end]
	for pos >= int32(start) {
		p := int(pos)
		// Only bother checking candidates that could beat the current
		// best: the byte at the current best length must also match,
		// which is redundant with a fresh bestLen==0 but cheap to skip.
		if bestLen > 0 && buf[p+bestLen] != buf[end+bestLen] {
			pos = e.chain[p]
			continue
		}

		n := extend(buf, p, end, maxLen)
		if n > bestLen {
			bestLen = n
			bestPos = p
			if n >= maxLen {
				break
			}
		}
		pos = e.chain[p]
	}

	if bestPos < 0 || bestLen < 2 {
		return NotFound, 0
	}
	return end - bestPos, bestLen
}
