package heatshrink

import (
	"github.com/embedstream/heatshrink/bitio"
	"github.com/embedstream/heatshrink/hslog"
	"github.com/embedstream/heatshrink/search"
)

// Encoder is the compressing half of the codec: it consumes raw bytes
// via Sink and produces a compressed bit stream via Poll, per spec.md
// §4.1. It owns a double-length sliding-window buffer (backlog half +
// current-input half) so matches can reach back a full window even
// across Sink calls.
type Encoder struct {
	params Params
	engine search.Engine
	logger hslog.Logger
	stats  *Stats

	buffer []byte // len 2*WindowLen; lower half = backlog, upper half = current input
	writer *bitio.Writer
	stage  bitio.Stage

	pendingByte    byte
	hasPendingByte bool

	inputSize      int
	matchScanIndex int
	matchPos       int
	matchLength    int

	finishing bool
	state     encState
}

// NewEncoder constructs an Encoder for the given window/lookahead
// parameters. It fails if Window or Lookahead are out of the bounds
// spec.md §4.1's construct operation defines.
func NewEncoder(p Params, opts ...Option) (*Encoder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Encoder{
		params: p,
		engine: o.resolveSearchEngine(p),
		logger: o.logger,
		stats:  o.stats,
		buffer: make([]byte, 2*p.WindowLen()),
	}
	e.writer = bitio.NewWriter(func(b byte) {
		e.pendingByte = b
		e.hasPendingByte = true
	})
	e.Reset()
	return e, nil
}

// Reset returns the encoder to the state a fresh NewEncoder with the
// same parameters would be in.
func (e *Encoder) Reset() {
	e.inputSize = 0
	e.matchScanIndex = 0
	e.matchLength = 0
	e.matchPos = 0
	e.finishing = false
	e.state = encNotFull
	e.hasPendingByte = false
	e.writer.Reset()
	e.stage.Load(0, 0)
}

// inputOffset is the byte offset where the current input half begins:
// the lower half of buffer is backlog, so input starts at WindowLen.
func (e *Encoder) inputOffset() int { return e.params.WindowLen() }

// Sink appends up to len(p) bytes into the input buffer, returning how
// many were accepted.
func (e *Encoder) Sink(p []byte) (int, SinkStatus) {
	if e.finishing {
		return 0, SinkMisuse
	}
	if e.state != encNotFull {
		return 0, SinkMisuse
	}

	writeOffset := e.inputOffset() + e.inputSize
	ibs := e.params.WindowLen()
	room := ibs - e.inputSize
	n := len(p)
	if n > room {
		n = room
	}
	copy(e.buffer[writeOffset:], p[:n])
	e.inputSize += n
	e.stats.recordSink(n)

	e.logger.Debug("encoder sink", hslog.Int("accepted", n), hslog.Int("requested", len(p)), hslog.Int("input_size", e.inputSize))

	if n == room {
		e.state = encFilled
	}
	return n, SinkOK
}

// Poll runs the state machine, writing produced bytes into out, until
// out is full (PollMore) or a step makes no further progress
// (PollEmpty).
func (e *Encoder) Poll(out []byte) (int, PollStatus) {
	if len(out) == 0 {
		return 0, PollMisuse
	}
	produced := 0
	defer func() { e.stats.recordEmit(produced) }()
	for {
		if produced >= len(out) {
			if e.state == encDone {
				return produced, PollEmpty
			}
			return produced, PollMore
		}

		switch e.state {
		case encNotFull:
			return produced, PollEmpty
		case encFilled:
			e.engine.Prepare(e.buffer, e.inputOffset()+e.inputSize)
			e.state = encSearch
		case encSearch:
			e.state = e.stepSearch()
		case encYieldTagBit:
			e.state = e.stepYieldTagBit()
		case encYieldLiteral:
			e.state = e.stepYieldLiteral()
		case encYieldBrIndex:
			e.state = e.stepYieldBrIndex()
		case encYieldBrLength:
			e.state = e.stepYieldBrLength()
		case encSaveBacklog:
			e.state = e.stepSaveBacklog()
		case encFlushBits:
			e.state = e.stepFlushBits()
		case encDone:
			return produced, PollEmpty
		default:
			e.logger.Error("bad encoder state", hslog.Int("state", int(e.state)))
			return produced, PollUnknownState
		}

		if e.hasPendingByte {
			out[produced] = e.pendingByte
			produced++
			e.hasPendingByte = false
		}
	}
}

// Finish marks the input as complete. Once set, Sink returns
// SinkMisuse. Returns FinishDone once the stream is fully flushed.
func (e *Encoder) Finish() FinishStatus {
	e.finishing = true
	if e.state == encNotFull {
		e.state = encFilled
	}
	if e.state == encDone {
		return FinishDone
	}
	return FinishMore
}

func (e *Encoder) stepSearch() encState {
	windowLen := e.params.WindowLen()
	lookaheadLen := e.params.MaxMatchLen()
	msi := e.matchScanIndex

	bias := lookaheadLen
	if e.finishing {
		bias = 1
	}
	if msi > e.inputSize-bias {
		if e.finishing {
			return encFlushBits
		}
		return encSaveBacklog
	}

	inputOffset := e.inputOffset()
	end := inputOffset + msi
	start := end - windowLen

	maxPossible := lookaheadLen
	if e.inputSize-msi < lookaheadLen {
		maxPossible = e.inputSize - msi
	}

	distance, length := e.engine.FindLongestMatch(e.buffer, start, end, maxPossible)

	if distance == search.NotFound || !e.isUsefulMatch(length) {
		e.matchScanIndex++
		e.matchLength = 0
		return encYieldTagBit
	}

	e.matchPos = distance
	e.matchLength = length
	return encYieldTagBit
}

// isUsefulMatch implements the break-even policy of spec.md §4.1.1: a
// back-reference only pays for itself once it saves more bits than the
// literal encoding it replaces.
func (e *Encoder) isUsefulMatch(length int) bool {
	return length > e.params.BreakEven()
}

func (e *Encoder) stepYieldTagBit() encState {
	if e.matchLength == 0 {
		e.addTagBit(tagLiteral)
		return encYieldLiteral
	}
	e.addTagBit(tagBackref)
	e.stage.Load(uint16(e.matchPos-1), e.params.Window)
	return encYieldBrIndex
}

func (e *Encoder) stepYieldLiteral() encState {
	e.pushLiteralByte()
	e.stats.recordLiteral()
	return encSearch
}

func (e *Encoder) stepYieldBrIndex() encState {
	if e.stage.Drain(e.writer) > 0 {
		return encYieldBrIndex
	}
	e.stage.Load(uint16(e.matchLength-1), e.params.Lookahead)
	return encYieldBrLength
}

func (e *Encoder) stepYieldBrLength() encState {
	if e.stage.Drain(e.writer) > 0 {
		return encYieldBrLength
	}
	e.stats.recordBackref(e.matchLength)
	e.matchScanIndex += e.matchLength
	e.matchLength = 0
	return encSearch
}

func (e *Encoder) stepSaveBacklog() encState {
	e.saveBacklog()
	e.stats.recordBacklogShift()
	return encNotFull
}

func (e *Encoder) stepFlushBits() encState {
	e.writer.Flush()
	return encDone
}

func (e *Encoder) addTagBit(tag uint8) {
	e.writer.PushBits(1, tag)
}

func (e *Encoder) pushLiteralByte() {
	processedOffset := e.matchScanIndex - 1
	offset := e.inputOffset() + processedOffset
	c := e.buffer[offset]
	e.writer.PushBits(8, c)
}

// saveBacklog shifts the buffer down by matchScanIndex bytes, so the
// unprocessed tail of the current input half starts at WindowLen and the
// WindowLen bytes before it become the backlog, making room for more
// Sink calls, per spec.md §4.1.3.
func (e *Encoder) saveBacklog() {
	inputBufSz := e.params.WindowLen()
	msi := e.matchScanIndex
	rem := inputBufSz - msi // unprocessed bytes

	copy(e.buffer, e.buffer[inputBufSz-rem:])

	e.matchScanIndex = 0
	e.inputSize -= inputBufSz - rem
}
