package heatshrink

import (
	"github.com/embedstream/heatshrink/bitio"
	"github.com/embedstream/heatshrink/hserr"
	"github.com/embedstream/heatshrink/hslog"
)

// Decoder is the expanding half of the codec: it consumes compressed
// bytes via Sink and reconstructs the original bytes via Poll, per
// spec.md §4.2. It writes reconstructed bytes into both the caller's
// output buffer and its own sliding window, so back-references can
// read from it.
type Decoder struct {
	params Params
	logger hslog.Logger
	stats  *Stats

	reader *bitio.Reader
	window []byte // len WindowLen, circular, index by headIndex & mask

	headIndex   int
	outputIndex int
	outputCount int

	state decState
}

// NewDecoder constructs a Decoder for the given window/lookahead
// parameters with an input buffer capacity of IBS (WithInputBufferSize,
// default DefaultInputBufferSize).
func NewDecoder(p Params, opts ...Option) (*Decoder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.inputBufferSize < 1 || o.inputBufferSize > 65535 {
		return nil, hserr.Wrap(hserr.ErrInvalidParams, "input buffer size %d outside [1,65535]", o.inputBufferSize)
	}

	d := &Decoder{
		params: p,
		logger: o.logger,
		stats:  o.stats,
		reader: bitio.NewReader(o.inputBufferSize),
		window: make([]byte, p.WindowLen()),
	}
	d.Reset()
	return d, nil
}

// Reset returns the decoder to the state a fresh NewDecoder with the
// same parameters would be in. The window is zeroed, matching spec.md
// §3's "after initialization everything is zero" invariant.
func (d *Decoder) Reset() {
	d.state = decTagBit
	d.outputIndex = 0
	d.outputCount = 0
	d.headIndex = 0
	d.reader.Reset()
	for i := range d.window {
		d.window[i] = 0
	}
}

func (d *Decoder) mask() int { return d.params.WindowLen() - 1 }

// Sink appends up to len(p) bytes into the decoder's input buffer.
func (d *Decoder) Sink(p []byte) (int, SinkStatus) {
	n := d.reader.Sink(p)
	d.stats.recordSink(n)
	d.logger.Debug("decoder sink", hslog.Int("accepted", n), hslog.Int("requested", len(p)))
	if n == 0 && len(p) > 0 {
		return 0, SinkFull
	}
	return n, SinkOK
}

// Poll runs the state machine, writing reconstructed bytes into out,
// until out is full (PollMore) or a step cannot advance for lack of
// input (PollEmpty).
func (d *Decoder) Poll(out []byte) (int, PollStatus) {
	produced := 0
	defer func() { d.stats.recordEmit(produced) }()
	for {
		if produced >= len(out) {
			return produced, PollMore
		}

		switch d.state {
		case decTagBit:
			next, ok := d.stepTagBit()
			if !ok {
				return produced, PollEmpty
			}
			d.state = next
		case decYieldLiteral:
			b, ok := d.stepYieldLiteral()
			if !ok {
				return produced, PollEmpty
			}
			out[produced] = b
			produced++
			d.state = decTagBit
		case decBackrefIndexMsb:
			next, ok := d.stepBackrefIndexMsb()
			if !ok {
				return produced, PollEmpty
			}
			d.state = next
		case decBackrefIndexLsb:
			next, ok := d.stepBackrefIndexLsb()
			if !ok {
				return produced, PollEmpty
			}
			d.state = next
		case decBackrefCountMsb:
			next, ok := d.stepBackrefCountMsb()
			if !ok {
				return produced, PollEmpty
			}
			d.state = next
		case decBackrefCountLsb:
			next, ok := d.stepBackrefCountLsb()
			if !ok {
				return produced, PollEmpty
			}
			d.state = next
		case decYieldBackref:
			n := d.stepYieldBackref(out[produced:])
			produced += n
			if d.outputCount == 0 {
				d.state = decTagBit
			}
		default:
			d.logger.Error("bad decoder state", hslog.Int("state", int(d.state)))
			return produced, PollUnknownState
		}
	}
}

// inLegalPaddingState reports the states from which Finish may legitimately
// report Done with zero input remaining, per spec.md §4.2.3: trailing
// zero-padding of the final byte looks like a backref tag bit followed
// by all-zero fields, or a stall waiting for a literal byte.
func (d *Decoder) inLegalPaddingState() bool {
	switch d.state {
	case decTagBit, decBackrefIndexMsb, decBackrefIndexLsb,
		decBackrefCountMsb, decBackrefCountLsb, decYieldLiteral:
		return true
	default:
		return false
	}
}

// Finish reports whether decoding is complete. Must only be called
// once Sink has supplied all compressed bytes.
func (d *Decoder) Finish() FinishStatus {
	if d.inLegalPaddingState() {
		if d.reader.Len() == 0 {
			return FinishDone
		}
		return FinishMore
	}
	return FinishMore
}

func (d *Decoder) stepTagBit() (decState, bool) {
	bits := d.reader.Pull(1)
	if bits == bitio.NoBits {
		return decTagBit, false
	}
	if bits > 0 {
		return decYieldLiteral, true
	}
	if d.params.Window > 8 {
		return decBackrefIndexMsb, true
	}
	d.outputIndex = 0
	return decBackrefIndexLsb, true
}

func (d *Decoder) stepYieldLiteral() (byte, bool) {
	bits := d.reader.Pull(8)
	if bits == bitio.NoBits {
		return 0, false
	}
	c := byte(bits & 0xFF)
	d.window[d.headIndex&d.mask()] = c
	d.headIndex++
	d.stats.recordLiteral()
	return c, true
}

func (d *Decoder) stepBackrefIndexMsb() (decState, bool) {
	bitCt := d.params.Window - 8
	bits := d.reader.Pull(bitCt)
	if bits == bitio.NoBits {
		return decBackrefIndexMsb, false
	}
	d.outputIndex = int(bits) << 8
	return decBackrefIndexLsb, true
}

func (d *Decoder) stepBackrefIndexLsb() (decState, bool) {
	bitCt := d.params.Window
	if bitCt > 8 {
		bitCt = 8
	}
	bits := d.reader.Pull(bitCt)
	if bits == bitio.NoBits {
		return decBackrefIndexLsb, false
	}
	d.outputIndex |= int(bits)
	d.outputIndex++
	d.outputCount = 0
	if d.params.Lookahead > 8 {
		return decBackrefCountMsb, true
	}
	return decBackrefCountLsb, true
}

func (d *Decoder) stepBackrefCountMsb() (decState, bool) {
	bitCt := d.params.Lookahead - 8
	bits := d.reader.Pull(bitCt)
	if bits == bitio.NoBits {
		return decBackrefCountMsb, false
	}
	d.outputCount = int(bits) << 8
	return decBackrefCountLsb, true
}

func (d *Decoder) stepBackrefCountLsb() (decState, bool) {
	bitCt := d.params.Lookahead
	if bitCt > 8 {
		bitCt = 8
	}
	bits := d.reader.Pull(bitCt)
	if bits == bitio.NoBits {
		return decBackrefCountLsb, false
	}
	d.outputCount |= int(bits)
	d.outputCount++
	d.stats.recordBackref(d.outputCount)
	return decYieldBackref, true
}

// stepYieldBackref copies up to min(outputCount, len(out)) bytes from
// the sliding window back into both the window and out, one byte at a
// time — required even when the source and destination overlap, since
// a back-reference may be self-referential (spec.md §9).
func (d *Decoder) stepYieldBackref(out []byte) int {
	n := d.outputCount
	if len(out) < n {
		n = len(out)
	}
	mask := uint(d.mask())
	negOffset := d.outputIndex

	for i := 0; i < n; i++ {
		c := d.window[uint(d.headIndex-negOffset)&mask]
		out[i] = c
		d.window[uint(d.headIndex)&mask] = c
		d.headIndex++
	}
	d.outputCount -= n
	return n
}
