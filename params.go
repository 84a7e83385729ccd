package heatshrink

import (
	"fmt"

	"github.com/embedstream/heatshrink/hserr"
	"github.com/embedstream/heatshrink/hslog"
	"github.com/embedstream/heatshrink/search"
)

// Configuration bounds from spec.md §6.
const (
	MinWindowBits    = 4
	MaxWindowBits    = 15
	MinLookaheadBits = 3

	// DefaultInputBufferSize is the decoder's default input buffer
	// capacity when WithInputBufferSize is not supplied. It is
	// independent of the window size.
	DefaultInputBufferSize = 256
)

// Params are the window/lookahead parameters frozen at construction,
// per spec.md §3.
type Params struct {
	// Window is W: the sliding-window size in bits. WLEN = 1<<Window.
	Window uint8
	// Lookahead is L: the maximum back-reference length in bits.
	// MAXL = 1<<Lookahead.
	Lookahead uint8
}

// Validate checks W and L against the bounds in spec.md §4.1's
// construct operation.
func (p Params) Validate() error {
	if p.Window < MinWindowBits || p.Window > MaxWindowBits {
		return hserr.Wrap(hserr.ErrInvalidParams, "window bits %d outside [%d,%d]", p.Window, MinWindowBits, MaxWindowBits)
	}
	if p.Lookahead < MinLookaheadBits || p.Lookahead >= p.Window {
		return hserr.Wrap(hserr.ErrInvalidParams, "lookahead bits %d outside [%d,%d)", p.Lookahead, MinLookaheadBits, p.Window)
	}
	return nil
}

// WindowLen returns WLEN = 1<<Window.
func (p Params) WindowLen() int { return 1 << p.Window }

// MaxMatchLen returns MAXL = 1<<Lookahead.
func (p Params) MaxMatchLen() int { return 1 << p.Lookahead }

// BreakEven returns the break-even length in bytes, (1+W+L)/8 rounded
// down: the longest match that saves no bits over literals. The
// encoder only emits back-references strictly longer than this.
func (p Params) BreakEven() int {
	return (1 + int(p.Window) + int(p.Lookahead)) / 8
}

func (p Params) String() string {
	return fmt.Sprintf("W=%d L=%d", p.Window, p.Lookahead)
}

// options holds the shared configuration surface for NewEncoder and
// NewDecoder.
type options struct {
	logger          hslog.Logger
	searchEngine    search.Engine
	useIndexed      bool
	inputBufferSize int
	stats           *Stats
}

// Option configures an Encoder or Decoder at construction time.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger:          hslog.NoOp(),
		inputBufferSize: DefaultInputBufferSize,
	}
}

// resolveSearchEngine picks the Encoder's search engine once Params are
// known: an explicit WithSearchBackend wins, then WithIndexedSearch
// (sized to this encoder's buffer), else the scalar reference.
func (o options) resolveSearchEngine(p Params) search.Engine {
	if o.searchEngine != nil {
		return o.searchEngine
	}
	if o.useIndexed {
		return search.NewIndexed(2 * p.WindowLen())
	}
	return search.NewScalar()
}

// WithLogger attaches a structured logger for state-machine tracing.
// The zero value logs nothing.
func WithLogger(l hslog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSearchBackend selects the pattern-search engine an Encoder uses.
// It has no effect on Decoder. Defaults to search.NewScalar(). Takes
// precedence over WithIndexedSearch if both are supplied.
func WithSearchBackend(e search.Engine) Option {
	return func(o *options) { o.searchEngine = e }
}

// WithIndexedSearch selects search.IndexedEngine, sized automatically
// to this encoder's buffer, trading an extra four bytes of index per
// buffer byte (2*WLEN int32 entries) for faster matching on larger
// windows. It has no effect on Decoder.
func WithIndexedSearch() Option {
	return func(o *options) { o.useIndexed = true }
}

// WithInputBufferSize sets the decoder's input buffer capacity (IBS,
// 1..65535). It has no effect on Encoder, whose input buffer is always
// sized WLEN by spec.md §3. Defaults to DefaultInputBufferSize.
func WithInputBufferSize(n int) Option {
	return func(o *options) { o.inputBufferSize = n }
}

// WithStats attaches a Stats recorder. Nil (the default) disables
// accounting entirely at no cost.
func WithStats(s *Stats) Option {
	return func(o *options) { o.stats = s }
}
