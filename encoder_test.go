package heatshrink

import (
	"testing"

	"github.com/embedstream/heatshrink/hserr"
)

func TestParamsValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"min valid", Params{Window: MinWindowBits, Lookahead: MinLookaheadBits}, true},
		{"max valid", Params{Window: MaxWindowBits, Lookahead: MaxWindowBits - 1}, true},
		{"window too small", Params{Window: MinWindowBits - 1, Lookahead: MinLookaheadBits}, false},
		{"window too large", Params{Window: MaxWindowBits + 1, Lookahead: MinLookaheadBits}, false},
		{"lookahead too small", Params{Window: 8, Lookahead: MinLookaheadBits - 1}, false},
		{"lookahead not below window", Params{Window: 8, Lookahead: 8}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.p.Validate()
			if c.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !c.ok && err == nil {
				t.Errorf("Validate() = nil, want error")
			}
			if !c.ok && !hserr.Is(err, hserr.ErrInvalidParams) {
				t.Errorf("Validate() error not wrapping ErrInvalidParams: %v", err)
			}
		})
	}
}

func TestBreakEven(t *testing.T) {
	p := Params{Window: 8, Lookahead: 4}
	if got := p.BreakEven(); got != (1+8+4)/8 {
		t.Errorf("BreakEven() = %d, want %d", got, (1+8+4)/8)
	}
}

func TestEncoderEmptyInput(t *testing.T) {
	out, err := Compress(Params{Window: 8, Lookahead: 4}, nil)
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Compress(nil) = %v, want empty", out)
	}
}

func TestEncoderSingleByte(t *testing.T) {
	out, err := Compress(Params{Window: 8, Lookahead: 4}, []byte("a"))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	// A single literal tag bit (1) followed by the 8 bits of 'a'
	// (0x61 = 01100001): the first byte is 1 0110000 -> 0xB0, and the
	// last bit of 'a' is flushed left-justified into a second byte, 0x80.
	if len(out) == 0 {
		t.Fatal("Compress(\"a\") produced no output")
	}
	if out[0] != 0xB0 {
		t.Errorf("Compress(\"a\")[0] = %#x, want 0xb0", out[0])
	}
}

func TestEncoderSelfReferentialMatch(t *testing.T) {
	p := Params{Window: 8, Lookahead: 4}
	stats := NewStats()
	in := []byte("aaaaaaaa")

	out, err := Compress(p, in, WithStats(stats))
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if got := stats.Literals.Load(); got != 1 {
		t.Errorf("Literals = %d, want 1", got)
	}
	if got := stats.Backrefs.Load(); got != 1 {
		t.Errorf("Backrefs = %d, want 1", got)
	}
	if got := stats.BackrefBytes.Load(); got != 7 {
		t.Errorf("BackrefBytes = %d, want 7", got)
	}

	back, err := Decompress(p, out)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if string(back) != string(in) {
		t.Errorf("roundtrip = %q, want %q", back, in)
	}
}

func TestEncoderSinkMisuseAfterFinish(t *testing.T) {
	enc, err := NewEncoder(Params{Window: 8, Lookahead: 4})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	enc.Finish()
	if n, status := enc.Sink([]byte("x")); n != 0 || status != SinkMisuse {
		t.Errorf("Sink after Finish = (%d, %v), want (0, Misuse)", n, status)
	}
}

func TestEncoderPollZeroBufferIsMisuse(t *testing.T) {
	enc, err := NewEncoder(Params{Window: 8, Lookahead: 4})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	if n, status := enc.Poll(nil); n != 0 || status != PollMisuse {
		t.Errorf("Poll(nil) = (%d, %v), want (0, Misuse)", n, status)
	}
}

func TestEncoderResetIdempotent(t *testing.T) {
	enc, err := NewEncoder(Params{Window: 8, Lookahead: 4})
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	enc.Sink([]byte("hello"))
	enc.Reset()
	enc.Reset()
	if enc.state != encNotFull {
		t.Errorf("state after double Reset = %v, want NotFull", enc.state)
	}
	if enc.inputSize != 0 {
		t.Errorf("inputSize after Reset = %d, want 0", enc.inputSize)
	}
}
