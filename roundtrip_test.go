package heatshrink

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/embedstream/heatshrink/search"
)

func paramCombos() []Params {
	var out []Params
	for w := uint8(MinWindowBits); w <= 10; w++ {
		for l := uint8(MinLookaheadBits); l < w; l++ {
			out = append(out, Params{Window: w, Lookahead: l})
		}
	}
	return out
}

func sampleInputs() map[string][]byte {
	r := rand.New(rand.NewSource(1))
	random := make([]byte, 2000)
	r.Read(random)

	repeated := bytes.Repeat([]byte("ab"), 500)

	return map[string][]byte{
		"empty":       {},
		"single_byte": []byte("a"),
		"self_ref":    []byte("aaaaaaaa"),
		"text":        []byte("HELLO WORLD THINKS WORLD GREAT. THE WORLD IS GREAT."),
		"repeated":    repeated,
		"random":      random,
	}
}

func TestRoundtripBulk(t *testing.T) {
	inputs := sampleInputs()
	for _, p := range paramCombos() {
		p := p
		for name, in := range inputs {
			in := in
			t.Run(p.String()+"/"+name, func(t *testing.T) {
				out, err := Compress(p, in)
				if err != nil {
					t.Fatalf("Compress: %v", err)
				}
				back, err := Decompress(p, out)
				if err != nil {
					t.Fatalf("Decompress: %v", err)
				}
				if !bytes.Equal(back, in) {
					t.Fatalf("roundtrip mismatch: got %q, want %q", back, in)
				}
			})
		}
	}
}

// TestRoundtripOneByteAtATime feeds the encoder and decoder one byte of
// input (and one byte of output buffer) at a time, to exercise the
// suspend/resume paths of Sink and Poll rather than only the
// bulk-buffer fast paths.
func TestRoundtripOneByteAtATime(t *testing.T) {
	in := []byte("the quick brown fox jumps over the lazy dog the quick brown fox")
	p := Params{Window: 8, Lookahead: 4}

	enc, err := NewEncoder(p)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	var compressed []byte
	sunk := 0
	one := make([]byte, 1)
	for sunk < len(in) {
		n, status := enc.Sink(in[sunk : sunk+1])
		if n == 1 {
			sunk++
		}
		if status == SinkFull || n == 0 {
			for {
				m, ps := enc.Poll(one)
				compressed = append(compressed, one[:m]...)
				if ps != PollMore {
					break
				}
			}
		}
	}
	enc.Finish()
	for {
		m, ps := enc.Poll(one)
		compressed = append(compressed, one[:m]...)
		if ps != PollMore {
			break
		}
	}

	dec, err := NewDecoder(p, WithInputBufferSize(4))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	var out []byte
	sunk = 0
	for sunk < len(compressed) {
		n, status := dec.Sink(compressed[sunk : sunk+1])
		if n == 1 {
			sunk++
		}
		if status == SinkFull || n == 0 {
			for {
				m, ps := dec.Poll(one)
				out = append(out, one[:m]...)
				if ps != PollMore {
					break
				}
			}
		}
	}
	for {
		m, ps := dec.Poll(one)
		out = append(out, one[:m]...)
		if ps != PollMore {
			break
		}
	}

	if !bytes.Equal(out, in) {
		t.Fatalf("roundtrip mismatch: got %q, want %q", out, in)
	}
}

func TestRoundtripIndexedMatchesScalar(t *testing.T) {
	in := bytes.Repeat([]byte("abcabcabcabd"), 40)
	p := Params{Window: 10, Lookahead: 5}

	outScalar, err := Compress(p, in, WithSearchBackend(search.NewScalar()))
	if err != nil {
		t.Fatalf("scalar compress: %v", err)
	}
	outIndexed, err := Compress(p, in, WithIndexedSearch())
	if err != nil {
		t.Fatalf("indexed compress: %v", err)
	}
	if !bytes.Equal(outScalar, outIndexed) {
		t.Fatalf("scalar and indexed backends diverged: %d vs %d bytes", len(outScalar), len(outIndexed))
	}

	outAccel, err := Compress(p, in, WithSearchBackend(search.NewAccelerated()))
	if err != nil {
		t.Fatalf("accelerated compress: %v", err)
	}
	if !bytes.Equal(outScalar, outAccel) {
		t.Fatalf("scalar and accelerated backends diverged: %d vs %d bytes", len(outScalar), len(outAccel))
	}
}
