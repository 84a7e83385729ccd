package heatshrink

// Compress is a convenience wrapper that drives an Encoder to
// completion over an in-memory byte slice, for callers who don't need
// to stream. It mirrors the teacher's package-level Compress helper.
func Compress(p Params, data []byte, opts ...Option) ([]byte, error) {
	enc, err := NewEncoder(p, opts...)
	if err != nil {
		return nil, err
	}
	return drainEncoder(enc, data), nil
}

// Decompress is the Compress counterpart for decoding.
func Decompress(p Params, data []byte, opts ...Option) ([]byte, error) {
	dec, err := NewDecoder(p, opts...)
	if err != nil {
		return nil, err
	}
	return drainDecoder(dec, data), nil
}

func drainEncoder(enc *Encoder, data []byte) []byte {
	var out []byte
	buf := make([]byte, 256)
	sunk := 0
	for {
		if sunk < len(data) {
			n, status := enc.Sink(data[sunk:])
			sunk += n
			if status == SinkFull || n == 0 {
				out = pollAll(out, buf, enc.Poll)
			}
		}
		if sunk == len(data) {
			break
		}
	}
	enc.Finish()
	for {
		n, status := enc.Poll(buf)
		out = append(out, buf[:n]...)
		if status != PollMore {
			break
		}
	}
	return out
}

func drainDecoder(dec *Decoder, data []byte) []byte {
	var out []byte
	buf := make([]byte, 256)
	sunk := 0
	for {
		if sunk < len(data) {
			n, status := dec.Sink(data[sunk:])
			sunk += n
			if status == SinkFull || n == 0 {
				out = pollAll(out, buf, dec.Poll)
			}
		}
		if sunk == len(data) {
			break
		}
	}
	for {
		n, status := dec.Poll(buf)
		out = append(out, buf[:n]...)
		if status != PollMore {
			break
		}
	}
	return out
}

func pollAll(out []byte, buf []byte, poll func([]byte) (int, PollStatus)) []byte {
	for {
		n, status := poll(buf)
		out = append(out, buf[:n]...)
		if status != PollMore {
			return out
		}
	}
}
