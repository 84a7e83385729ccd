// Package heatshrink implements a streaming LZSS-style compression
// codec for memory-constrained environments. An Encoder consumes raw
// bytes and emits a self-contained MSB-first bit stream; a Decoder
// reverses the operation. Both run in bounded memory sized entirely by
// two construction-time parameters: the sliding-window size and the
// lookahead size, both in bits.
//
// Both state machines are cooperative and non-suspending: Sink and
// Poll never block, and suspend (returning a status instead of
// progress) exactly at output-buffer-full or input-exhausted. Resuming
// after a suspension is mechanical — all progress-affecting state lives
// on the Encoder/Decoder value, never on a goroutine stack.
package heatshrink
