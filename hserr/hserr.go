// Package hserr defines the sentinel errors shared by the encoder and
// decoder state machines.
package hserr

import (
	"errors"
	"fmt"

	"golang.org/x/xerrors"
)

// Sentinel errors. Compare with errors.Is / xerrors.Is, never by string.
var (
	ErrNullArg      = errors.New("heatshrink: required argument is nil")
	ErrMisuse       = errors.New("heatshrink: api misuse")
	ErrUnknownState = errors.New("heatshrink: unknown state machine state")
	ErrInvalidParams = errors.New("heatshrink: invalid window/lookahead parameters")
)

// Wrap annotates err with a contextual message while keeping it
// comparable via errors.Is/xerrors.Is against the sentinels above.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return xerrors.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether err wraps target anywhere in its chain.
func Is(err, target error) bool {
	return xerrors.Is(err, target)
}
