// Package hslog is a thin structured-logging shim over zap. The
// teacher's original state machines call log.Printf unconditionally on
// every transition; here tracing is a level-gated, zero-cost-when-off
// Debug call instead.
package hslog

import "go.uber.org/zap"

// Logger is the interface the codec depends on. *zap.Logger satisfies
// it directly; NoOp() is the zero-value default so library users pay
// nothing unless they opt in via heatshrink.WithLogger.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

type noop struct{}

func (noop) Debug(string, ...zap.Field) {}
func (noop) Error(string, ...zap.Field) {}

// NoOp returns a Logger that discards everything.
func NoOp() Logger { return noop{} }

// New wraps a *zap.Logger so it can be passed to heatshrink.WithLogger.
func New(z *zap.Logger) Logger { return z }

// Field re-exports are convenience constructors used throughout the
// codec so callers of this package never need to import zap directly.
var (
	Int    = zap.Int
	Uint8  = zap.Uint8
	Uint16 = zap.Uint16
	String = zap.String
	Bool   = zap.Bool
	Error  = zap.Error
)
