package zap

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xtimber"
)

// Tree bridges xtimber entries into go.uber.org/zap with low overhead.
//
// Optimizations:
//   - Loggable consults the zap core directly, so disabled levels cost one
//     enabled check and xtimber never builds the message.
//   - Uses Logger.Check(level, msg) so disabled entries allocate nothing.
//   - Guarantees RFC3339Nano "ts" precision by writing the dispatch
//     timestamp as a string field.
//
// Optional behavior:
//   - SetMinLevel leverages zap.AtomicLevel when provided at construction
//     time to adjust backend filtering. If no AtomicLevel is provided,
//     SetMinLevel is a no-op.
type Tree struct {
	xtimber.Base

	l     *zap.Logger
	al    *zap.AtomicLevel // optional, enables SetMinLevel
	tsKey string           // timestamp field key; default "ts"
}

// New creates a tree for the provided zap logger.
func New(l *zap.Logger) *Tree {
	if l == nil {
		l = zap.NewNop()
	}
	return &Tree{l: l, tsKey: "ts"}
}

// NewWithAtomicLevel creates a tree and wires a zap.AtomicLevel so
// SetMinLevel can dynamically adjust the backend's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Tree {
	if l == nil {
		l = zap.NewNop()
	}
	return &Tree{l: l, al: al, tsKey: "ts"}
}

// Loggable defers to the zap core's own level filter.
func (t *Tree) Loggable(_ string, level xtimber.Level) bool {
	return t.l.Core().Enabled(toZapLevel(level))
}

// Write emits a single entry.
//   - The dispatch timestamp is written as tsKey with RFC3339Nano precision.
//   - The explicit tag, when present, becomes a "tag" field.
//   - LevelAssert maps to Error to avoid os.Exit in library code.
func (t *Tree) Write(e xtimber.Entry) {
	ce := t.l.Check(toZapLevel(e.Level), e.Message)
	if ce == nil {
		return
	}

	zfs := make([]zap.Field, 0, 3)
	zfs = append(zfs, zap.String(t.tsKey, e.At.UTC().Format(time.RFC3339Nano)))
	if e.Tag != "" {
		zfs = append(zfs, zap.String("tag", e.Tag))
	}
	if e.Err != nil {
		zfs = append(zfs, zap.Error(e.Err))
	}
	ce.Write(zfs...)
}

// SetMinLevel updates the backend filter when an AtomicLevel was supplied.
func (t *Tree) SetMinLevel(l xtimber.Level) {
	if t.al == nil {
		return
	}
	t.al.SetLevel(toZapLevel(l))
}

func toZapLevel(l xtimber.Level) zapcore.Level {
	switch {
	case l <= xtimber.LevelDebug:
		return zapcore.DebugLevel
	case l <= xtimber.LevelWarn:
		return zapcore.WarnLevel
	case l <= xtimber.LevelError:
		return zapcore.ErrorLevel
	default:
		// Avoid Fatal/DPanic to prevent exits in library code.
		return zapcore.ErrorLevel
	}
}
