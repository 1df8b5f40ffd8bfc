package zerolog

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xtimber"
)

// Tree bridges xtimber entries into rs/zerolog with low overhead.
//
// Optimizations:
//   - Loggable checks GetLevel() so disabled levels cost one comparison
//     and xtimber never builds the message.
//   - Uses Logger.WithLevel(...) to avoid a level switch at call sites.
type Tree struct {
	xtimber.Base

	l zerolog.Logger
}

func New(l zerolog.Logger) *Tree {
	return &Tree{l: l}
}

// Loggable defers to the zerolog logger's own level filter.
func (t *Tree) Loggable(_ string, level xtimber.Level) bool {
	return mapLevel(level) >= t.l.GetLevel()
}

// Write emits a single entry.
//   - The dispatch timestamp is written as "ts" with RFC3339Nano precision.
//   - The explicit tag, when present, becomes a "tag" field.
//   - LevelAssert is treated as error level to avoid os.Exit side-effects.
func (t *Tree) Write(e xtimber.Entry) {
	zlvl := mapLevel(e.Level)

	// Fast path: drop early if below the logger's min level (no Event
	// allocation).
	if zlvl < t.l.GetLevel() {
		return
	}

	ev := t.l.WithLevel(zlvl)
	ev.Str("ts", e.At.UTC().Format(time.RFC3339Nano))
	if e.Tag != "" {
		ev.Str("tag", e.Tag)
	}
	if e.Err != nil {
		ev.Err(e.Err)
	}
	ev.Msg(e.Message)
}

// SetMinLevel adjusts the backend filter.
func (t *Tree) SetMinLevel(l xtimber.Level) {
	t.l = t.l.Level(mapLevel(l))
}

// mapLevel converts xtimber.Level to zerolog.Level. LevelAssert is mapped
// to Error to avoid zerolog.Fatal() (which would exit the process).
func mapLevel(l xtimber.Level) zerolog.Level {
	switch {
	case l <= xtimber.LevelDebug:
		return zerolog.DebugLevel
	case l <= xtimber.LevelWarn:
		return zerolog.WarnLevel
	case l <= xtimber.LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.ErrorLevel
	}
}
