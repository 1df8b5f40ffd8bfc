package slog

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/xtimber"
)

// Tree bridges xtimber entries into the Go slog API. It builds slog.Attrs
// directly and emits via LogAttrs for minimal allocations.
type Tree struct {
	xtimber.Base

	l *slog.Logger
}

func New(l *slog.Logger) *Tree {
	if l == nil {
		l = slog.Default()
	}
	return &Tree{l: l}
}

func toSlog(l xtimber.Level) slog.Level {
	// xtimber levels share slog's numeric scale; ASSERT lands above ERROR.
	return slog.Level(l)
}

// Loggable defers to the handler's own level filter.
func (t *Tree) Loggable(_ string, level xtimber.Level) bool {
	return t.l.Enabled(context.Background(), toSlog(level))
}

// Write emits a single entry. The dispatch timestamp is carried as a "ts"
// attribute and the explicit tag, when present, as "tag".
func (t *Tree) Write(e xtimber.Entry) {
	attrs := make([]slog.Attr, 0, 3)
	attrs = append(attrs, slog.Time("ts", e.At))
	if e.Tag != "" {
		attrs = append(attrs, slog.String("tag", e.Tag))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.Any("error", e.Err))
	}
	t.l.LogAttrs(context.Background(), toSlog(e.Level), e.Message, attrs...)
}

// Use wraps l (or slog.Default() when nil), plants the tree in the default
// forest, and returns it. Uproot the returned tree to detach it again.
func Use(l *slog.Logger) *Tree {
	tree := New(l)
	xtimber.Plant(tree)
	return tree
}
