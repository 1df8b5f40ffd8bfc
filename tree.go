package xtimber

import (
	"runtime"
	"sync"
	"time"
)

// Entry is a single prepared log record delivered to trees. It is built
// per dispatch and never retained by the Forest.
//
// At is the single authoritative timestamp taken once per dispatch from
// xclock; every tree in the fan-out observes the same instant. Tag is the
// explicit tag consumed for the receiving tree, or "" when none was set
// (trees may then infer their own). Message already has the rendered error
// trace applied per the formatting rule, and Err carries the original
// error for backends that encode errors structurally.
type Entry struct {
	At      time.Time
	Level   Level
	Tag     string
	Message string
	Err     error
}

// Tree is a log sink. Implementations decide per entry whether they are
// interested (Loggable) and how to emit (Write). The set of
// implementations is open: application code plants arbitrary trees.
//
// SetTag and ConsumeTag carry the one-shot pending tag; embed Base to get
// the canonical goroutine-scoped implementation along with an
// always-loggable default. The Forest calls ConsumeTag exactly once per
// tree per dispatch, whether or not the tree is loggable, so a pending tag
// can never leak into a later, unrelated call.
type Tree interface {
	// Loggable reports whether this tree wants entries with the given
	// tag and level. It must not touch the pending-tag state.
	Loggable(tag string, level Level) bool

	// SetTag sets the pending tag for the calling goroutine.
	SetTag(tag string)

	// ConsumeTag returns and clears the calling goroutine's pending tag.
	ConsumeTag() (string, bool)

	// Write emits a prepared entry. The Forest never calls Write with an
	// empty message unless the entry carries an error.
	Write(e Entry)
}

// Base provides the default tree behavior: loggable at every level, and a
// goroutine-scoped one-shot pending tag. Concrete trees embed it and
// implement Write.
type Base struct {
	pending sync.Map // goroutine id -> string
}

// Loggable reports true for every tag and level.
func (b *Base) Loggable(string, Level) bool { return true }

// SetTag sets the pending tag for the calling goroutine. It is consumed
// by the next dispatch on the same goroutine; if no dispatch follows, the
// tag is simply lost.
func (b *Base) SetTag(tag string) { b.pending.Store(goid(), tag) }

// ConsumeTag returns and clears the pending tag for the calling
// goroutine.
func (b *Base) ConsumeTag() (string, bool) {
	v, ok := b.pending.LoadAndDelete(goid())
	if !ok {
		return "", false
	}
	return v.(string), true
}

// goid returns the current goroutine's id, parsed from the stack header
// ("goroutine 123 [running]:"). The runtime offers no direct accessor;
// the pending-tag map needs an explicit caller identity so concurrent
// goroutines never observe each other's one-shot tags.
func goid() uint64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	const prefix = len("goroutine ")
	var id uint64
	for _, c := range buf[prefix:n] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
