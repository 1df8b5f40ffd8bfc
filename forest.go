package xtimber

import (
	"sync"
	"sync/atomic"

	"github.com/trickstertwo/xclock"
)

// MessageFunc lazily produces a log message. The Forest invokes it at most
// once per dispatch, and only once some planted tree has reported itself
// loggable, so callers never pay for message construction that nothing
// will observe. A nil func or an empty result means "nothing to say".
type MessageFunc func() string

// Forest is the process-wide registry and dispatcher. Every dispatch fans
// out to all planted trees, in planting order, on the calling goroutine.
//
// Trees: lock-free reads via atomic.Value; synchronized updates via mu.
// Stored value is []Tree and MUST be treated as immutable by readers.
// Dispatch is therefore never blocked by planting churn and never observes
// a half-mutated collection; it may run against a snapshot that is one
// mutation behind a concurrent Plant/Uproot.
type Forest struct {
	Base

	trees atomic.Value // holds []Tree
	mu    sync.Mutex
}

// NewForest returns an empty Forest.
func NewForest() *Forest {
	f := &Forest{}
	f.trees.Store(([]Tree)(nil))
	return f
}

func (f *Forest) snapshot() []Tree {
	v := f.trees.Load()
	if v == nil {
		return nil
	}
	return v.([]Tree)
}

// republish must be called with mu held.
func (f *Forest) republish(trees []Tree) {
	f.trees.Store(trees)
}

// Plant registers a tree. Planting the same instance twice is tolerated
// and yields duplicate dispatch. Panics on a nil tree or on planting the
// forest into itself.
func (f *Forest) Plant(t Tree) {
	f.check(t)

	f.mu.Lock()
	defer f.mu.Unlock()
	cur := f.snapshot()
	next := make([]Tree, len(cur), len(cur)+1)
	copy(next, cur)
	f.republish(append(next, t))
}

// PlantAll registers several trees at once. The whole batch is rejected,
// with a panic, if any element is nil or the forest itself; otherwise all
// trees are appended and the snapshot is republished once.
func (f *Forest) PlantAll(trees ...Tree) {
	for _, t := range trees {
		f.check(t)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	cur := f.snapshot()
	next := make([]Tree, len(cur), len(cur)+len(trees))
	copy(next, cur)
	f.republish(append(next, trees...))
}

func (f *Forest) check(t Tree) {
	if t == nil {
		panic("xtimber: cannot plant a nil tree")
	}
	if ft, ok := t.(*Forest); ok && ft == f {
		panic("xtimber: cannot plant a forest in itself")
	}
}

// Uproot removes a previously planted tree, by identity. Panics if the
// tree was never planted.
func (f *Forest) Uproot(t Tree) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur := f.snapshot()
	for i, planted := range cur {
		if planted == t {
			next := make([]Tree, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			next = append(next, cur[i+1:]...)
			f.republish(next)
			return
		}
	}
	panic("xtimber: cannot uproot a tree that is not planted")
}

// UprootAll removes every planted tree.
func (f *Forest) UprootAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.republish(nil)
}

// Trees returns a point-in-time copy of the planted trees, in planting
// order. Never the live collection.
func (f *Forest) Trees() []Tree {
	cur := f.snapshot()
	if len(cur) == 0 {
		return nil
	}
	out := make([]Tree, len(cur))
	copy(out, cur)
	return out
}

// Count reports how many trees are planted.
func (f *Forest) Count() int { return len(f.snapshot()) }

// Tag sets a one-shot pending tag, for the calling goroutine, on every
// currently planted tree. The next dispatch on this goroutine consumes it;
// it does not survive into the call after that.
func (f *Forest) Tag(tag string) *Forest {
	for _, t := range f.snapshot() {
		t.SetTag(tag)
	}
	return f
}

// Loggable reports whether a dispatch would reach anything at all: an
// empty forest is inert.
func (f *Forest) Loggable(string, Level) bool { return len(f.snapshot()) > 0 }

// Write is a no-op. The Forest satisfies Tree only to expose the same
// contract it fans out to; it never emits anything itself.
func (f *Forest) Write(Entry) {}

// Log dispatches one entry to every planted tree, in planting order, on
// the calling goroutine. Each tree's pending tag is consumed exactly once,
// before and regardless of its Loggable check. produce runs at most once,
// the first time a tree reports itself loggable; every loggable tree then
// receives the identical message. An empty message with a nil err drops
// the entry; an attached err has its full trace rendered into the message.
func (f *Forest) Log(level Level, err error, produce MessageFunc) {
	trees := f.snapshot()
	if len(trees) == 0 {
		return
	}

	var (
		at       = xclock.Now()
		msg      string
		ok       bool
		prepared bool
	)
	for _, t := range trees {
		tag, _ := t.ConsumeTag()
		if !t.Loggable(tag, level) {
			continue
		}
		if !prepared {
			prepared = true
			msg, ok = prepare(produce, err)
		}
		if !ok {
			// Nothing to say; keep iterating so the remaining trees
			// still have their pending tags consumed.
			continue
		}
		t.Write(Entry{At: at, Level: level, Tag: tag, Message: msg, Err: err})
	}
}

// prepare applies the formatting rule. The bool result is false when the
// entry carries nothing to write.
func prepare(produce MessageFunc, err error) (string, bool) {
	var msg string
	if produce != nil {
		msg = produce()
	}
	if msg == "" {
		if err == nil {
			return "", false
		}
		return renderTrace(err), true
	}
	if err != nil {
		msg = msg + "\n" + renderTrace(err)
	}
	return msg, true
}

// Level entry points.

func (f *Forest) Debug(produce MessageFunc) { f.Log(LevelDebug, nil, produce) }
func (f *Forest) Warn(produce MessageFunc)  { f.Log(LevelWarn, nil, produce) }
func (f *Forest) Error(produce MessageFunc) { f.Log(LevelError, nil, produce) }
func (f *Forest) Fatal(produce MessageFunc) { f.Log(LevelAssert, nil, produce) }

func (f *Forest) DebugErr(err error, produce MessageFunc) { f.Log(LevelDebug, err, produce) }
func (f *Forest) WarnErr(err error, produce MessageFunc)  { f.Log(LevelWarn, err, produce) }
func (f *Forest) ErrorErr(err error, produce MessageFunc) { f.Log(LevelError, err, produce) }
func (f *Forest) FatalErr(err error, produce MessageFunc) { f.Log(LevelAssert, err, produce) }

// Precomputed-string conveniences for messages that cost nothing to build.

func (f *Forest) DebugMsg(msg string) { f.Log(LevelDebug, nil, eager(msg)) }
func (f *Forest) WarnMsg(msg string)  { f.Log(LevelWarn, nil, eager(msg)) }
func (f *Forest) ErrorMsg(msg string) { f.Log(LevelError, nil, eager(msg)) }
func (f *Forest) FatalMsg(msg string) { f.Log(LevelAssert, nil, eager(msg)) }

func eager(msg string) MessageFunc {
	if msg == "" {
		return nil
	}
	return func() string { return msg }
}
