package xtimber_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/trickstertwo/xtimber"
)

// recordOutput is a minimal Output for tests. It records every segment,
// keeping the fatal path separate.
type recordOutput struct {
	mu     sync.Mutex
	writes []segment
	fatals []segment
}

type segment struct {
	level xtimber.Level
	tag   string
	text  string
}

func (o *recordOutput) Write(level xtimber.Level, tag, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.writes = append(o.writes, segment{level: level, tag: tag, text: text})
}

func (o *recordOutput) WriteFatal(tag, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fatals = append(o.fatals, segment{level: xtimber.LevelAssert, tag: tag, text: text})
}

func newConsoleForest(opts ...xtimber.ConsoleOption) (*xtimber.Forest, *recordOutput) {
	out := &recordOutput{}
	f := xtimber.NewForest()
	f.Plant(xtimber.NewConsoleTree(append([]xtimber.ConsoleOption{xtimber.WithOutput(out)}, opts...)...))
	return f, out
}

func TestChunkingSingleLongLine(t *testing.T) {
	t.Parallel()

	f, out := newConsoleForest()
	msg := strings.Repeat("x", 9000)
	f.Tag("Bulk").DebugMsg(msg)

	if len(out.writes) != 3 {
		t.Fatalf("got %d writes, want 3", len(out.writes))
	}
	var rebuilt strings.Builder
	for i, w := range out.writes {
		if w.tag != "Bulk" || w.level != xtimber.LevelDebug {
			t.Fatalf("segment %d mismatch: %+v", i, w)
		}
		rebuilt.WriteString(w.text)
	}
	if lens := []int{len(out.writes[0].text), len(out.writes[1].text), len(out.writes[2].text)}; lens[0] != 4000 || lens[1] != 4000 || lens[2] != 1000 {
		t.Fatalf("segment lengths %v, want [4000 4000 1000]", lens)
	}
	if rebuilt.String() != msg {
		t.Fatal("chunking lost or duplicated characters")
	}
}

func TestChunkingPreservesLineBoundaries(t *testing.T) {
	t.Parallel()

	f, out := newConsoleForest()
	long := strings.Repeat("a", 5000)
	f.Tag("Bulk").WarnMsg("line1\n" + long)

	if len(out.writes) != 3 {
		t.Fatalf("got %d writes, want 3", len(out.writes))
	}
	if out.writes[0].text != "line1" {
		t.Fatalf("first segment %q, want %q", out.writes[0].text, "line1")
	}
	if out.writes[1].text+out.writes[2].text != long {
		t.Fatalf("tail segments lost characters: %d+%d bytes",
			len(out.writes[1].text), len(out.writes[2].text))
	}
}

func TestShortMessageSingleWrite(t *testing.T) {
	t.Parallel()

	f, out := newConsoleForest()
	f.Tag("Short").DebugMsg("first\nsecond")

	if len(out.writes) != 1 {
		t.Fatalf("got %d writes, want 1", len(out.writes))
	}
	if out.writes[0].text != "first\nsecond" {
		t.Fatalf("message altered: %q", out.writes[0].text)
	}
}

func TestFatalSegmentsRouteToFatalPath(t *testing.T) {
	t.Parallel()

	f, out := newConsoleForest()
	f.Tag("Crash").FatalMsg(strings.Repeat("f", 4500))

	if len(out.writes) != 0 {
		t.Fatalf("%d segments leaked onto the ordinary path", len(out.writes))
	}
	if len(out.fatals) != 2 {
		t.Fatalf("got %d fatal segments, want 2", len(out.fatals))
	}
	for i, w := range out.fatals {
		if w.tag != "Crash" {
			t.Fatalf("fatal segment %d tag %q", i, w.tag)
		}
	}
}

func TestTagInferredFromCallingPackage(t *testing.T) {
	t.Parallel()

	f, out := newConsoleForest()
	f.DebugMsg("untagged")

	if len(out.writes) != 1 {
		t.Fatalf("got %d writes, want 1", len(out.writes))
	}
	if out.writes[0].tag != "xtimber_test" {
		t.Fatalf("inferred tag %q, want %q", out.writes[0].tag, "xtimber_test")
	}
}

type courier struct{ f *xtimber.Forest }

func (c *courier) deliver()       { c.f.DebugMsg("on the way") }
func (c *courier) deliverClosed() { func() { c.f.DebugMsg("wrapped") }() }
func (c courier) deliverByValue() { c.f.DebugMsg("by value") }

func TestTagInferredFromReceiverType(t *testing.T) {
	t.Parallel()

	f, out := newConsoleForest()
	c := &courier{f: f}
	c.deliver()
	c.deliverClosed() // closure suffix must be stripped
	c.deliverByValue()

	if len(out.writes) != 3 {
		t.Fatalf("got %d writes, want 3", len(out.writes))
	}
	for i, w := range out.writes {
		if w.tag != "courier" {
			t.Fatalf("write %d inferred tag %q, want %q", i, w.tag, "courier")
		}
	}
}

type aVeryLongReceiverTypeNameIndeed struct{ f *xtimber.Forest }

func (r *aVeryLongReceiverTypeNameIndeed) ping() { r.f.DebugMsg("ping") }

func TestInferredTagTruncatedWhenLimited(t *testing.T) {
	t.Parallel()

	f, out := newConsoleForest(xtimber.WithTagLimit(func() bool { return true }))
	r := &aVeryLongReceiverTypeNameIndeed{f: f}
	r.ping()

	// Explicit tags are never truncated, even with the limit enforced.
	f.Tag("ExplicitTagLongerThanTwentyThree").DebugMsg("tagged")

	if len(out.writes) != 2 {
		t.Fatalf("got %d writes, want 2", len(out.writes))
	}
	if want := "aVeryLongReceiverTypeNa"; out.writes[0].tag != want {
		t.Fatalf("truncated tag %q, want %q", out.writes[0].tag, want)
	}
	if out.writes[1].tag != "ExplicitTagLongerThanTwentyThree" {
		t.Fatalf("explicit tag altered: %q", out.writes[1].tag)
	}
}
