package xtimber

import (
	"regexp"
	"runtime"
	"strings"
)

const (
	// maxSegmentLength is the largest text the write primitive accepts in
	// one call; longer messages are chunked.
	maxSegmentLength = 4000

	// maxTagLength is the legacy tag limit applied to inferred tags when
	// the platform hook reports it enforced.
	maxTagLength = 23
)

// internalPrefix identifies this package's own frames during tag
// inference.
const internalPrefix = "github.com/trickstertwo/xtimber."

// closureSuffix matches the synthetic suffixes the runtime appends to
// closures and function literals ("pkg.f.func1", "pkg.f.func1.2", ...).
var closureSuffix = regexp.MustCompile(`(\.func\d+(\.\d+)*)+$`)

// ConsoleTree is the default tree: it writes every entry to an Output,
// inferring a tag from the call stack when none was set explicitly and
// splitting oversized messages into platform-safe segments. ASSERT-level
// entries route through the Output's dedicated fatal path.
//
// Create instances with NewConsoleTree.
type ConsoleTree struct {
	Base

	out       Output
	limitTags func() bool
}

// ConsoleOption configures a ConsoleTree.
type ConsoleOption func(*ConsoleTree)

// WithOutput directs the tree at an alternative write primitive. The
// default writes to os.Stderr.
func WithOutput(o Output) ConsoleOption {
	return func(t *ConsoleTree) { t.out = o }
}

// WithTagLimit installs the platform-capability hook deciding whether the
// legacy 23-rune limit applies to inferred tags. The default never limits.
func WithTagLimit(enforced func() bool) ConsoleOption {
	return func(t *ConsoleTree) { t.limitTags = enforced }
}

// NewConsoleTree creates a ConsoleTree with the given options.
func NewConsoleTree(opts ...ConsoleOption) *ConsoleTree {
	t := &ConsoleTree{
		out:       stderr,
		limitTags: func() bool { return false },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Write emits one entry, chunked as needed.
func (t *ConsoleTree) Write(e Entry) {
	tag := e.Tag
	if tag == "" {
		tag = t.inferTag()
	}

	msg := e.Message
	if len(msg) <= maxSegmentLength {
		t.write(e.Level, tag, msg)
		return
	}

	// Chunk per line, then per segment. A segment never spans two lines.
	for i := 0; i < len(msg); {
		lineEnd := strings.IndexByte(msg[i:], '\n')
		if lineEnd < 0 {
			lineEnd = len(msg)
		} else {
			lineEnd += i
		}
		for {
			end := lineEnd
			if end > i+maxSegmentLength {
				end = i + maxSegmentLength
			}
			t.write(e.Level, tag, msg[i:end])
			i = end
			if i >= lineEnd {
				break
			}
		}
		i++ // past the newline
	}
}

func (t *ConsoleTree) write(level Level, tag, text string) {
	if level >= LevelAssert {
		t.out.WriteFatal(tag, text)
		return
	}
	t.out.Write(level, tag, text)
}

// inferTag walks the call stack to the first frame defined outside this
// package and derives a tag from it: the receiver type's simple name when
// the frame is a method, otherwise the defining package's simple name,
// with closure suffixes stripped.
func (t *ConsoleTree) inferTag() string {
	var pcs [24]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, internalPrefix) {
			return t.limitTag(tagFromFunction(frame.Function))
		}
		if !more {
			return ""
		}
	}
}

func (t *ConsoleTree) limitTag(tag string) string {
	if !t.limitTags() {
		return tag
	}
	runes := []rune(tag)
	if len(runes) <= maxTagLength {
		return tag
	}
	return string(runes[:maxTagLength])
}

// tagFromFunction derives a tag from a fully qualified function symbol
// such as "example.com/app/web.(*Server).handle.func1" -> "Server".
func tagFromFunction(fn string) string {
	if i := strings.LastIndex(fn, "/"); i >= 0 {
		fn = fn[i+1:]
	}
	fn = closureSuffix.ReplaceAllString(fn, "")

	parts := strings.Split(fn, ".")
	if len(parts) < 2 {
		return fn
	}
	recv := parts[1]
	if strings.HasPrefix(recv, "(*") {
		return strings.TrimSuffix(strings.TrimPrefix(recv, "(*"), ")")
	}
	if len(parts) > 2 {
		// Value-receiver method: pkg.Type.method.
		return recv
	}
	// Free function: the package is the defining scope.
	return parts[0]
}
