package xtimber

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Output is the write primitive behind ConsoleTree: one call per emitted
// segment. WriteFatal is a distinct path used for ASSERT-level entries
// only, so implementations can route them to a crash reporter or similar.
type Output interface {
	Write(level Level, tag, text string)
	WriteFatal(tag, text string)
}

// NewWriterOutput returns an Output printing logcat-style lines to w.
// Writes are serialized with a mutex so concurrent dispatches from
// different goroutines never interleave mid-line.
func NewWriterOutput(w io.Writer) Output {
	return &writerOutput{w: w}
}

type writerOutput struct {
	mu sync.Mutex
	w  io.Writer
}

func (o *writerOutput) Write(level Level, tag, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if tag == "" {
		fmt.Fprintf(o.w, "%s: %s\n", level, text)
		return
	}
	fmt.Fprintf(o.w, "%s/%s: %s\n", level, tag, text)
}

func (o *writerOutput) WriteFatal(tag, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if tag == "" {
		fmt.Fprintf(o.w, "FATAL: %s\n", text)
		return
	}
	fmt.Fprintf(o.w, "FATAL/%s: %s\n", tag, text)
}

var stderr = NewWriterOutput(os.Stderr)
