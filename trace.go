package xtimber

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// renderTrace renders the complete trace of err, preserving the causal
// chain. Errors that implement fmt.Formatter (pkg/errors and friends)
// print their own stack and causes via %+v; plain wrapped errors fall back
// to an explicit unwrap walk. Rendering only err.Error() would swallow the
// chain, so it is never used for attached errors.
func renderTrace(err error) string {
	if _, ok := err.(fmt.Formatter); ok {
		return fmt.Sprintf("%+v", err)
	}

	var b strings.Builder
	b.WriteString(err.Error())
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		b.WriteString("\ncaused by: ")
		b.WriteString(cause.Error())
	}
	return b.String()
}
