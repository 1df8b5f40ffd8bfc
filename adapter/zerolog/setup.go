package zerolog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/xtimber"
)

// Config is an explicit, code-first configuration for zerolog + xtimber.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer            io.Writer     // default: os.Stdout
	MinLevel          xtimber.Level // zero value admits WARN and above
	Console           bool          // pretty console output instead of JSON
	ConsoleTimeFormat string        // only used if Console==true; default time.RFC3339Nano
}

// Use builds a zerolog-backed tree from Config, plants it in the default
// forest, and returns it. Uproot the returned tree to detach it again.
func Use(cfg Config) *Tree {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Console {
		// Align the console's leading timestamp column with the "ts" key.
		zerolog.TimestampFieldName = "ts"
		cw := zerolog.ConsoleWriter{Out: w}
		if cfg.ConsoleTimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		} else {
			cw.TimeFormat = cfg.ConsoleTimeFormat
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}

	zl = zl.Level(mapLevel(cfg.MinLevel))

	tree := New(zl)
	xtimber.Plant(tree)
	return tree
}
