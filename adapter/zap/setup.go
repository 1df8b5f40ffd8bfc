package zap

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/xtimber"
)

// Config is an explicit, code-first configuration for zap + xtimber.
// No envs, no hidden init, one call to Use.
type Config struct {
	Writer             io.Writer     // default: os.Stdout
	MinLevel           xtimber.Level // zero value admits WARN and above
	Console            bool          // pretty console-like output via zapcore.NewConsoleEncoder
	TimestampFieldName string        // default "ts" (the dispatch timestamp)
}

// Use builds a zap-backed tree from Config, plants it in the default
// forest, and returns it. Uproot the returned tree to detach it again.
func Use(cfg Config) *Tree {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	if cfg.TimestampFieldName == "" {
		cfg.TimestampFieldName = "ts"
	}

	// Do not let zap inject its own time; the forest provides "ts".
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "",
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	al := zap.NewAtomicLevelAt(toZapLevel(cfg.MinLevel))
	core := zapcore.NewCore(enc, zapcore.AddSync(w), al)
	zl := zap.New(core)

	tree := NewWithAtomicLevel(zl, &al)
	tree.tsKey = cfg.TimestampFieldName
	tree.SetMinLevel(cfg.MinLevel)

	xtimber.Plant(tree)
	return tree
}
