package xtimber

// Level is the ordinal severity of an entry. Numeric gaps mirror slog
// semantics so custom trees can slot their own intermediate levels.
type Level int

const (
	LevelDebug  Level = -4
	LevelWarn   Level = 4
	LevelError  Level = 8
	LevelAssert Level = 12
)

func (l Level) String() string {
	switch {
	case l < LevelWarn:
		return "DEBUG"
	case l < LevelError:
		return "WARN"
	case l < LevelAssert:
		return "ERROR"
	default:
		return "ASSERT"
	}
}
