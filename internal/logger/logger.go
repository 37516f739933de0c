package logger

type Logger interface {
	Logf(format string, args ...interface{})
	Log(msg string)
}

// Nop discards everything. Used when no logger is injected.
type Nop struct{}

func (Nop) Logf(format string, args ...interface{}) {}
func (Nop) Log(msg string)                          {}

// OrNop returns l, or a Nop logger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return Nop{}
	}
	return l
}
