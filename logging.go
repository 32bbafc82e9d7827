package mdpress

// Logger receives diagnostic events from the renderer and runner: advisory
// frontmatter problems, failed engine typesets, snippet errors. Arguments
// are alternating key-value pairs. The interface matches the structured
// methods of glog.BaseLogger, so a CLI logger plugs in directly.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NopLogger discards all events. It is the default when no logger is
// configured, keeping library use quiet unless asked otherwise.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
