package core

// Logger is the logging surface the renderer and loaders depend on.
// pkg/log loggers satisfy it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Noticef(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{})  {}
func (NopLogger) Infof(format string, args ...interface{})   {}
func (NopLogger) Noticef(format string, args ...interface{}) {}
