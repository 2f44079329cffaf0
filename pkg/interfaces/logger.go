package interfaces

import "context"

// Logger is the leveled logger handed to assets, plugins and renders. Its
// method set matches go-logger's glog.Logger minus field helpers, so a glog
// logger only needs a thin bridge.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider returns the logger for a module name such as
// "themes.assets".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry fields, for example
// the per-request "request_id".
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
