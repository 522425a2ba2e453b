package core

// Logger is any service that can log & report messages.
// args may contain errors, map[string]interface{} fields and the user the message is about.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})

	// Sync flushes pending entries; call it before the process exits.
	Sync() error
}
