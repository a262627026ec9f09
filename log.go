package gridplot

import "log/slog"

var logger *slog.Logger

// Logger returns the logger used by the gridplot packages. It defaults to
// slog.Default().
func Logger() *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// SetLogger replaces the package logger. A nil l restores slog.Default().
func SetLogger(l *slog.Logger) { logger = l }
