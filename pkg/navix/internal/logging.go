package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile *os.File
	logPath string

	setupOnce sync.Once
	logWriter io.Writer

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   *slog.LevelVar

	frameworkLoggerOnce sync.Once
	frameworkLogger     *slog.Logger
	frameworkLevelVar   *slog.LevelVar
)

// SetLogPath sets the full path for the log file, including filename.
// Parent directories are created on first use. Call before the first
// logging call to take effect.
func SetLogPath(path string) {
	logPath = path
}

func setup() {
	setupOnce.Do(func() {
		if logPath == "" {
			logWriter = os.Stdout
			return
		}

		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			logWriter = os.Stdout
			return
		}

		var err error
		logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			// Can't open log file, fall back to console-only
			logWriter = os.Stdout
			return
		}

		logWriter = io.MultiWriter(os.Stdout, logFile)
	})
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		levelVar = &slog.LevelVar{}

		setup()

		handler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
			Level:     levelVar,
			AddSource: false,
		})
		logger = slog.New(handler)
	})
	return logger
}

// GetFrameworkLogger returns the logger used by navix itself. It carries
// its own level so framework noise can be silenced independently of the
// application logger.
func GetFrameworkLogger() *slog.Logger {
	frameworkLoggerOnce.Do(func() {
		frameworkLevelVar = &slog.LevelVar{}
		frameworkLevelVar.Set(slog.LevelWarn)

		setup()

		handler := slog.NewJSONHandler(logWriter, &slog.HandlerOptions{
			Level:     frameworkLevelVar,
			AddSource: false,
		})
		frameworkLogger = slog.New(handler)
	})
	return frameworkLogger
}

func SetLogLevel(level slog.Level) {
	GetLogger()
	levelVar.Set(level)
}

func SetFrameworkLogLevel(level slog.Level) {
	GetFrameworkLogger()
	frameworkLevelVar.Set(level)
}

// SetRawLogLevel parses a level name ("debug", "info", "warn", "error")
// and applies it to the application logger. Unknown names mean info.
func SetRawLogLevel(rawLevel string) {
	var level slog.Level

	switch strings.ToLower(rawLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	GetLogger()
	levelVar.Set(level)
}

// CloseLogger releases the log file, if one was opened.
func CloseLogger() {
	if logFile != nil {
		logFile.Close()
	}
}
