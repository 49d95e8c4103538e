package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	MaxLogSizeMB  = 10
	MaxLogBackups = 3
	MaxLogAgeDays = 28
)

// DefaultConsoleLevel keeps routine records off the terminal, where the
// command's own output goes.
const DefaultConsoleLevel = slog.LevelWarn

// Manager handles logger lifecycle including bootstrap-to-full mode transitions.
// Components should obtain a logger via Logger() and use it for all logging.
type Manager struct {
	handler *SwappableHandler
	logger  *slog.Logger
	console io.Writer
	logFile *lumberjack.Logger

	level        *slog.LevelVar
	consoleLevel *slog.LevelVar
	mu           sync.Mutex
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithConsole sets the writer console records go to. Defaults to stderr.
func WithConsole(w io.Writer) ManagerOption {
	return func(m *Manager) {
		m.console = w
	}
}

// NewManager creates a logging manager in bootstrap mode.
// Bootstrap mode writes only to the console using text format.
// Call Upgrade() after config is available to enable file logging.
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		console:      os.Stderr,
		level:        new(slog.LevelVar),
		consoleLevel: new(slog.LevelVar),
	}
	m.level.Set(DefaultLevel)
	m.consoleLevel.Set(DefaultConsoleLevel)

	for _, opt := range opts {
		opt(m)
	}

	// Bootstrap mode: text to the console only
	bootstrap := slog.NewTextHandler(m.console, &slog.HandlerOptions{Level: m.consoleLevel})

	m.handler = NewSwappableHandler(bootstrap)
	m.logger = slog.New(m.handler)

	return m
}

// Logger returns the current logger instance.
// The returned logger is stable across Upgrade calls.
func (m *Manager) Logger() *slog.Logger {
	return m.logger
}

// Upgrade transitions from bootstrap mode (console only) to full mode
// (console text + rotated JSON file). Call after config is loaded.
// Returns error if the log file cannot be opened/created.
func (m *Manager) Upgrade(logFilePath string, level slog.Level) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Create parent directories if needed
	dir := filepath.Dir(logFilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory %q; %w", dir, err)
	}

	// lumberjack opens lazily; probe now so a bad path fails here
	probe, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %q; %w", logFilePath, err)
	}
	_ = probe.Close()

	// Close previous file if any
	if m.logFile != nil {
		_ = m.logFile.Close()
	}
	m.logFile = &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    MaxLogSizeMB,
		MaxBackups: MaxLogBackups,
		MaxAge:     MaxLogAgeDays,
	}

	// Set the new level
	m.level.Set(level)

	// Full mode: text to the console + JSON to the rotated file
	fullHandler := slogmulti.Fanout(
		slog.NewTextHandler(m.console, &slog.HandlerOptions{Level: m.consoleLevel}),
		slog.NewJSONHandler(m.logFile, &slog.HandlerOptions{Level: m.level}),
	)

	// Atomic swap - all future log calls use the new handler
	m.handler.Swap(fullHandler)

	return nil
}

// SetLevel changes the file log level at runtime.
// Applies immediately to all future log calls.
func (m *Manager) SetLevel(level slog.Level) {
	m.level.Set(level)
}

// SetConsoleLevel changes the console log level at runtime.
func (m *Manager) SetConsoleLevel(level slog.Level) {
	m.consoleLevel.Set(level)
}

// Close cleanly shuts down the logger, closing any open file handles.
// Should be called during application shutdown.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.logFile != nil {
		err := m.logFile.Close()
		m.logFile = nil
		return err
	}
	return nil
}
