// ABOUTME: Simple debug logger for TUI that writes to a rotating log file
// ABOUTME: Avoids interfering with terminal display while capturing errors

package debuglog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logFile *lumberjack.Logger
	mu      sync.Mutex
)

// DefaultConfigDir returns the planner's per-user config directory, or ""
// when the platform has none
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "avatar-budget")
}

// Init initializes the debug logger with the config directory.
// If configDir is empty, logging is disabled.
func Init(configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if configDir == "" {
		logFile = nil
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		logFile = nil
		return err
	}

	logFile = &lumberjack.Logger{
		Filename:   filepath.Join(configDir, "debug.log"),
		MaxSize:    1, // megabytes
		MaxBackups: 2,
	}
	return nil
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// Log writes a message to the debug log
func Log(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(logFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Error logs an error with context
func Error(context string, err error) {
	if err == nil {
		return
	}
	Log("ERROR [%s]: %v", context, err)
}
