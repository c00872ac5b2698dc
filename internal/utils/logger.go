package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the level of logging verbosity
type LogLevel int

const (
	// LevelQuiet suppresses all output except errors
	LevelQuiet LogLevel = iota
	// LevelNormal shows standard pipeline progress
	LevelNormal
	// LevelVerbose shows detailed information about each stage
	LevelVerbose
	// LevelDebug shows all debugging information, including tool command lines
	LevelDebug
)

var (
	// CurrentLogLevel is the global log level setting
	CurrentLogLevel LogLevel = LevelNormal

	// logFile mirrors every printed message without colors
	logFile   io.WriteCloser
	logFileMu sync.Mutex
)

// SetLogLevel sets the global logging level
func SetLogLevel(level LogLevel) {
	CurrentLogLevel = level
}

// LogLevelFromString converts a string level name to LogLevel
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(level) {
	case "quiet", "q":
		return LevelQuiet
	case "normal", "n":
		return LevelNormal
	case "verbose", "v":
		return LevelVerbose
	case "debug", "d":
		return LevelDebug
	default:
		return LevelNormal
	}
}

// DailyLogPath returns the run log path for the given day
func DailyLogPath(dir string, day time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("log_%s.txt", day.Format("2006-01-02")))
}

// OpenDailyLog starts mirroring log output into <dir>/log_YYYY-MM-DD.txt.
// The file is opened in append mode so several runs on the same day share it.
func OpenDailyLog(dir string, day time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	path := DailyLogPath(dir, day)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open log file: %w", err)
	}

	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	return path, nil
}

// CloseDailyLog stops mirroring log output
func CloseDailyLog() error {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// writeLogFile appends a plain message to the daily log, if one is open
func writeLogFile(msg string) {
	logFileMu.Lock()
	defer logFileMu.Unlock()
	if logFile == nil {
		return
	}
	_, _ = fmt.Fprintf(logFile, "%s %s\n", time.Now().Format("15:04:05"), msg)
}

// LogError logs an error message (always shown)
func LogError(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s\n", Error(msg))
	writeLogFile("ERROR " + msg)
}

// LogInfo logs an informational message at Normal+ level
func LogInfo(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if CurrentLogLevel >= LevelNormal {
		fmt.Printf("%s\n", Info(msg))
	}
	writeLogFile(msg)
}

// LogSuccess logs a success message at Normal+ level
func LogSuccess(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if CurrentLogLevel >= LevelNormal {
		fmt.Printf("%s\n", Success(msg))
	}
	writeLogFile(msg)
}

// LogVerbose logs a message at Verbose+ level
func LogVerbose(format string, args ...interface{}) {
	if CurrentLogLevel >= LevelVerbose {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("\t%s\n", Info(msg))
		writeLogFile(msg)
	}
}

// LogDebug logs a debug message at Debug level
func LogDebug(format string, args ...interface{}) {
	if CurrentLogLevel >= LevelDebug {
		msg := fmt.Sprintf(format, args...)
		fmt.Printf("\t%s\n", Debug(msg))
		writeLogFile(msg)
	}
}

// LogWarning logs a warning message at Normal+ level
func LogWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if CurrentLogLevel >= LevelNormal {
		fmt.Printf("%s\n", Warning(msg))
	}
	writeLogFile("WARN " + msg)
}
