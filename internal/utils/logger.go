package utils

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// Log levels
const (
	INFO  = "INFO"
	WARN  = "WARN"
	ERROR = "ERROR"
	DEBUG = "DEBUG"
)

var (
	instance *Logger
	once     sync.Once
)

// Logger writes leveled lines to the log file and, except for debug lines
// outside debug mode, to stdout.
type Logger struct {
	file    *os.File
	loggers map[string]*log.Logger
}

// getDefaultLogFilePath returns ~/.linkd/linkd.log, creating the directory.
func getDefaultLogFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	logDir := filepath.Join(homeDir, ".linkd")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}
	return filepath.Join(logDir, "linkd.log")
}

// NewLogger creates the logger singleton. Later calls return the first
// instance and ignore their arguments.
func NewLogger(logFilePath string, debugMode bool) *Logger {
	once.Do(func() {
		if logFilePath == "" {
			logFilePath = getDefaultLogFilePath()
		}

		file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Fatalf("Failed to open log file: %v", err)
		}

		console := io.MultiWriter(file, os.Stdout)
		debugWriter := io.Writer(file)
		if debugMode {
			debugWriter = console
		}

		flags := log.Ldate | log.Ltime | log.Lmicroseconds
		instance = &Logger{
			file: file,
			loggers: map[string]*log.Logger{
				INFO:  log.New(console, "[INFO] ", flags),
				WARN:  log.New(console, "[WARN] ", flags),
				ERROR: log.New(console, "[ERROR] ", flags),
				DEBUG: log.New(debugWriter, "[DEBUG] ", flags),
			},
		}
	})
	return instance
}

// GetLogger retrieves the singleton logger instance
func GetLogger() *Logger {
	if instance == nil {
		log.Fatalf("Logger has not been initialized. Call NewLogger() first.")
	}
	return instance
}

func (l *Logger) Info(message string)  { l.loggers[INFO].Println(message) }
func (l *Logger) Warn(message string)  { l.loggers[WARN].Println(message) }
func (l *Logger) Error(message string) { l.loggers[ERROR].Println(message) }
func (l *Logger) Debug(message string) { l.loggers[DEBUG].Println(message) }

func (l *Logger) Infof(format string, args ...interface{}) {
	l.loggers[INFO].Printf(format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.loggers[WARN].Printf(format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.loggers[ERROR].Printf(format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.loggers[DEBUG].Printf(format, args...)
}

// Sync flushes the log file to disk.
func (l *Logger) Sync() error {
	return l.file.Sync()
}
