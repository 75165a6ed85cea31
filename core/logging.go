package core

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const (
	LogDir      = "logs"
	LogFileName = "arena.log"
	MaxLogSize  = 10 * 1024 * 1024
)

// SetupLogging points the standard logger at logs/arena.log when debug is set
// Without debug all output is discarded; the terminal owns stdout and stderr
// Returns the open log file, nil when logging is disabled or the file cannot be opened
func SetupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(LogDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(LogDir, LogFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > MaxLogSize {
		rotated := filepath.Join(LogDir, fmt.Sprintf("arena-%s.log", time.Now().Format("20060102-150405")))
		os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}
