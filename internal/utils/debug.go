package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var (
	debugFile    *os.File
	debugOnce    sync.Once
	debugMu      sync.Mutex
	debugEnabled bool
	debugPath    = "debug.log"
)

// ConfigureDebug turns debug logging on or off. dir is where debug.log is
// created; an empty dir keeps the current path.
func ConfigureDebug(enabled bool, dir string) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugEnabled = enabled
	if dir != "" {
		debugPath = filepath.Join(dir, "debug.log")
	}
}

// SetDebugPath redirects the log to path and enables it. It must be called
// before the first Debug call to take effect.
func SetDebugPath(path string) {
	debugMu.Lock()
	defer debugMu.Unlock()
	debugPath = path
	debugEnabled = true
}

// Debug writes a message to debug.log file
func Debug(format string, args ...any) {
	debugMu.Lock()
	defer debugMu.Unlock()
	if !debugEnabled {
		return
	}
	// add timestamp to each debug message
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	debugOnce.Do(func() {
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		debugFile, _ = os.OpenFile(debugPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	})
	if debugFile != nil {
		fmt.Fprintf(debugFile, "[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
		debugFile.Sync() // Flush immediately
	}
}
