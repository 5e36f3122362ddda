package debug

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

var (
	file    *os.File
	mu      sync.Mutex
	enabled bool
)

func init() {
	// the TUI owns the terminal; nothing is printed until Enable
	log.SetOutput(io.Discard)
	log.SetLevel(log.InfoLevel)
}

// DefaultPath returns ~/.config/drumdrill/debug.log
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "drumdrill", "debug.log")
}

// Enable routes all logging to path at debug level, truncating the file.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if enabled {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	file = f
	enabled = true

	log.SetOutput(file)
	log.SetLevel(log.DebugLevel)
	log.SetFormatter(&log.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	log.WithField("category", "debug").Debug("=== Debug logging started ===")

	return nil
}

// Disable stops debug logging
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	log.SetOutput(io.Discard)
	log.SetLevel(log.InfoLevel)
	if file != nil {
		file.Close()
		file = nil
	}
	enabled = false
}

// Enabled reports whether debug logging is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Log writes a categorized debug message
func Log(category, format string, args ...any) {
	log.WithField("category", category).Debugf(format, args...)
}

// LogEvery logs only every N calls (use for high-frequency events)
var counters = make(map[string]int)

func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	key := category + format
	counters[key]++
	count := counters[key]
	mu.Unlock()

	if count%n == 0 {
		Log(category, format+" (every %d, count=%d)", append(args, n, count)...)
	}
}

// Counter returns how many times LogEvery was called for category/format.
func Counter(category, format string) int {
	mu.Lock()
	defer mu.Unlock()
	return counters[category+format]
}
