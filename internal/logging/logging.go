// Package logging writes debug output to a rotating log file. The TUI
// owns stdout, so anything diagnostic goes here instead.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu      sync.Mutex
	logger  *log.Logger
	verbose bool
)

// Setup directs log output to dost.log under dir with rotation.
// verboseMode additionally enables Debugf output.
func Setup(dir string, verboseMode bool) {
	mu.Lock()
	defer mu.Unlock()

	logger = log.New(&lumberjack.Logger{
		Filename:   filepath.Join(dir, "dost.log"),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     14, // days
	}, "", log.LstdFlags)
	verbose = verboseMode
}

// Warnf logs an anomaly worth keeping regardless of verbosity
func Warnf(format string, args ...interface{}) {
	write("WARN " + fmt.Sprintf(format, args...))
}

// Debugf logs request/response tracing when verbose mode is on
func Debugf(format string, args ...interface{}) {
	mu.Lock()
	v := verbose
	mu.Unlock()
	if !v {
		return
	}
	write("DEBUG " + fmt.Sprintf(format, args...))
}

func write(line string) {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		// Setup not called (tests, one-shot failures before config load)
		logger = log.New(os.Stderr, "", log.LstdFlags)
	}
	logger.Print(line)
}
