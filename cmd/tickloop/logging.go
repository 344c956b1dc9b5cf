package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lixenwraith/tickloop/constants"
)

// setupLogging routes the standard logger to dir/tickloop.log when enabled and
// discards it otherwise; the terminal owns stdout and stderr while running
// The caller closes the returned file, which is nil when logging is off
func setupLogging(enabled bool, dir string) *os.File {
	if !enabled {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "log dir %s: %v\n", dir, err)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(dir, constants.LogFileName)

	// Rotate an oversized file out of the way
	if info, err := os.Stat(logPath); err == nil && info.Size() > constants.MaxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("tickloop-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(logPath, rotated); err != nil {
			fmt.Fprintf(os.Stderr, "rotate %s: %v\n", logPath, err)
		}
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open %s: %v\n", logPath, err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	return f
}
