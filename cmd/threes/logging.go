package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// newLogger builds the CLI logger. Interactive commands own the terminal,
// so they log to ~/.threes/threes.log; everything else logs to stderr.
// The returned function closes the log file, if any.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if interactive {
		f, err := openLogFile()
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "threes",
		Level:           level,
	})
	return logger, closeFn, nil
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	dir := filepath.Join(home, ".threes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "threes.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("log file: %w", err)
	}
	return f, nil
}
