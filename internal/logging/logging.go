// Package logging builds the application logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/abhisek/vokabel/internal/config"
)

// DefaultFile returns the default log file location.
func DefaultFile() string {
	return filepath.Join(xdg.StateHome, "vokabel", "vokabel.log")
}

// Options controls where Setup sends log output.
type Options struct {
	// Stderr writes to standard error instead of a file.
	Stderr bool

	// Fs is the filesystem holding the log file. Defaults to the OS.
	Fs afero.Fs
}

// Setup builds a configured logrus logger. The TUI owns the terminal, so
// output goes to cfg.File (or DefaultFile) unless opts.Stderr is set. The
// returned closer releases the log file.
func Setup(cfg config.LogConfig, opts Options) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: !opts.Stderr})
	}

	if opts.Stderr {
		logger.SetOutput(os.Stderr)
		return logger, io.NopCloser(nil), nil
	}

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	path := cfg.File
	if path == "" {
		path = DefaultFile()
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}
