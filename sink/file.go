package sink

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mordilloSan/go-logcore/logger"
)

// ErrFileNotWritten wraps every failure of the File sink.
var ErrFileNotWritten = errors.New("log file not written")

// FileConfig defines options for NewFile.
type FileConfig struct {
	// Path of the log file; it is created or appended to.
	Path string
	// MaxSizeMB rotates the file once it reaches this size.
	// Default: 100
	MaxSizeMB int
	// MaxBackups is how many rotated files are kept; 0 keeps all.
	// Default: 3
	MaxBackups int
	// MaxAgeDays removes rotated files older than this; 0 keeps them.
	// Default: 7
	MaxAgeDays int
	// Compress gzips rotated files.
	// Default: false
	Compress bool
}

// File appends lines to a size-rotated log file.
type File struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// NewFile creates the file's directory if needed and opens a rotating
// writer on cfg.Path. The file itself is opened on the first write.
func NewFile(cfg FileConfig) (*File, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: empty path", ErrFileNotWritten)
	}
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create directory %q: %w", ErrFileNotWritten, dir, err)
		}
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 100
	}
	return &File{w: &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}}, nil
}

// Write implements logger.Sink.
func (f *File) Write(line string, _ logger.Severity) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.w == nil {
		return fmt.Errorf("%w: sink closed", ErrFileNotWritten)
	}
	if _, err := io.WriteString(f.w, line+"\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrFileNotWritten, err)
	}
	return nil
}

// Close closes the underlying file. Closing twice is a no-op.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.w == nil {
		return nil
	}
	err := f.w.Close()
	f.w = nil
	return err
}
