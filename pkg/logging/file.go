package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSize is the maximum size in bytes before rotation (0 = no rotation)
	MaxSize int64
	// MaxBackups is the maximum number of backup files to keep
	MaxBackups int
}

// FileLogger is a StreamLogger backed by a size-rotated file
type FileLogger struct {
	*StreamLogger
	config FileLoggerConfig
	file   *os.File
}

// NewFileLogger creates a new file logger, appending to an existing file
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, size, err := openLogFile(config.Path)
	if err != nil {
		return nil, err
	}

	l := &FileLogger{
		StreamLogger: NewStreamLogger(file, config.Format, config.Level),
		config:       config,
		file:         file,
	}
	l.sink.written = size
	l.sink.beforeWrite = l.rotateIfNeeded

	return l, nil
}

// Close closes the log file
func (l *FileLogger) Close() error {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func openLogFile(path string) (*os.File, int64, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("failed to stat log file: %w", err)
	}
	return file, info.Size(), nil
}

// rotateIfNeeded shifts path -> path.1 -> path.2 ... once the file reaches
// MaxSize. Called with the sink lock held.
func (l *FileLogger) rotateIfNeeded(s *sink) {
	if l.config.MaxSize <= 0 || s.written < l.config.MaxSize || l.file == nil {
		return
	}

	l.file.Close()

	for i := l.config.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", l.config.Path, i), fmt.Sprintf("%s.%d", l.config.Path, i+1))
	}
	if l.config.MaxBackups > 0 {
		os.Rename(l.config.Path, l.config.Path+".1")
	} else {
		os.Remove(l.config.Path)
	}

	file, _, err := openLogFile(l.config.Path)
	if err != nil {
		s.w = io.Discard
		l.file = nil
		return
	}
	l.file = file
	s.w = file
	s.written = 0
}
