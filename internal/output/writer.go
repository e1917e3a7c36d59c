package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Writer streams JSON Lines to a file or io.Writer without buffering
// records in memory.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	encoder   *json.Encoder
	count     int
	closeFunc func() error
}

// NewWriter creates a JSON Lines writer on w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		output:  w,
		encoder: newEncoder(w),
	}
}

// NewFileWriter creates or truncates filename and returns a writer on it.
// Missing parent directories are created. The caller must call Close.
func NewFileWriter(filename string) (*Writer, error) {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &Writer{
		output:  file,
		encoder: newEncoder(file),
		closeFunc: func() error {
			if err := file.Sync(); err != nil {
				file.Close()
				return fmt.Errorf("failed to sync output file: %w", err)
			}
			return file.Close()
		},
	}, nil
}

func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

// Write encodes record as a single line.
func (w *Writer) Write(record interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.encoder.Encode(record); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	w.count++
	return nil
}

// Count returns the number of records written.
func (w *Writer) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close syncs and closes the underlying file. Closing twice is a no-op.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closeFunc == nil {
		return nil
	}
	closeFn := w.closeFunc
	w.closeFunc = nil
	return closeFn()
}
