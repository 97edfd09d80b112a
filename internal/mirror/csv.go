// Package mirror appends submissions to CSV files that shadow the relational
// store. The files are opened, written and closed per call.
package mirror

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// CSV is an append-only CSV sink bound to a single file.
type CSV struct {
	path string
	mu   sync.Mutex
}

// NewCSV returns a sink writing to path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Path returns the backing file path.
func (m *CSV) Path() string {
	return m.path
}

// EnsureHeader creates the file with header as its first row when the file
// does not exist yet. An existing file is left untouched.
func (m *CSV) EnsureHeader(header []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.ensureHeaderLocked(header)
	return err
}

// Append writes a single row at the end of the file.
func (m *CSV) Append(row []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.appendLocked(row)
}

// AppendAligned appends values keyed by column name. When the file is new,
// its header is taken from keys. Otherwise the values are aligned to the
// existing header: missing columns are left empty and unknown keys are
// returned as dropped.
func (m *CSV) AppendAligned(keys []string, values map[string]string) (dropped []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	header, err := m.ensureHeaderLocked(keys)
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(header))
	row := make([]string, len(header))
	for i, col := range header {
		known[col] = struct{}{}
		row[i] = values[col]
	}
	for _, key := range keys {
		if _, ok := known[key]; !ok {
			dropped = append(dropped, key)
		}
	}

	return dropped, m.appendLocked(row)
}

// Header reads the first row of the file. A missing file yields nil.
func (m *CSV) Header() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.readHeaderLocked()
}

func (m *CSV) ensureHeaderLocked(header []string) ([]string, error) {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create csv dir: %w", err)
		}
	}

	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		existing, err := m.readHeaderLocked()
		if err != nil || existing != nil {
			return existing, err
		}
		// empty file left behind by an interrupted create
		if err := m.appendLocked(header); err != nil {
			return nil, err
		}
		return header, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create csv %s: %w", m.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv header: %w", err)
	}
	return header, nil
}

func (m *CSV) readHeaderLocked() ([]string, error) {
	f, err := os.Open(m.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open csv %s: %w", m.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	return header, nil
}

func (m *CSV) appendLocked(row []string) error {
	f, err := os.OpenFile(m.path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open csv %s: %w", m.path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("write csv row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv row: %w", err)
	}
	return f.Close()
}
