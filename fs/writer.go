package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/freitagsfoo"
)

// Ensure RecordWriter implements freitagsfoo.RecordWriter at compile time.
var _ freitagsfoo.RecordWriter = (*RecordWriter)(nil)

// RecordWriter writes a record as JSON to a file with atomic replace
// semantics. The record is written to a temporary file in the same directory
// and renamed over the target, so readers never observe a partial file.
type RecordWriter struct {
	path string
}

// NewRecordWriter creates a RecordWriter targeting path.
func NewRecordWriter(path string) *RecordWriter {
	return &RecordWriter{path: path}
}

// WriteRecord validates and writes the record.
func (w *RecordWriter) WriteRecord(ctx context.Context, record *freitagsfoo.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	data, err := freitagsfoo.MarshalRecord(record)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(w.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), w.path)
}
