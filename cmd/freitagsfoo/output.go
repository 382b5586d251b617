package main

import (
	"context"
	"io"

	"github.com/fwojciec/freitagsfoo"
	"github.com/fwojciec/freitagsfoo/fs"
)

// stdoutPath selects standard output as the record destination.
const stdoutPath = "-"

// newRecordWriter returns a writer for the output flag value.
func newRecordWriter(path string, stdout io.Writer) freitagsfoo.RecordWriter {
	if path == "" || path == stdoutPath {
		return &streamWriter{w: stdout}
	}
	return fs.NewRecordWriter(path)
}

// streamWriter writes records as JSON to a stream.
type streamWriter struct {
	w io.Writer
}

func (s *streamWriter) WriteRecord(ctx context.Context, record *freitagsfoo.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	data, err := freitagsfoo.MarshalRecord(record)
	if err != nil {
		return err
	}
	_, err = s.w.Write(data)
	return err
}
