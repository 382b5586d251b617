package mock

import (
	"context"

	"github.com/fwojciec/freitagsfoo"
)

// Compile-time interface verification.
var (
	_ freitagsfoo.RecordWriter = (*RecordWriter)(nil)
	_ freitagsfoo.RecordStore  = (*RecordStore)(nil)
)

// RecordWriter is a mock implementation of freitagsfoo.RecordWriter.
type RecordWriter struct {
	WriteRecordFn func(ctx context.Context, record *freitagsfoo.Record) error
}

func (w *RecordWriter) WriteRecord(ctx context.Context, record *freitagsfoo.Record) error {
	return w.WriteRecordFn(ctx, record)
}

// RecordStore is a mock implementation of freitagsfoo.RecordStore.
type RecordStore struct {
	WriteRecordFn      func(ctx context.Context, record *freitagsfoo.Record) error
	FindRecordByDateFn func(ctx context.Context, date string) (*freitagsfoo.Record, error)
	FindRecordsFn      func(ctx context.Context, filter freitagsfoo.RecordFilter) ([]*freitagsfoo.Record, error)
}

func (s *RecordStore) WriteRecord(ctx context.Context, record *freitagsfoo.Record) error {
	return s.WriteRecordFn(ctx, record)
}

func (s *RecordStore) FindRecordByDate(ctx context.Context, date string) (*freitagsfoo.Record, error) {
	return s.FindRecordByDateFn(ctx, date)
}

func (s *RecordStore) FindRecords(ctx context.Context, filter freitagsfoo.RecordFilter) ([]*freitagsfoo.Record, error) {
	return s.FindRecordsFn(ctx, filter)
}
