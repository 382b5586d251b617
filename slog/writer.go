package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/freitagsfoo"
)

// Compile-time interface verification.
var (
	_ freitagsfoo.RecordWriter = (*LoggingRecordWriter)(nil)
	_ freitagsfoo.RecordStore  = (*LoggingRecordStore)(nil)
)

// LoggingRecordWriter wraps a RecordWriter with logging.
type LoggingRecordWriter struct {
	next   freitagsfoo.RecordWriter
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter.
func NewLoggingRecordWriter(next freitagsfoo.RecordWriter, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, logger: logger}
}

// WriteRecord delegates to the wrapped writer and logs the operation.
func (w *LoggingRecordWriter) WriteRecord(ctx context.Context, record *freitagsfoo.Record) (err error) {
	defer func(begin time.Time) {
		logWrite(w.logger, record, begin, err)
	}(time.Now())
	return w.next.WriteRecord(ctx, record)
}

// LoggingRecordStore wraps a RecordStore with logging.
type LoggingRecordStore struct {
	next   freitagsfoo.RecordStore
	logger *slog.Logger
}

// NewLoggingRecordStore creates a new LoggingRecordStore.
func NewLoggingRecordStore(next freitagsfoo.RecordStore, logger *slog.Logger) *LoggingRecordStore {
	return &LoggingRecordStore{next: next, logger: logger}
}

// WriteRecord delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) WriteRecord(ctx context.Context, record *freitagsfoo.Record) (err error) {
	defer func(begin time.Time) {
		logWrite(s.logger, record, begin, err)
	}(time.Now())
	return s.next.WriteRecord(ctx, record)
}

// FindRecordByDate delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) FindRecordByDate(ctx context.Context, date string) (record *freitagsfoo.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find record",
			"date", date,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecordByDate(ctx, date)
}

// FindRecords delegates to the wrapped store and logs the operation.
func (s *LoggingRecordStore) FindRecords(ctx context.Context, filter freitagsfoo.RecordFilter) (records []*freitagsfoo.Record, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find records",
			"count", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRecords(ctx, filter)
}

func logWrite(logger *slog.Logger, record *freitagsfoo.Record, begin time.Time, err error) {
	logger.Info("write record",
		"date", record.Date,
		"hosts", len(record.Hosts),
		"talks", len(record.Talks),
		"duration", time.Since(begin),
		"err", err,
	)
}
