package freitagsfoo

import "context"

// RecordWriter publishes an extracted record.
type RecordWriter interface {
	WriteRecord(ctx context.Context, record *Record) error
}

// RecordStore archives published records by meetup date.
type RecordStore interface {
	RecordWriter

	// FindRecordByDate returns the archived record for a YYYY-MM-DD date.
	// Returns ENOTFOUND if no record was archived for that date.
	FindRecordByDate(ctx context.Context, date string) (*Record, error)

	// FindRecords returns archived records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)
}

// RecordFilter represents a filter for FindRecords.
type RecordFilter struct {
	// Person limits results to meetups the identifier hosted or spoke at.
	Person *string

	Limit  int
	Offset int
}
