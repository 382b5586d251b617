package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/freitagsfoo"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ freitagsfoo.RecordStore = (*RecordService)(nil)

// Appearance roles stored alongside each record.
const (
	RoleHost    = "host"
	RoleSpeaker = "speaker"
)

// RecordService implements freitagsfoo.RecordStore using SQLite.
// Records are keyed by meetup date; writing a record for a date that is
// already archived replaces it.
type RecordService struct {
	db  *DB
	now func() time.Time
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db, now: time.Now}
}

// WriteRecord archives the record. Rewriting an identical record is a no-op
// and leaves updated_at untouched.
func (s *RecordService) WriteRecord(ctx context.Context, record *freitagsfoo.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	content, err := freitagsfoo.MarshalRecord(record)
	if err != nil {
		return err
	}
	hash := hashContent(content)
	now := s.now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id, existingHash string
	err = tx.QueryRowContext(ctx, `
		SELECT id, content_hash FROM records WHERE date = ?
	`, record.Date).Scan(&id, &existingHash)

	switch {
	case err == sql.ErrNoRows:
		id = uuid.New().String()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO records (id, date, content, content_hash, talk_count, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, record.Date, string(content), hash, len(record.Talks), now, now); err != nil {
			return err
		}
	case err != nil:
		return err
	case existingHash == hash:
		return tx.Commit()
	default:
		if _, err := tx.ExecContext(ctx, `
			UPDATE records SET content = ?, content_hash = ?, talk_count = ?, updated_at = ?
			WHERE id = ?
		`, string(content), hash, len(record.Talks), now, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM appearances WHERE record_id = ?`, id); err != nil {
			return err
		}
	}

	if err := insertAppearances(ctx, tx, id, record); err != nil {
		return err
	}

	return tx.Commit()
}

func insertAppearances(ctx context.Context, tx *sql.Tx, recordID string, record *freitagsfoo.Record) error {
	for _, host := range record.Hosts {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO appearances (record_id, person, role, position) VALUES (?, ?, ?, 0)
		`, recordID, normalizePerson(host), RoleHost); err != nil {
			return err
		}
	}
	for i, talk := range record.Talks {
		for _, person := range talk.Persons {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO appearances (record_id, person, role, position) VALUES (?, ?, ?, ?)
			`, recordID, normalizePerson(person), RoleSpeaker, i); err != nil {
				return err
			}
		}
	}
	return nil
}

// FindRecordByDate retrieves the record archived for date.
func (s *RecordService) FindRecordByDate(ctx context.Context, date string) (*freitagsfoo.Record, error) {
	if _, err := freitagsfoo.ParseDate(date); err != nil {
		return nil, err
	}

	var content string
	err := s.db.QueryRowContext(ctx, `
		SELECT content FROM records WHERE date = ?
	`, date).Scan(&content)

	if err == sql.ErrNoRows {
		return nil, freitagsfoo.Errorf(freitagsfoo.ENOTFOUND, "no record archived for %s", date)
	}
	if err != nil {
		return nil, err
	}

	return freitagsfoo.UnmarshalRecord([]byte(content))
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter freitagsfoo.RecordFilter) ([]*freitagsfoo.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT content FROM records WHERE 1=1")

	if filter.Person != nil {
		query.WriteString(" AND id IN (SELECT record_id FROM appearances WHERE person = ?)")
		args = append(args, normalizePerson(*filter.Person))
	}

	query.WriteString(" ORDER BY date DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*freitagsfoo.Record
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, err
		}
		record, err := freitagsfoo.UnmarshalRecord([]byte(content))
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func normalizePerson(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
