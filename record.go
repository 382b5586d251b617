package freitagsfoo

import (
	"bytes"
	"encoding/json"
	"time"
)

// DateLayout is the serialized form of a meetup date.
const DateLayout = "2006-01-02"

// DefaultPagePrefix is the wiki namespace path holding one page per meetup.
const DefaultPagePrefix = "Freitagsfoo/"

// Record is the structured result extracted from one meetup page.
type Record struct {
	Hosts []string `json:"hosts"`
	Date  string   `json:"date"`
	Talks []Talk   `json:"talks"`
}

// Talk is one presentation slot, derived from one heading section.
type Talk struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Persons     []string `json:"persons"`
}

// Validate returns an error if the record contains invalid fields.
func (r *Record) Validate() error {
	if r.Date == "" {
		return Errorf(EINVALID, "record date required")
	}
	if _, err := ParseDate(r.Date); err != nil {
		return err
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// FormatDate formats t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MeetingDate returns the Friday of the week containing now.
// Weeks start on Monday, so on Saturday and Sunday the past Friday is returned.
func MeetingDate(now time.Time) time.Time {
	weekday := (int(now.Weekday()) + 6) % 7 // Monday = 0
	y, m, d := now.AddDate(0, 0, 4-weekday).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// PageTitle returns the wiki page title for the meetup on date.
func PageTitle(prefix string, date time.Time) string {
	return prefix + FormatDate(date)
}

// MarshalRecord serializes a record as indented JSON.
// Empty sequences are always written as arrays and non-ASCII text is kept as is,
// so byte-identical records always produce byte-identical output.
func MarshalRecord(r *Record) ([]byte, error) {
	out := Record{
		Hosts: nonNil(r.Hosts),
		Date:  r.Date,
		Talks: make([]Talk, 0, len(r.Talks)),
	}
	for _, talk := range r.Talks {
		talk.Persons = nonNil(talk.Persons)
		out.Talks = append(out.Talks, talk)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalRecord parses JSON produced by MarshalRecord.
func UnmarshalRecord(data []byte) (*Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, Errorf(EINVALID, "invalid record JSON: %v", err)
	}
	return &r, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
