package sqldb

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// форматы, в которых время встречается в старых и текущих базах
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp nullable-время, которое читается и из TIMESTAMP, и из TEXT-колонок
type Timestamp struct {
	Time  time.Time
	Valid bool
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// Scan реализует sql.Scanner
func (t *Timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = Timestamp{}
		return nil
	case time.Time:
		*t = NewTimestamp(v)
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
}

func (t *Timestamp) parse(s string) error {
	s = strings.TrimSpace(s)
	// строки из time.String() несут показания монотонных часов: " m=+0.010010988"
	if i := strings.Index(s, " m="); i > 0 {
		s = s[:i]
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}

	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = NewTimestamp(parsed)
			return nil
		}
	}

	return fmt.Errorf("unsupported timestamp format: %q", s)
}

// Value реализует driver.Valuer; монотонная часть time.Now() отбрасывается
func (t Timestamp) Value() (driver.Value, error) {
	if !t.Valid {
		return nil, nil
	}
	return t.Time.Round(0), nil
}

// Ptr nil для NULL
func (t Timestamp) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
