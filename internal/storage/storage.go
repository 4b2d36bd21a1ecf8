package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyPlanned = errors.New("task is already planned")
	ErrAlreadyDeleted = errors.New("already deleted")
	ErrNotDeleted     = errors.New("not deleted")
	ErrNotInitialized = errors.New("storage not initialized, run 'tempo init' first")
)

// TimestampFormat is the on-disk representation of instants. Values are
// always written in UTC so lexical order matches chronological order.
const TimestampFormat = time.RFC3339

// FormatTimestamp renders t in UTC for storage
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// ParseTimestamp reads a stored timestamp back as a UTC instant
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// NullTimestamp converts an optional instant to a nullable column value
func NullTimestamp(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTimestamp(*t), Valid: true}
}

// TimestampPtr converts a nullable column value back to an optional instant
func TimestampPtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NullString maps the empty string to NULL
func NullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullStringPtr maps a nil pointer to NULL
func NullStringPtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullInt maps a nil pointer to NULL
func NullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}

// NullPositive maps zero and negative values to NULL
func NullPositive(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n > 0}
}

// IntPtr converts a nullable integer column back to an optional int
func IntPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

// StringPtr converts a nullable text column back to an optional string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// Now returns the current instant formatted for storage
func Now() string {
	return FormatTimestamp(time.Now())
}

// NotFound wraps ErrNotFound with the kind and id of the missing record
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}
