package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateOnlyLayout  = "2006-01-02"
)

// Timestamp is a nullable point in time persisted as "YYYY-MM-DD HH:MM:SS".
// The zero value marshals as null. Loading tolerates bare dates and treats
// unparseable legacy values as unset rather than failing the record.
type Timestamp struct {
	time.Time
}

// Now returns the current time as a Timestamp.
func Now() Timestamp {
	return Timestamp{Time: time.Now()}
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(timestampLayout))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	layout := timestampLayout
	if len(s) <= len(dateOnlyLayout) {
		layout = dateOnlyLayout
	}
	parsed, err := time.Parse(layout, s)
	if err != nil {
		// legacy records carry free-form date strings; treat as unset
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed
	return nil
}
