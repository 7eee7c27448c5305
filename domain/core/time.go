package core

import "time"

// Timestamp represents a point in time, used to stamp run summaries.
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp.
func Now() Timestamp {
	return Timestamp(time.Now())
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// String renders the timestamp as RFC3339.
func (t Timestamp) String() string {
	return t.Time().Format(time.RFC3339)
}
