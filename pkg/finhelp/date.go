package finhelp

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// timestampLayouts are the ISO-8601 shapes accepted for timestamps, most common first.
// Layouts without an offset parse as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	dateLayout,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 date or datetime
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", s)
}

// ParseDate parses an ISO-8601 date (a datetime is accepted and truncated to its day)
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}
	return CivilDate(t), nil
}

// CivilDate returns the calendar day of t, as seen in t's own offset, at midnight UTC
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts whole calendar days from a to b
func daysBetween(a, b time.Time) int {
	return int((CivilDate(b).Unix() - CivilDate(a).Unix()) / secondsPerDay)
}

// Date is a custom type that handles date-only JSON values
type Date struct {
	time.Time
}

// NewDate returns the Date for t's calendar day
func NewDate(t time.Time) Date {
	return Date{Time: CivilDate(t)}
}

// UnmarshalJSON implements json.Unmarshaler for Date
func (d *Date) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)

	if str == "" || str == "null" {
		d.Time = time.Time{}
		return nil
	}

	t, err := ParseDate(str)
	if err != nil {
		return fmt.Errorf("unable to parse date: %s", str)
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler for Date
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf(`"%s"`, d.Time.Format(dateLayout))), nil
}

// String returns the date as a string
func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}
