package reminder

import (
	"fmt"
	"time"
)

// Layouts without a zone are read in the run's location.
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Offset-bearing ISO-8601. "Z" is handled by utcLayout.
const offsetLayout = "2006-01-02T15:04:05-07:00"

// utcLayout is the fractional-seconds variant with a literal UTC suffix written by the web client.
const utcLayout = "2006-01-02T15:04:05Z"

// ParseTimestamp parses a stored timestamp, trying plain ISO-8601 first and then
// the UTC "Z" form. The result is always expressed in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(offsetLayout, s); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.Parse(utcLayout, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableTime, s)
}
