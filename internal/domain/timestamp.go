package domain

import "time"

const DateLayout = "2006-01-02"

// offset-bearing layouts besides RFC 3339; fractional seconds are accepted
// after the seconds field without being spelled out
var offsetLayouts = []string{
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05Z07",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
}

// layouts without a zone offset, read in the caller's location
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a record timestamp. Values with an offset keep it,
// zone-less date-times are read in loc and bare dates are UTC midnight.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}

	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true
	}

	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
