package utils

import (
	"fmt"
	"time"
)

// ReferenceTZ is the fixed calendar timezone used for day boundaries and
// time-of-day extraction. Absolute arithmetic stays in epoch seconds; only
// formatting and "today" derivation go through this zone.
var ReferenceTZ = time.FixedZone("KST", 9*60*60)

// SetReferenceZone repoints ReferenceTZ at a fixed UTC offset. Called once
// at process startup, before any engine or provider is built.
func SetReferenceZone(offsetHours int) {
	if offsetHours == 9 {
		ReferenceTZ = time.FixedZone("KST", 9*60*60)
		return
	}
	ReferenceTZ = time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*60*60)
}

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Today returns the calendar date string for now in the reference timezone.
func Today(now time.Time) string {
	return now.In(ReferenceTZ).Format(DateLayout)
}

// FormatClock renders an instant as HH:mm in the reference timezone.
func FormatClock(t time.Time) string {
	return t.In(ReferenceTZ).Format(ClockLayout)
}

// ParseClock parses a wall-clock string like "09:00".
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		// Try with seconds
		t, err = time.Parse("15:04:05", s)
	}
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// AtTimeOfDay places the wall-clock hour/minute of src onto the calendar day
// of base in the reference timezone. src's own zone is ignored: "09:00" means
// 09:00 regardless of where it was parsed.
func AtTimeOfDay(base, src time.Time) time.Time {
	b := base.In(ReferenceTZ)
	return time.Date(b.Year(), b.Month(), b.Day(), src.Hour(), src.Minute(), 0, 0, ReferenceTZ)
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	// Try with nanoseconds (e.g. 2025-10-13T09:30:00.123Z)
	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	// Try fallback common formats in the reference timezone
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, ReferenceTZ); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}
