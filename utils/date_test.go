package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToday(t *testing.T) {
	// 2025-07-21 23:30 UTC is already 2025-07-22 in KST
	now := time.Date(2025, 7, 21, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-07-22", Today(now))

	now = time.Date(2025, 7, 21, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "2025-07-21", Today(now))
}

func TestSetReferenceZone(t *testing.T) {
	orig := ReferenceTZ
	defer func() { ReferenceTZ = orig }()

	// 23:30 UTC: next day in KST, same day at UTC+0
	now := time.Date(2025, 7, 21, 23, 30, 0, 0, time.UTC)

	SetReferenceZone(0)
	assert.Equal(t, "2025-07-21", Today(now))
	assert.Equal(t, "23:30", FormatClock(now))

	SetReferenceZone(9)
	assert.Equal(t, "2025-07-22", Today(now))
	assert.Equal(t, "KST", ReferenceTZ.String())
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		hour    int
		minute  int
		wantErr bool
	}{
		{name: "plain", input: "09:00", hour: 9, minute: 0},
		{name: "with seconds", input: "13:45:30", hour: 13, minute: 45},
		{name: "invalid", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.hour, got.Hour())
			assert.Equal(t, tt.minute, got.Minute())
		})
	}
}

func TestAtTimeOfDay(t *testing.T) {
	base := time.Date(2025, 7, 22, 3, 0, 0, 0, ReferenceTZ)
	src := time.Date(2000, 1, 1, 9, 30, 0, 0, ReferenceTZ)

	got := AtTimeOfDay(base, src)
	assert.Equal(t, time.Date(2025, 7, 22, 9, 30, 0, 0, ReferenceTZ), got)
}

func TestParseISOTime(t *testing.T) {
	got, err := ParseISOTime("2025-10-13T09:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 13, 9, 30, 0, 0, time.UTC), got.UTC())

	got, err = ParseISOTime("2025-10-13 09:30:00")
	assert.NoError(t, err)
	assert.Equal(t, 9, got.Hour())

	_, err = ParseISOTime("")
	assert.Error(t, err)

	_, err = ParseISOTime("not-a-time")
	assert.Error(t, err)
}
