package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	now := ts("2024-03-15T12:00:00Z")

	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"just now", now, "today"},
		{"hours ago", now.Add(-23 * time.Hour), "today"},
		{"one day", now.Add(-24 * time.Hour), "1 day ago"},
		{"under two days", now.Add(-47 * time.Hour), "1 day ago"},
		{"two days", now.Add(-48 * time.Hour), "2 days ago"},
		{"six days", now.Add(-6*24*time.Hour - time.Hour), "6 days ago"},
		{"one week", now.Add(-7 * 24 * time.Hour), "Mar 8, 2024"},
		{"months ago", ts("2023-11-02T09:00:00Z"), "Nov 2, 2023"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelative(tt.at, now))
		})
	}
}

func TestFormatRelativeIsDeterministic(t *testing.T) {
	// now is an explicit input; the same pair always formats the same way.
	at := ts("2024-03-10T12:00:00Z")
	now := ts("2024-03-15T12:00:00Z")
	assert.Equal(t, FormatRelative(at, now), FormatRelative(at, now))
}
