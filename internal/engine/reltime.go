package engine

import (
	"fmt"
	"time"
)

const absoluteDateLayout = "Jan 2, 2006"

// FormatRelative renders the age of t relative to now as a coarse,
// human-facing bucket: "today" under one day, "1 day ago" under two,
// "N days ago" under a week, and an absolute calendar date beyond that.
// now is an explicit input so the function stays deterministic.
func FormatRelative(t, now time.Time) string {
	age := now.Sub(t)
	switch {
	case age < 24*time.Hour:
		return "today"
	case age < 48*time.Hour:
		return "1 day ago"
	case age < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(age.Hours()/24))
	default:
		return t.Format(absoluteDateLayout)
	}
}
