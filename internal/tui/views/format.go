package views

import (
	"fmt"
	"time"
)

// formatTimestamp renders t the way the contact list shows it: clock time
// for today, weekday within a week, date otherwise.
func formatTimestamp(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	switch {
	case sameDay(t, now):
		return t.Format("15:04")
	case now.Sub(t) < 7*24*time.Hour:
		return t.Format("Mon")
	default:
		return t.Format("02.01.06")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// unreadBadge renders a count capped at 99+.
func unreadBadge(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 99:
		return "99+"
	default:
		return fmt.Sprint(n)
	}
}
