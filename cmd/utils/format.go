package utils

import (
	"fmt"
	"time"
)

// FormatEngagementNumber abbreviates large counters with K/M suffixes.
func FormatEngagementNumber(number int) string {
	switch {
	case number >= 1000000:
		return fmt.Sprintf("%.1fM", float64(number)/1000000)
	case number >= 1000:
		return fmt.Sprintf("%.1fK", float64(number)/1000)
	default:
		return fmt.Sprintf("%d", number)
	}
}

// TimeAgo renders a human-readable relative label for a past timestamp.
func TimeAgo(timestamp time.Time) string {
	diff := time.Since(timestamp)
	days := int(diff.Hours() / 24)

	if days > 0 {
		switch {
		case days == 1:
			return "1 day ago"
		case days < 7:
			return fmt.Sprintf("%d days ago", days)
		case days < 30:
			return plural(days/7, "week")
		case days < 365:
			return plural(days/30, "month")
		default:
			return plural(days/365, "year")
		}
	}

	if hours := int(diff.Hours()); hours >= 1 {
		return plural(hours, "hour")
	}
	if minutes := int(diff.Minutes()); minutes >= 1 {
		return plural(minutes, "minute")
	}
	return "Just now"
}

func plural(n int, unit string) string {
	if n > 1 {
		return fmt.Sprintf("%d %ss ago", n, unit)
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
