package playlist

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatDuration formats a duration for display as M:SS, or H:MM:SS
// once it reaches an hour. Negative durations format as 0:00.
func FormatDuration(d time.Duration) string {
	total := max(int(d/time.Second), 0)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatSeconds formats a whole number of seconds like FormatDuration.
func FormatSeconds(seconds int) string {
	return FormatDuration(time.Duration(seconds) * time.Second)
}

// ParseDuration parses a display string produced by FormatDuration
// (or any M:SS / H:MM:SS string). Returns false for malformed input.
func ParseDuration(s string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	var total int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, false
		}
		// Every field after the leading one is base 60.
		if i > 0 && n >= 60 {
			return 0, false
		}
		total = total*60 + n
	}
	return time.Duration(total) * time.Second, true
}
