// Package timefmt formats playback durations for display.
package timefmt

import (
	"fmt"
	"time"
)

// Format renders d as MM:SS, or HH:MM:SS once it reaches an hour.
// Negative durations render as zero.
func Format(d time.Duration) string {
	total := max(int64(d/time.Second), 0)
	h := total / 3600
	m := (total / 60) % 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// Seconds formats a count of seconds, as reported by the sleep timer.
func Seconds(n int) string {
	return Format(time.Duration(n) * time.Second)
}
