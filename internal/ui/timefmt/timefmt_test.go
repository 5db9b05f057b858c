package timefmt

import (
	"testing"
	"time"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"zero", 0, "00:00"},
		{"sub-second truncates", 999 * time.Millisecond, "00:00"},
		{"seconds", 7 * time.Second, "00:07"},
		{"minutes", 3*time.Minute + 58*time.Second, "03:58"},
		{"just under an hour", 59*time.Minute + 59*time.Second, "59:59"},
		{"one hour", time.Hour, "01:00:00"},
		{"long book", 12*time.Hour + 5*time.Minute + 9*time.Second, "12:05:09"},
		{"negative clamps", -5 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.in); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(1800); got != "30:00" {
		t.Errorf("Seconds(1800) = %q, want %q", got, "30:00")
	}
	if got := Seconds(5400); got != "01:30:00" {
		t.Errorf("Seconds(5400) = %q, want %q", got, "01:30:00")
	}
}
