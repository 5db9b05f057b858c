package playerbar

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/audiobook/internal/engine"
	"github.com/llehouerou/audiobook/internal/media"
	"github.com/llehouerou/audiobook/internal/playback"
)

var hobbit = &media.Ref{
	Path:   "/books/The Hobbit.m4b",
	Title:  "The Hobbit",
	Author: "J.R.R. Tolkien",
	Book:   "The Hobbit (Unabridged)",
	Format: "M4B",
	Size:   350 * 1000 * 1000,
}

func TestNewState(t *testing.T) {
	assert.Equal(t, State{}, NewState(playback.State{}))

	s := NewState(playback.State{
		Media:     hobbit,
		Playing:   true,
		Position:  time.Minute,
		Duration:  time.Hour,
		Lifecycle: engine.Ready,
	})
	assert.Equal(t, "The Hobbit", s.Title)
	assert.Equal(t, StatusPlaying, s.Status)
	assert.Equal(t, time.Minute, s.Position)
	assert.Equal(t, time.Hour, s.Duration)
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		st   playback.State
		want Status
	}{
		{"playing", playback.State{Playing: true, Lifecycle: engine.Ready}, StatusPlaying},
		{"paused", playback.State{Lifecycle: engine.Ready}, StatusPaused},
		{"buffering", playback.State{Lifecycle: engine.Buffering}, StatusBuffering},
		{"ended", playback.State{Lifecycle: engine.Ended}, StatusEnded},
		{"load failed", playback.State{Lifecycle: engine.Idle, Idle: playback.IdleLoadFailed}, StatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.st))
		})
	}
}

func TestDetails(t *testing.T) {
	s := NewState(playback.State{Media: hobbit})
	assert.Equal(t, "J.R.R. Tolkien · The Hobbit (Unabridged) · M4B · 350 MB", details(s))

	// Book equal to the title is not repeated.
	s.Book = s.Title
	s.Size = 0
	assert.Equal(t, "J.R.R. Tolkien · M4B", details(s))
}

func TestBar_ExactWidth(t *testing.T) {
	for _, ratio := range []time.Duration{0, 10, 50, 100, 150} {
		bar := Bar(ratio*time.Second, 100*time.Second, 20)
		assert.Equal(t, 20, lipgloss.Width(bar), "ratio %d", ratio)
	}
	assert.Equal(t, 10, lipgloss.Width(Bar(time.Minute, 0, 10)))
	assert.Empty(t, Bar(time.Minute, time.Hour, 0))
}

func TestProgressLine(t *testing.T) {
	s := State{Status: StatusPaused, Position: 30 * time.Second, Duration: time.Hour}

	line := ProgressLine(s, 60)
	assert.Contains(t, line, "00:30")
	assert.Contains(t, line, "01:00:00")
	assert.Equal(t, 60, lipgloss.Width(line))

	s.Duration = 0
	assert.Contains(t, ProgressLine(s, 60), "--:--")

	narrow := ProgressLine(State{Status: StatusPlaying, Position: time.Second, Duration: time.Minute}, 10)
	assert.Contains(t, narrow, "00:01 / 01:00")
}

func TestRender_Dimensions(t *testing.T) {
	tests := []struct {
		name string
		s    State
	}{
		{"empty", State{}},
		{"playing", NewState(playback.State{Media: hobbit, Playing: true, Position: time.Minute, Duration: time.Hour})},
		{"failed", NewState(playback.State{Media: hobbit, Idle: playback.IdleLoadFailed})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.s, 70)
			assert.Equal(t, Height, lipgloss.Height(out))
			assert.Equal(t, 70, lipgloss.Width(out))
		})
	}
}

func TestRender_NoMedia(t *testing.T) {
	assert.Contains(t, Render(State{}, 50), "No file selected")
}

func TestRender_TruncatesLongTitle(t *testing.T) {
	ref := *hobbit
	ref.Title = "The Lord of the Rings: The Fellowship of the Ring, Book One"
	out := Render(NewState(playback.State{Media: &ref}), 30)
	assert.Contains(t, out, "…")
	assert.Equal(t, 30, lipgloss.Width(out))
}
