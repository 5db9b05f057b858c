// Package playerbar renders the now-playing panel: title, book details and
// a progress line.
package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/audiobook/internal/engine"
	"github.com/llehouerou/audiobook/internal/icons"
	"github.com/llehouerou/audiobook/internal/playback"
	"github.com/llehouerou/audiobook/internal/ui/render"
	"github.com/llehouerou/audiobook/internal/ui/styles"
	"github.com/llehouerou/audiobook/internal/ui/timefmt"
)

// Height is the rendered height: three content rows and the border.
const Height = 5

// Status is the short playback status shown before the progress bar.
type Status int

const (
	StatusNone Status = iota
	StatusPaused
	StatusPlaying
	StatusBuffering
	StatusEnded
	StatusFailed
)

// State holds everything needed to render the player bar.
type State struct {
	Title    string
	Author   string
	Book     string
	Format   string
	Size     int64
	Status   Status
	Position time.Duration
	Duration time.Duration
}

// NewState builds a State from a playback snapshot. Without media it
// returns the zero State.
func NewState(st playback.State) State {
	if st.Media == nil {
		return State{}
	}
	return State{
		Title:    st.Media.Title,
		Author:   st.Media.Author,
		Book:     st.Media.Book,
		Format:   st.Media.Format,
		Size:     st.Media.Size,
		Status:   statusOf(st),
		Position: st.Position,
		Duration: st.Duration,
	}
}

func statusOf(st playback.State) Status {
	switch {
	case st.Playing:
		return StatusPlaying
	case st.Lifecycle == engine.Buffering:
		return StatusBuffering
	case st.Lifecycle == engine.Ended:
		return StatusEnded
	case st.Idle == playback.IdleLoadFailed:
		return StatusFailed
	default:
		return StatusPaused
	}
}

// Render returns the player bar for the given outer width.
func Render(s State, width int) string {
	t := styles.T()
	innerWidth := max(width-4, 0) // border + padding

	if s.Status == StatusNone {
		body := t.S().Muted.Render("No file selected")
		return styles.PanelStyle(false).Width(width - 2).Render(body + "\n\n")
	}

	title := s.Title
	if title == "" {
		title = "Unknown Title"
	}
	title = render.TruncateEllipsis(icons.FormatBook(title), innerWidth)

	lines := []string{
		styles.NewGradient(t.Primary, t.Secondary).Bold().Render(title),
		t.S().Muted.Render(render.TruncateEllipsis(details(s), innerWidth)),
		ProgressLine(s, innerWidth),
	}
	return styles.PanelStyle(s.Status == StatusPlaying).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}

// details joins author, book, format and size with " · ".
func details(s State) string {
	var parts []string
	if s.Author != "" {
		parts = append(parts, s.Author)
	}
	if s.Book != "" && s.Book != s.Title {
		parts = append(parts, s.Book)
	}
	if s.Format != "" {
		parts = append(parts, s.Format)
	}
	if s.Size > 0 {
		parts = append(parts, humanize.Bytes(uint64(s.Size)))
	}
	return strings.Join(parts, " · ")
}

func statusSymbol(s Status) string {
	switch s {
	case StatusPlaying:
		return icons.Play()
	case StatusBuffering:
		return icons.Buffering()
	case StatusEnded:
		return icons.Ended()
	case StatusFailed:
		return strings.TrimSpace(icons.Error())
	default:
		return icons.Pause()
	}
}

// width reserved for the status symbol column
const symbolWidth = 2

// unused space below this is not worth a bar
const minBarWidth = 3

// ProgressLine renders "▶  01:23  ━━━━────  04:56" within width.
func ProgressLine(s State, width int) string {
	t := styles.T()
	symbol := lipgloss.NewStyle().Width(symbolWidth).Render(statusSymbol(s.Status))
	if s.Status == StatusPlaying {
		symbol = t.S().Playing.Render(symbol)
	}

	pos := timefmt.Format(s.Position)
	dur := "--:--"
	if s.Duration > 0 {
		dur = timefmt.Format(s.Duration)
	}

	fixed := symbolWidth + 1 + lipgloss.Width(pos) + 2 + 2 + lipgloss.Width(dur)
	barWidth := width - fixed
	if barWidth < minBarWidth {
		return symbol + " " + pos + " / " + dur
	}

	return symbol + " " + pos + "  " + Bar(s.Position, s.Duration, barWidth) + "  " + dur
}

// Bar renders a progress bar of exactly width cells.
func Bar(position, duration time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	var ratio float64
	if duration > 0 {
		ratio = min(max(float64(position)/float64(duration), 0), 1)
	}
	filled := min(int(float64(width)*ratio), width)

	t := styles.T()
	return styles.NewGradient(t.Primary, t.Secondary).RenderSpan(strings.Repeat("━", filled), width) +
		t.S().Subtle.Render(strings.Repeat("─", width-filled))
}
