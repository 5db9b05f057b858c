package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/audiobook/internal/icons"
	"github.com/llehouerou/audiobook/internal/keymap"
	"github.com/llehouerou/audiobook/internal/ui/playerbar"
	"github.com/llehouerou/audiobook/internal/ui/popup"
	"github.com/llehouerou/audiobook/internal/ui/render"
	"github.com/llehouerou/audiobook/internal/ui/styles"
	"github.com/llehouerou/audiobook/internal/ui/timefmt"
)

const defaultWidth = 80

// View renders the application UI.
func (m Model) View() string {
	width := m.Width
	if width <= 0 {
		width = defaultWidth
	}
	s := styles.T().S()

	lines := []string{
		render.Row(s.Title.Render("audiobook"), m.renderSleep(), width),
		playerbar.Render(playerbar.NewState(m.Playback), width),
	}
	if m.ErrorMsg != "" {
		lines = append(lines, s.Error.Render(render.TruncateEllipsis(icons.Error()+m.ErrorMsg, width)))
	}
	lines = append(lines, s.Subtle.Render(render.TruncateEllipsis(m.renderHints(), width)))

	view := strings.Join(lines, "\n")
	if m.Height > 0 {
		if pad := m.Height - lipgloss.Height(view); pad > 0 {
			view += strings.Repeat("\n", pad)
		}
	}

	switch {
	case m.Prompt.Active():
		box := popup.Box(m.Prompt.Title(), m.Prompt.View(), m.Prompt.Hint(), m.promptWidth()+4)
		view = popup.Compose(view, box, width, m.Height)
	case m.ShowHelp:
		box := popup.Box("Keys", m.renderHelp(), "Press any key to close", 0)
		view = popup.Compose(view, box, width, m.Height)
	}
	return view
}

func (m Model) renderSleep() string {
	s := styles.T().S()
	if !m.Sleep.Running {
		return s.Muted.Render("sleep timer off")
	}
	return s.Timer.Render(icons.Timer() + "sleep in " + timefmt.Seconds(m.Sleep.Remaining))
}

func (m Model) renderHints() string {
	skip := m.Config.SkipInterval.String()
	return strings.Join([]string{
		"space play/pause",
		fmt.Sprintf("←/→ ±%s", skip),
		"o open",
		"t sleep",
		"? help",
		"q quit",
	}, " · ")
}

func (m Model) renderHelp() string {
	s := styles.T().S()
	var b strings.Builder
	for i, ctx := range keymap.Contexts {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, kb := range keymap.ByContext(ctx) {
			keys := displayKeys(m.Keys.KeysFor(kb.Action))
			fmt.Fprintf(&b, "%s  %s\n", s.Key.Render(fmt.Sprintf("%-12s", keys)), kb.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func displayKeys(keys []string) string {
	if len(keys) > 3 {
		return keys[0] + "-" + keys[len(keys)-1]
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		if k == " " {
			k = "space"
		}
		out[i] = k
	}
	return strings.Join(out, "/")
}
