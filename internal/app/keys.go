package app

import (
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiobook/internal/app/handler"
	"github.com/llehouerou/audiobook/internal/errmsg"
	"github.com/llehouerou/audiobook/internal/keymap"
	"github.com/llehouerou/audiobook/internal/ui/prompt"
)

const (
	maxPromptWidth = 70
	minPromptWidth = 20
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.Prompt.Active() {
		_, cmd := m.Prompt.Update(msg)
		return m, cmd
	}

	if m.ShowHelp {
		m.ShowHelp = false
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	r := handler.Chain(key,
		m.handleGlobalKeys,
		m.handlePlaybackKeys,
		m.handleMediaKeys,
		m.handleSleepKeys,
	)
	m.Playback = m.Session.Playback()
	return m, r.Cmd
}

func (m *Model) handleGlobalKeys(key string) handler.Result {
	switch m.Keys.Resolve(key) { //nolint:exhaustive // only handling global actions
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.ShowHelp = true
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

func (m *Model) handlePlaybackKeys(key string) handler.Result {
	switch m.Keys.Resolve(key) { //nolint:exhaustive // only handling playback actions
	case keymap.ActionPlayPause:
		m.Session.PlayPause()
	case keymap.ActionSkipForward:
		m.Session.SkipForward()
	case keymap.ActionSkipBackward:
		m.Session.SkipBackward()
	case keymap.ActionSeekStart:
		m.Session.SeekTo(0)
	case keymap.ActionSeekPercent:
		tenths, err := strconv.Atoi(key)
		if err != nil {
			return handler.NotHandled
		}
		if d := m.Session.Playback().Duration; d > 0 {
			m.Session.SeekTo(d * time.Duration(tenths) / 10)
		}
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) handleMediaKeys(key string) handler.Result {
	switch m.Keys.Resolve(key) { //nolint:exhaustive // only handling media actions
	case keymap.ActionOpenFile:
		return handler.Handled(m.startOpenPrompt())
	case keymap.ActionClearFile:
		m.Session.Clear()
		m.ErrorMsg = ""
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

func (m *Model) handleSleepKeys(key string) handler.Result {
	switch m.Keys.Resolve(key) { //nolint:exhaustive // only handling sleep timer actions
	case keymap.ActionSleepStart:
		return handler.Handled(m.startSleepPrompt())
	case keymap.ActionSleepCancel:
		m.Session.CancelSleepTimer()
		m.Sleep = m.Session.SleepTimer()
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

func (m *Model) promptWidth() int {
	return min(max(m.Width-8, minPromptWidth), maxPromptWidth)
}

// startOpenPrompt opens the file prompt in the last used folder, offering
// recently opened files for completion.
func (m *Model) startOpenPrompt() tea.Cmd {
	folder := m.Config.DefaultFolder
	var recent []string
	if m.StateMgr != nil {
		if last := m.StateMgr.GetPreferences().LastFolder; last != "" {
			folder = last
		}
		var err error
		recent, err = m.StateMgr.RecentFiles()
		if err != nil {
			m.ErrorMsg = errmsg.Format(errmsg.OpRecentLoad, err)
		}
	}

	initial := ""
	if folder != "" {
		initial = folder + string(os.PathSeparator)
	}
	return m.Prompt.Start(prompt.KindOpenFile, "Open audiobook", initial, recent, m.promptWidth())
}

// startSleepPrompt opens the minutes prompt prefilled with the last used value.
func (m *Model) startSleepPrompt() tea.Cmd {
	minutes := m.Config.SleepMinutes
	if m.StateMgr != nil {
		if last := m.StateMgr.GetPreferences().SleepMinutes; last > 0 {
			minutes = last
		}
	}
	return m.Prompt.Start(prompt.KindSleepMinutes, "Sleep timer (minutes)", strconv.Itoa(minutes), nil, m.promptWidth())
}
