package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiobook/internal/errmsg"
	"github.com/llehouerou/audiobook/internal/ui/action"
	"github.com/llehouerou/audiobook/internal/ui/prompt"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case PlaybackStateMsg:
		m.Playback = msg.State
		return m, m.WatchPlayback()

	case PlaybackErrorMsg:
		m.ErrorMsg = errmsg.FormatWith(errmsg.OpMediaLoad, filepath.Base(msg.Event.Path), msg.Event.Err)
		m.Playback = m.Session.Playback()
		return m, m.WatchPlayback()

	case PlaybackClosedMsg:
		return m, nil

	case SleepTimerMsg:
		m.Sleep = msg.State
		return m, m.WatchSleepTimer()

	case StderrMsg:
		m.logger.Debug("audio library output", "line", string(msg))
		return m, m.WatchStderr()

	case OpenResultMsg:
		if msg.Err != nil {
			m.ErrorMsg = errmsg.FormatWith(errmsg.OpFileOpen, msg.Path, msg.Err)
		} else {
			m.ErrorMsg = ""
		}
		m.Playback = m.Session.Playback()
		return m, nil

	case action.Msg:
		if result, ok := msg.Action.(prompt.Result); ok {
			return m.handlePromptResult(result)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other component messages.
	if m.Prompt.Active() {
		_, cmd := m.Prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handlePromptResult(r prompt.Result) (tea.Model, tea.Cmd) {
	m.Prompt.Reset()
	if r.Canceled || r.Text == "" {
		return m, nil
	}

	switch r.Kind {
	case prompt.KindOpenFile:
		return m, m.OpenFileCmd(r.Text)
	case prompt.KindSleepMinutes:
		if !m.Session.StartSleepTimerInput(r.Text) {
			m.logger.Debug("sleep timer input ignored", "input", r.Text)
		}
		m.Sleep = m.Session.SleepTimer()
	}
	return m, nil
}
