package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// WatchPlayback waits for the next playback event and converts it to a
// tea.Msg. Position, state and media changes all collapse to one snapshot.
func (m Model) WatchPlayback() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub, sess := m.sub, m.Session
	return func() tea.Msg {
		select {
		case <-sub.StateChanged:
		case <-sub.PositionChanged:
		case <-sub.MediaChanged:
		case e := <-sub.Error:
			return PlaybackErrorMsg{Event: e}
		case <-sub.Done:
			return PlaybackClosedMsg{}
		}
		return PlaybackStateMsg{State: sess.Playback()}
	}
}

// WatchSleepTimer waits for the next sleep timer update.
func (m Model) WatchSleepTimer() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	updates, done := m.Session.TimerUpdates(), m.sub.Done
	return func() tea.Msg {
		select {
		case s := <-updates:
			return SleepTimerMsg{State: s}
		case <-done:
			return nil
		}
	}
}

// WatchStderr waits for the next captured stderr line.
func (m Model) WatchStderr() tea.Cmd {
	if m.stderr == nil {
		return nil
	}
	lines := m.stderr
	return func() tea.Msg {
		line, ok := <-lines
		if !ok {
			return nil
		}
		return StderrMsg(line)
	}
}

// OpenFileCmd resolves and selects path off the update loop; tag reading
// touches the disk.
func (m Model) OpenFileCmd(path string) tea.Cmd {
	sess := m.Session
	return func() tea.Msg {
		return OpenResultMsg{Path: path, Err: sess.Open(path)}
	}
}
