// Package app is the bubbletea model of the player screen.
package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/audiobook/internal/config"
	"github.com/llehouerou/audiobook/internal/keymap"
	"github.com/llehouerou/audiobook/internal/playback"
	"github.com/llehouerou/audiobook/internal/session"
	"github.com/llehouerou/audiobook/internal/sleeptimer"
	"github.com/llehouerou/audiobook/internal/state"
	"github.com/llehouerou/audiobook/internal/ui/prompt"
)

// Model is the root application model.
type Model struct {
	Session  *session.Session
	StateMgr state.Interface
	Config   *config.Config
	Keys     *keymap.Resolver
	Prompt   prompt.Model
	Playback playback.State
	Sleep    sleeptimer.State
	ShowHelp bool
	ErrorMsg string
	Width    int
	Height   int

	sub    *playback.Subscription
	stderr <-chan string
	logger *slog.Logger
}

// Options carries the optional collaborators of New.
type Options struct {
	// Stderr delivers lines written to fd 2 by C audio libraries.
	Stderr <-chan string
	Logger *slog.Logger
}

// New creates the application model over an open session.
func New(cfg *config.Config, sess *session.Session, stateMgr state.Interface, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return Model{
		Session:  sess,
		StateMgr: stateMgr,
		Config:   cfg,
		Keys:     keymap.Default(),
		Prompt:   prompt.New(),
		Playback: sess.Playback(),
		Sleep:    sess.SleepTimer(),
		sub:      sess.Subscribe(),
		stderr:   opts.Stderr,
		logger:   logger.With("component", "app"),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.WatchPlayback(),
		m.WatchSleepTimer(),
		m.WatchStderr(),
	)
}
