// Package session is the view-model of the player screen: it owns the
// playback coordinator and the sleep timer for the lifetime of the screen.
package session

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/llehouerou/audiobook/internal/engine"
	"github.com/llehouerou/audiobook/internal/media"
	"github.com/llehouerou/audiobook/internal/playback"
	"github.com/llehouerou/audiobook/internal/sleeptimer"
)

// Preferences stores user choices that outlive the session.
type Preferences interface {
	SaveLastFolder(dir string)
	SaveSleepMinutes(minutes int)
	AddRecent(path string)
}

// Options configures a Session.
type Options struct {
	SkipInterval time.Duration
	PollInterval time.Duration
	Logger       *slog.Logger
	Preferences  Preferences // optional
}

// Session bundles the playback state and the sleep timer.
type Session struct {
	ID string

	player   *playback.Coordinator
	timer    *sleeptimer.Timer
	resolver *media.Resolver
	prefs    Preferences
	logger   *slog.Logger
}

// New creates a session driving eng. Close releases eng.
func New(eng engine.Interface, opts Options) *Session {
	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	logger = logger.With("session", id)

	player := playback.New(eng, playback.Options{
		SkipInterval: opts.SkipInterval,
		PollInterval: opts.PollInterval,
		Logger:       logger.With("component", "playback"),
	})

	return &Session{
		ID:       id,
		player:   player,
		timer:    sleeptimer.New(player, logger.With("component", "sleeptimer")),
		resolver: media.NewResolver(),
		prefs:    opts.Preferences,
		logger:   logger,
	}
}

// Open resolves path and selects it for playback. On error the current
// selection is left untouched.
func (s *Session) Open(path string) error {
	ref, err := s.resolver.Resolve(path)
	if err != nil {
		s.logger.Warn("cannot open media", "path", path, "err", err)
		return fmt.Errorf("open media: %w", err)
	}
	s.player.SelectMedia(ref)
	if s.prefs != nil {
		s.prefs.SaveLastFolder(filepath.Dir(ref.Path))
		s.prefs.AddRecent(ref.Path)
	}
	return nil
}

// Select selects an already resolved reference; nil clears the selection.
func (s *Session) Select(ref *media.Ref) {
	s.player.SelectMedia(ref)
}

// Clear stops playback and forgets the selected file.
func (s *Session) Clear() {
	s.player.SelectMedia(nil)
}

func (s *Session) PlayPause() { s.player.PlayPause() }

func (s *Session) SeekTo(pos time.Duration) { s.player.SeekTo(pos) }

func (s *Session) SkipForward() { s.player.SkipForward() }

func (s *Session) SkipBackward() { s.player.SkipBackward() }

// StartSleepTimer starts the sleep timer; non-positive minutes are ignored.
func (s *Session) StartSleepTimer(minutes int) {
	if minutes <= 0 {
		return
	}
	s.timer.Start(minutes)
	if s.prefs != nil {
		s.prefs.SaveSleepMinutes(minutes)
	}
}

// StartSleepTimerInput parses minutes typed by the user. Invalid input is ignored.
func (s *Session) StartSleepTimerInput(input string) bool {
	if !s.timer.StartFromInput(input) {
		return false
	}
	if s.prefs != nil {
		s.prefs.SaveSleepMinutes(s.timer.State().Remaining / 60)
	}
	return true
}

func (s *Session) CancelSleepTimer() { s.timer.Cancel() }

// Playback returns the current playback state.
func (s *Session) Playback() playback.State { return s.player.State() }

// SleepTimer returns the current sleep timer state.
func (s *Session) SleepTimer() sleeptimer.State { return s.timer.State() }

// Subscribe returns a playback event subscription.
func (s *Session) Subscribe() *playback.Subscription { return s.player.Subscribe() }

// TimerUpdates delivers sleep timer changes.
func (s *Session) TimerUpdates() <-chan sleeptimer.State { return s.timer.Updates() }

// Close ends the session: polling stops, the engine is released, then the
// sleep timer is cancelled.
func (s *Session) Close() error {
	err := s.player.Close()
	s.timer.Close()
	s.logger.Info("session closed")
	return err
}
