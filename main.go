package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/audiobook/internal/app"
	"github.com/llehouerou/audiobook/internal/config"
	"github.com/llehouerou/audiobook/internal/engine"
	"github.com/llehouerou/audiobook/internal/errmsg"
	"github.com/llehouerou/audiobook/internal/icons"
	"github.com/llehouerou/audiobook/internal/logging"
	"github.com/llehouerou/audiobook/internal/session"
	"github.com/llehouerou/audiobook/internal/state"
	"github.com/llehouerou/audiobook/internal/stderr"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "audiobook [file]",
	Short:         "Listen to audiobooks in the terminal",
	Long:          `audiobook plays a single mp3, m4b, m4a, flac or wav file with skip, seek and a sleep timer.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.config/audiobook/config.toml)")
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFrom(cfgFile)
	}
	return config.Load()
}

func run(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	icons.Init(cfg.Icons)

	logger, logFile, err := logging.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)

	// Capture before the speaker opens ALSA.
	var stderrLines <-chan string
	capture, err := stderr.Start()
	if err != nil {
		logger.Warn("stderr capture unavailable", "err", err)
	} else {
		defer capture.Stop()
		stderrLines = capture.Lines()
	}

	var prefs state.Interface
	stateMgr, err := state.Open()
	if err != nil {
		// Preferences are a convenience; play without them.
		logger.Error("open preferences", "err", err)
		prefs = state.NewMock()
	} else {
		prefs = stateMgr
	}
	defer prefs.Close()

	eng := engine.NewBeep(logger)
	eng.SetVolume(cfg.Volume)

	sess := session.New(eng, session.Options{
		SkipInterval: cfg.SkipInterval,
		PollInterval: cfg.PollInterval,
		Logger:       logger,
		Preferences:  prefs,
	})
	defer sess.Close()

	model := app.New(cfg, sess, prefs, app.Options{
		Stderr: stderrLines,
		Logger: logger,
	})
	if len(args) == 1 {
		if err := sess.Open(args[0]); err != nil {
			model.ErrorMsg = errmsg.FormatWith(errmsg.OpFileOpen, args[0], err)
		}
		model.Playback = sess.Playback()
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}
}
