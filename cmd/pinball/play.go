package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/core"
	"github.com/vovakirdan/tui-pinball/internal/pinball"
	"github.com/vovakirdan/tui-pinball/internal/platform/tui"
	"github.com/vovakirdan/tui-pinball/internal/spectate"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagSpectate   string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of pinball.

Controls:
  Left/A       - Left flipper
  Right/D      - Right flipper
  Space        - Start a game / serve the next ball
  Mouse click  - Kick the ball in play
  R            - Reset to the start screen
  Ctrl+S       - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Five balls, weaker gravity, longer flippers
  normal - The table as configured
  hard   - Two balls, stronger gravity, slower flippers
  fixed  - The table as configured, scored on the normal board

Examples:
  pinball play
  pinball play --difficulty easy
  pinball play --config ./my-table.yaml
  pinball play --spectate :8080 --debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom table config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address (e.g. :8080)")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name stored with high scores (default: $USER)")
}

// loadTable reads the table config and applies the difficulty preset.
func loadTable() (config.PinballConfig, config.DifficultyPreset, error) {
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.PinballConfig{}, "", err
	}
	cfg, err := config.LoadPinball(flagConfig)
	if err != nil {
		return config.PinballConfig{}, "", err
	}
	config.ApplyPinballPreset(&cfg, preset)
	return cfg, preset, nil
}

// terminalSize returns the terminal size, or 80x24 when stdout is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

func runPlay(cmd *cobra.Command, _ []string) {
	table, preset, err := loadTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(flagLogFile, "pinball")
	if err != nil {
		// stderr belongs to the TUI, so play on without a log
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger, closeLog = log.New(io.Discard), func() error { return nil }
	}
	defer closeLog() //nolint:errcheck

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	player := flagPlayer
	if player == "" {
		player = os.Getenv("USER")
	}

	width, height := terminalSize()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := tui.Options{
		Context: ctx,
		Table:   table,
		Preset:  preset,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
			Player:   player,
		},
		Store:  store,
		Logger: logger,
	}

	logger.Info("game session starting", "difficulty", preset, "board", config.ScoreBoardID(preset), "player", player)

	runErr := tui.Run(opts, func(sim *pinball.Simulation) {
		if flagSpectate == "" {
			return
		}
		feed := spectate.NewServer(sim, spectate.Config{
			Interval: table.Timing.RenderPeriod(),
			Logger:   logger.WithPrefix("spectate"),
		})
		go func() {
			if err := feed.ListenAndServe(ctx, flagSpectate); err != nil {
				logger.Error("spectator feed stopped", "addr", flagSpectate, "err", err)
			}
		}()
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		stop()
		closeLog() //nolint:errcheck
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
