// pinball is a terminal pinball table.
//
// Usage:
//
//	pinball play             - Play a game
//	pinball scores [board]   - Print high scores
//	pinball board            - Browse high scores interactively
//	pinball serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Physics ticks per second (default: from config)
//	--seed <value>     - Set RNG seed for reproducible launches
//	--db <path>        - Set database path (default: ~/.arcade/pinball.db)
//	--log-file <path>  - Where play writes its log (default: ~/.arcade/pinball.log)
//	--debug            - Log every collision and state change
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pinball",
	Short: "TUI Pinball - a pinball table in your terminal",
	Long: `TUI Pinball is a small pinball table for the terminal: two flippers,
a funnel, targets and bumpers, three balls per game.

Available commands:
  play     - Play a game
  scores   - Print high scores
  board    - Browse high scores interactively
  serve    - Start SSH server for remote play

Examples:
  pinball play
  pinball play --difficulty hard
  pinball play --spectate :8080
  pinball scores easy
  pinball serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Physics ticks per second (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.arcade/pinball.log", "Log file for play (\"-\" = stderr)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. A TUI owns the terminal, so play
// logs to a file; "-" or an empty path logs to stderr. The returned close
// function is never nil.
func newLogger(path, prefix string) (*log.Logger, func() error, error) {
	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if path != "" && path != "-" {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
