package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pinball/internal/config"
	"github.com/vovakirdan/tui-pinball/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [board]",
	Short: "Print high scores",
	Long: `Display the top high scores for a board.

Each difficulty keeps its own board. The board may be given by difficulty
(easy, normal, hard) or by ID (pinball, pinball_easy, pinball_hard).
Without an argument the normal board is shown.

Examples:
  pinball scores
  pinball scores hard
  pinball scores --all
  pinball scores easy --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Summarize every board")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every score on the board")
}

// resolveBoard accepts a difficulty name or a board ID.
func resolveBoard(arg string) (string, error) {
	for _, board := range config.ScoreBoards() {
		if arg == board {
			return board, nil
		}
	}
	preset, err := config.ParseDifficulty(arg)
	if err != nil {
		return "", fmt.Errorf("unknown board %q", arg)
	}
	return config.ScoreBoardID(preset), nil
}

func runScores(_ *cobra.Command, args []string) {
	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	board, err := resolveBoard(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresAll:
		err = printAllStats(store)
	case flagScoresClear:
		if err = store.ClearScores(board); err == nil {
			fmt.Printf("Cleared board %s.\n", board)
		}
	default:
		err = printBoard(store, board)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printBoard(store *storage.Store, board string) error {
	scores, err := store.TopScores(board, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", board)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pinball play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %-8s  %s\n", "Rank", "Player", "Score", "Ticks", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %-8s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-16s  %-10d  %-8d  %s\n", i+1, e.Player, e.Score, e.Ticks, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if best, err := store.HighScore(board); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	stats, err := store.AllStats()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	boards := make([]string, 0, len(stats))
	for b := range stats {
		boards = append(boards, b)
	}
	sort.Strings(boards)

	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %s\n", "Board", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-14s  %-6s  %-10s  %-10s  %s\n", "-----", "-----", "----", "-------", "-----------")
	for _, b := range boards {
		s := stats[b]
		fmt.Printf("  %-14s  %-6d  %-10d  %-10.1f  %s\n", b, s.GamesCount, s.HighScore, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
