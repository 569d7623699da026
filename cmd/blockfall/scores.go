package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagBattles bool
	flagClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game, a summary of
every game when no game is given, or the most recent online battles with
--battles.

Examples:
  blockfall scores
  blockfall scores tetris
  blockfall scores tritris --clear
  blockfall scores --battles`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBattles, "battles", false, "Show recent online battles instead")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the game")
}

func runScores(_ *cobra.Command, args []string) error {
	if flagClear && len(args) == 0 {
		return fmt.Errorf("--clear needs a game id")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagBattles {
		return printBattles(store)
	}
	if len(args) == 0 {
		return printSummary(store)
	}

	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'blockfall list' to see available games)", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockfall play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %s\n", "Rank", "Score", "Lines", "Level", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-5s  %s\n", "----", "-----", "-----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %-6d  %-5d  %s\n",
			i+1, entry.Score, entry.Lines, entry.Level, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}

func printBattles(store *storage.Store) error {
	results, err := store.RecentVersus("", 10)
	if err != nil {
		return fmt.Errorf("retrieving battles: %w", err)
	}

	fmt.Println("Recent Battles")
	fmt.Println()
	if len(results) == 0 {
		fmt.Println("No battles recorded yet.")
		return nil
	}

	for _, r := range results {
		winner := r.Winner
		if winner == "" {
			winner = "-"
		}
		fmt.Printf("  %s  %-8s  %s (%d) vs %s (%d)  winner: %s  [%s, %ds]\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.GameID,
			r.Player1, r.Lines1, r.Player2, r.Lines2,
			winner, r.EndReason, r.Duration)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}

	fmt.Println("Summary")
	fmt.Println()
	if len(stats) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-14s  %-6s  %-10s  %-6s  %-9s  %s\n", "Game", "Games", "Best", "Lines", "Average", "Last played")
	for _, g := range registry.List() {
		st, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-14s  %-6d  %-10d  %-6d  %-9.0f  %s\n",
			g.ID, st.GamesCount, st.HighScore, st.BestLines, st.AvgScore,
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}
