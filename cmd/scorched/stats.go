package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-scorched/internal/achievements"
	"github.com/vovakirdan/tui-scorched/internal/storage"
)

var flagStatsTop int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show run history and achievements",
	Long: `Display your best runs, lifetime totals, and unlocked achievements.

Examples:
  scorched stats
  scorched stats --top 20
  scorched stats --db ./runs.db`,
	Run: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsTop, "top", 10, "Number of top runs to show")
}

func runStats(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagStatsTop)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Top Runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'scorched play' to start your first run!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-9s  %-7s  %-6s  %-7s  %s\n",
		"Rank", "Round", "Mode", "Diff", "Hits", "Tokens", "Date")
	fmt.Printf("  %-4s  %-6s  %-9s  %-7s  %-6s  %-7s  %s\n",
		"----", "-----", "----", "----", "----", "------", "----")

	// Print runs
	for i, r := range runs {
		dateStr := r.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-9s  %-7s  %-6d  %-7d  %s\n",
			i+1, r.BestRound, r.Mode, r.Difficulty, r.HitsOnEnemy, r.TokensEarned, dateStr)
	}

	// Lifetime totals
	lt, err := store.Lifetime()
	if err == nil {
		fmt.Println()
		fmt.Println("Lifetime")
		fmt.Printf("  Runs: %d  Rounds won: %d  Best round: %d\n", lt.Runs, lt.RoundsWon, lt.BestRound)
		fmt.Printf("  Shots: %d  Hits: %d  Direct hits: %d\n", lt.ShotsFired, lt.HitsOnEnemy, lt.DirectHits)
		fmt.Printf("  Damage dealt: %.0f  Tokens earned: %d\n", lt.DamageDealt, lt.TokensEarned)
	}

	// Achievements
	unlocked, err := store.Achievements()
	if err != nil {
		return
	}

	fmt.Println()
	fmt.Printf("Achievements (%d/%d)\n", len(unlocked), len(achievements.Catalog()))
	for _, a := range achievements.Catalog() {
		mark := " "
		when := ""
		if ts, ok := unlocked[a.ID]; ok {
			mark = "x"
			when = ts.Format("2006-01-02")
		}
		fmt.Printf("  [%s] %-16s %-36s %s\n", mark, a.Title, a.Description, when)
	}
}
