// scorched is a TUI artillery duel played in the terminal.
//
// Usage:
//
//	scorched list              - List available game modes
//	scorched play [mode]       - Play a mode (default: endless)
//	scorched menu              - Start menu to pick modes interactively
//	scorched serve             - Start SSH server for remote play
//	scorched stats             - Show run history and achievements
//	scorched simulate          - Run headless AI battles for balance checks
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.scorched/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import game modes to register them
	_ "github.com/vovakirdan/tui-scorched/internal/games/scorched"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scorched",
	Short: "Scorched Earth - Artillery duels in your terminal",
	Long: `Scorched Earth is a terminal artillery game. Trade shots with an AI
gunner across destructible terrain, survive as many rounds as you can,
and spend your winnings on bigger guns between rounds.

Available commands:
  list      - Show all available game modes
  play      - Play a mode directly
  menu      - Interactive mode picker menu
  serve     - Start SSH server for remote play
  stats     - View run history and achievements
  simulate  - Run headless AI battles

Examples:
  scorched play
  scorched play campaign --difficulty hard
  scorched menu
  scorched serve --ssh :2222
  scorched stats`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.scorched/runs.db", "Path to runs database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simulateCmd)
}
