package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	sim "github.com/vovakirdan/tui-scorched/internal/scorched"
)

var (
	flagSimGames      int
	flagSimDifficulty string
	flagSimPlayer     string
	flagSimVerbose    bool
)

// Safety cap so a stalled battle cannot hang the batch.
const simMaxTicks = 500_000

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless AI battles",
	Long: `Pit one AI policy against another without a terminal UI.

The player's seat is driven by an AI policy, so whole runs play out
at full speed. Useful for balance checks after tuning weapons,
damage, or AI parameters.

Examples:
  scorched simulate
  scorched simulate --games 100 --difficulty hard
  scorched simulate --games 50 --player easy --difficulty hard
  scorched simulate --seed 42 --verbose`,
	Run: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimGames, "games", 10, "Number of runs to simulate")
	simulateCmd.Flags().StringVar(&flagSimDifficulty, "difficulty", "medium", "Enemy AI difficulty: easy, medium, hard")
	simulateCmd.Flags().StringVar(&flagSimPlayer, "player", "hard", "Policy driving the player's seat")
	simulateCmd.Flags().BoolVar(&flagSimVerbose, "verbose", false, "Log every simulated run")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "simulate",
	})

	diff, err := sim.ParseDifficulty(flagSimDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	playerDiff, err := sim.ParseDifficulty(flagSimPlayer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Info("starting batch",
		"games", flagSimGames,
		"enemy", diff.String(),
		"player", playerDiff.String(),
		"seed", seed,
	)

	var (
		totalRounds int
		totalShots  int
		totalHits   int
		bestRound   int
	)

	for i := 0; i < flagSimGames; i++ {
		stats := simulateRun(seed+int64(i), diff, playerDiff)

		totalRounds += stats.BestRound
		totalShots += stats.ShotsFired
		totalHits += stats.HitsOnEnemy
		if stats.BestRound > bestRound {
			bestRound = stats.BestRound
		}

		if flagSimVerbose {
			logger.Info("run finished",
				"game", i+1,
				"best_round", stats.BestRound,
				"rounds_won", stats.RoundsWon,
				"shots", stats.ShotsFired,
				"hits", stats.HitsOnEnemy,
				"damage", fmt.Sprintf("%.0f", stats.DamageDealt),
			)
		}
	}

	accuracy := 0.0
	if totalShots > 0 {
		accuracy = float64(totalHits) / float64(totalShots) * 100
	}

	logger.Info("batch complete",
		"games", flagSimGames,
		"avg_round", fmt.Sprintf("%.1f", float64(totalRounds)/float64(flagSimGames)),
		"best_round", bestRound,
		"player_accuracy", fmt.Sprintf("%.0f%%", accuracy),
	)
}

// simulateRun plays a full run with the player's seat driven by a policy.
func simulateRun(seed int64, enemy, player sim.Difficulty) sim.LifetimeStats {
	run := sim.NewRun(sim.RunConfig{
		Seed:       seed,
		Difficulty: enemy,
		Arsenal:    sim.StandardArsenal(),
	})

	policy := sim.PolicyFor(player)
	rng := rand.New(rand.NewSource(seed ^ 0x5ca1ab1e))
	dtMs := 1000.0 / float64(run.Snapshot().Params.TickRate)

	for tick := 0; tick < simMaxTicks && !run.Over(); tick++ {
		if run.BetweenRounds() {
			if err := run.StartRound(); err != nil {
				break
			}
			continue
		}

		snap := run.Snapshot()
		if snap.Phase == sim.PhasePlayerAim {
			dec := policy.Decide(snap, rng)
			if dec.WeaponID != "" {
				//nolint:errcheck // Falls back to the current weapon
				run.SetPlayerWeapon(dec.WeaponID)
			}
			//nolint:errcheck // Aim phase is guaranteed by the snapshot check
			run.SetPlayerAim(dec.Angle, dec.Power)
			//nolint:errcheck
			run.PlayerFire()
		}

		run.Step(dtMs)
	}

	return run.Stats()
}
