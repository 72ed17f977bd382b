package scorched

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Mode selects between the endless ladder and fixed level configs.
type Mode int

const (
	ModeEndless Mode = iota
	ModeLevel
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeLevel {
		return "level"
	}
	return "endless"
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "endless", "":
		return ModeEndless, nil
	case "level":
		return ModeLevel, nil
	default:
		return ModeEndless, fmt.Errorf("%w: mode %q", ErrInvalidArgument, s)
	}
}

// LevelConfig overrides the endless schedules for one level.
type LevelConfig struct {
	PlayerHealth float64
	EnemyHealth  float64
	WindRange    float64
	Roughness    float64
	Difficulty   Difficulty
}

// RunConfig is everything the shell decides when starting a run.
type RunConfig struct {
	Seed           int64
	Difficulty     Difficulty
	Mode           Mode
	Levels         []LevelConfig // Required for ModeLevel
	InitialShooter Team          // Who aims first in round 1; alternates by parity
	Params         Params        // Zero value falls back to DefaultParams
	Arsenal        *Arsenal      // nil falls back to StandardArsenal
	Logger         *log.Logger   // nil disables core logging
}

// Run is the orchestrator: it owns the rounds, the retained player inventory,
// the token balance, and the lifetime stats. Permadeath semantics live here:
// the run ends the moment a round resolves as a loss.
type Run struct {
	cfg     RunConfig
	params  Params
	arsenal *Arsenal
	bus     *Bus
	logger  *log.Logger
	rng     *rand.Rand

	roundNumber int
	round       *Round
	roundDone   bool // Current round's outcome already folded into the run

	inventory map[string]int
	tokens    int
	stats     LifetimeStats
	over      bool

	accumMs float64
}

// NewRun builds a run and emits RunStart. Call StartRound to begin playing.
func NewRun(cfg RunConfig) *Run {
	if cfg.Params.PlayW == 0 {
		cfg.Params = DefaultParams()
	}
	if cfg.Arsenal == nil {
		cfg.Arsenal = StandardArsenal()
	}

	r := &Run{
		cfg:         cfg,
		params:      cfg.Params,
		arsenal:     cfg.Arsenal,
		bus:         NewBus(cfg.Logger),
		logger:      cfg.Logger,
		rng:         rand.New(rand.NewSource(cfg.Seed)),
		roundNumber: 1,
		inventory:   map[string]int{WeaponBasicShot: AmmoInfinite},
	}
	r.bus.Emit(RunStart{Seed: cfg.Seed, Difficulty: cfg.Difficulty})
	return r
}

// Bus exposes the event bus for subscriber registration.
func (r *Run) Bus() *Bus { return r.bus }

// Seed returns the seed the run was created with.
func (r *Run) Seed() int64 { return r.cfg.Seed }

// Difficulty returns the run's AI difficulty.
func (r *Run) Difficulty() Difficulty { return r.cfg.Difficulty }

// Mode returns the run's mode.
func (r *Run) Mode() Mode { return r.cfg.Mode }

// Over reports whether the run reached GAME_OVER.
func (r *Run) Over() bool { return r.over }

// RoundNumber returns the current (or next pending) round number.
func (r *Run) RoundNumber() int { return r.roundNumber }

// Tokens returns the player's token balance.
func (r *Run) Tokens() int { return r.tokens }

// Stats returns the lifetime stats accumulated so far.
func (r *Run) Stats() LifetimeStats { return r.stats }

// BetweenRounds reports whether the shop window is open: before the first
// round or after a resolved one, while the run is still alive.
func (r *Run) BetweenRounds() bool {
	return !r.over && (r.round == nil || r.round.Resolved())
}

// StartRound generates terrain, places the tanks, rolls the wind and opens
// the initial shooter's aim phase. Legal only between rounds.
func (r *Run) StartRound() error {
	if r.over {
		return ErrRunOver
	}
	if r.round != nil && !r.round.Resolved() {
		return fmt.Errorf("%w: round %d still in progress", ErrIllegalPhase, r.roundNumber)
	}

	level := r.levelFor(r.roundNumber)

	terrain, err := GenerateTerrain(r.params.PlayW, r.params.PlayH, TerrainOpts{
		Seed:      r.rng.Int63(),
		Roughness: level.Roughness,
		MinPct:    r.params.TerrainMinPct,
		MaxPct:    r.params.TerrainMaxPct,
	})
	if err != nil {
		return err
	}

	player := NewTank(TeamPlayer, level.PlayerHealth, r.arsenal, r.params)
	player.Inventory = r.inventory // Retained across rounds within the run
	if r.inventory[player.CurrentWeapon] == 0 {
		player.CurrentWeapon = WeaponBasicShot
	}
	enemy := NewTank(TeamEnemy, level.EnemyHealth, r.arsenal, r.params)
	enemy.Inventory[WeaponRoller] = 2
	enemy.Inventory[WeaponMIRV] = 1

	r.placeTanks(terrain, player, enemy)

	wind := NewWind(r.rng, level.WindRange, r.params.WindCoupling)

	shooter := r.cfg.InitialShooter
	if r.roundNumber%2 == 0 {
		shooter = shooter.Other()
	}

	r.round = newRound(roundSetup{
		number:         r.roundNumber,
		terrain:        terrain,
		wind:           wind,
		player:         player,
		enemy:          enemy,
		initialShooter: shooter,
		aiPolicy:       PolicyFor(level.Difficulty),
	}, r.params, r.arsenal, r.bus, r.logger, r.rng)
	r.roundDone = false

	r.bus.Emit(RoundStart{Round: r.roundNumber, Wind: wind.Value()})
	return nil
}

// levelFor resolves the per-round knobs: a fixed level config in level mode,
// monotone schedules in endless mode.
func (r *Run) levelFor(round int) LevelConfig {
	if r.cfg.Mode == ModeLevel && len(r.cfg.Levels) > 0 {
		idx := round - 1
		if idx >= len(r.cfg.Levels) {
			idx = len(r.cfg.Levels) - 1
		}
		lvl := r.cfg.Levels[idx]
		if lvl.Roughness == 0 {
			lvl.Roughness = r.params.Roughness
		}
		return lvl
	}
	return LevelConfig{
		PlayerHealth: 100,
		EnemyHealth:  math.Min(100+12*float64(round-1), 240),
		WindRange:    math.Min(1+0.6*float64(round-1), 8),
		Roughness:    r.params.Roughness,
		Difficulty:   r.cfg.Difficulty,
	}
}

// placeTanks puts each tank on the highest non-valley column of its side
// band, clear of the UI margins, and enforces the minimum separation.
func (r *Run) placeTanks(terrain *Terrain, player, enemy *Tank) {
	w := float64(r.params.PlayW)

	px := bestSpot(terrain, math.Max(0.15*w, r.params.UIMarginLeft), 0.25*w, r.params.ValleyThreshold)
	ex := bestSpot(terrain, 0.75*w, math.Min(0.85*w, w-r.params.UIMarginRight), r.params.ValleyThreshold)

	if ex-px < r.params.MinTankDistance {
		ex = math.Min(px+r.params.MinTankDistance, w-r.params.UIMarginRight)
	}

	player.X = px
	player.Y = terrain.SurfaceY(px)
	enemy.X = ex
	enemy.Y = terrain.SurfaceY(ex)
}

// bestSpot returns the x of the highest column in [lo, hi] that is not a
// deep valley (lower than the window mean by more than valleyThreshold).
func bestSpot(terrain *Terrain, lo, hi, valleyThreshold float64) float64 {
	x0, x1 := int(lo), int(hi)
	if x1 <= x0 {
		return lo
	}

	mean := 0.0
	for x := x0; x <= x1; x++ {
		mean += terrain.HeightAt(float64(x))
	}
	mean /= float64(x1 - x0 + 1)

	bestX := -1
	bestH := math.Inf(-1)
	for x := x0; x <= x1; x++ {
		h := terrain.HeightAt(float64(x))
		if h < mean-valleyThreshold {
			continue
		}
		if h > bestH {
			bestH = h
			bestX = x
		}
	}
	if bestX < 0 {
		bestX = (x0 + x1) / 2
	}
	return float64(bestX)
}

// Step advances the simulation by dtMs of wall time, consuming whole fixed
// ticks from the accumulator. The core never throws across Step.
func (r *Run) Step(dtMs float64) {
	if r.over || r.round == nil {
		return
	}
	if math.IsNaN(dtMs) || math.IsInf(dtMs, 0) || dtMs < 0 {
		return
	}

	tickMs := 1000 / float64(r.params.TickRate)
	r.accumMs += dtMs

	// Cap catch-up so a stalled shell can't freeze us in a spiral.
	const maxTicksPerStep = 10
	ticks := 0
	for r.accumMs >= tickMs && ticks < maxTicksPerStep {
		r.accumMs -= tickMs
		ticks++
		r.round.Step()
		if r.round.Resolved() {
			r.handleRoundEnd()
			break
		}
	}
	if ticks == maxTicksPerStep {
		r.accumMs = 0
	}
}

// handleRoundEnd folds the round outcome into run state exactly once:
// win advances the ladder and pays out, loss is permadeath.
func (r *Run) handleRoundEnd() {
	if r.roundDone {
		return
	}
	r.roundDone = true
	r.stats.absorb(r.round.Counters())

	switch r.round.Outcome() {
	case OutcomeWin:
		r.stats.RoundsWon++
		if r.roundNumber > r.stats.BestRound {
			r.stats.BestRound = r.roundNumber
		}
		award := 50 + 15*r.roundNumber
		r.tokens += award
		r.stats.TokensEarned += award
		r.bus.Emit(MoneyEarned{Amount: award, Balance: r.tokens})
		r.roundNumber++
	case OutcomeLoss:
		if r.roundNumber > r.stats.BestRound {
			r.stats.BestRound = r.roundNumber
		}
		r.over = true
	}
}

// SetPlayerAim forwards to the active round.
func (r *Run) SetPlayerAim(angle, power float64) error {
	if r.over || r.round == nil {
		return ErrRunOver
	}
	return r.round.SetPlayerAim(angle, power)
}

// SetPlayerWeapon forwards to the active round.
func (r *Run) SetPlayerWeapon(id string) error {
	if r.over || r.round == nil {
		return ErrRunOver
	}
	return r.round.SetPlayerWeapon(id)
}

// PlayerFire forwards to the active round.
func (r *Run) PlayerFire() error {
	if r.over || r.round == nil {
		return ErrRunOver
	}
	return r.round.PlayerFire()
}

// BuyWeapon spends tokens on one unit of a purchasable weapon. Legal only
// between rounds, while the step loop is stopped.
func (r *Run) BuyWeapon(id string) error {
	if !r.BetweenRounds() {
		return fmt.Errorf("%w: shop is closed mid-round", ErrIllegalPhase)
	}
	w, ok := r.arsenal.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWeapon, id)
	}
	if w.Cost <= 0 {
		return fmt.Errorf("%w: %q is not purchasable", ErrInvalidArgument, id)
	}
	if r.tokens < w.Cost {
		return fmt.Errorf("%w: %d tokens for %q, have %d", ErrInvalidArgument, w.Cost, id, r.tokens)
	}
	r.tokens -= w.Cost
	r.inventory[id]++
	r.bus.Emit(InventoryChanged{Team: TeamPlayer, WeaponID: id, Count: r.inventory[id]})
	return nil
}

// QuitRun ends the run immediately, finalizing stats.
func (r *Run) QuitRun() {
	if r.over {
		return
	}
	if r.roundNumber > r.stats.BestRound {
		r.stats.BestRound = r.roundNumber
	}
	r.over = true
}

// Snapshot returns the queryable state of the run.
func (r *Run) Snapshot() Snapshot {
	var snap Snapshot
	if r.round != nil {
		snap = r.round.snapshot()
	} else {
		snap.Phase = PhaseRoundResolved
		snap.PlayW = r.params.PlayW
		snap.PlayH = r.params.PlayH
		snap.Params = r.params
		snap.WeaponDamage = r.arsenal.damageTable()
	}
	snap.Round = r.roundNumber
	snap.Over = r.over
	snap.Tokens = r.tokens
	snap.Inventory = make(map[string]int, len(r.inventory))
	for id, count := range r.inventory {
		snap.Inventory[id] = count
	}
	return snap
}
