// Package scorched adapts the artillery simulation to the platform's Game
// interface: it maps input actions onto the run, steps the fixed-tick core,
// and renders the world into the screen buffer.
package scorched

import (
	"github.com/vovakirdan/tui-scorched/internal/config"
	"github.com/vovakirdan/tui-scorched/internal/core"
	"github.com/vovakirdan/tui-scorched/internal/registry"
	sim "github.com/vovakirdan/tui-scorched/internal/scorched"
)

// Aim adjustment per tick while a key repeats.
const (
	AngleStep = 0.8
	PowerStep = 0.6
)

// How long HUD notices stay up, in ticks.
const noticeTicks = 120

// GameMode represents the game mode.
type GameMode int

const (
	ModeEndless  GameMode = iota // Endless ladder of harder rounds
	ModeCampaign                 // Fixed level list from config
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	p := config.DifficultyPreset(preset)
	if p.Valid() {
		difficultyPreset = p
	} else {
		difficultyPreset = ""
	}
}

// Game implements the artillery game on top of the simulation core.
type Game struct {
	mode GameMode

	runtime core.RuntimeConfig
	cfg     config.ScorchedConfig
	arsenal *sim.Arsenal
	run     *sim.Run

	paused bool

	// Shop state, live only between rounds.
	shopIndex int
	shopItems []sim.Weapon

	// Transient HUD message (purchase errors, unlock toasts).
	notice     string
	noticeLeft int
}

// New creates the endless-mode game.
func New() *Game {
	return &Game{mode: ModeEndless}
}

// NewCampaign creates the campaign-mode game.
func NewCampaign() *Game {
	return &Game{mode: ModeCampaign}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeCampaign {
		return "campaign"
	}
	return "scorched"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeCampaign {
		return "Scorched Earth (Campaign)"
	}
	return "Scorched Earth"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadScorched(configPath)
	if err != nil || cfg.World.Width <= 0 {
		cfg = config.DefaultScorchedConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}

	g.cfg = cfg
	g.arsenal = sim.StandardArsenal()

	diff, err := sim.ParseDifficulty(cfg.AI.Tier)
	if err != nil {
		diff = sim.DifficultyMedium
	}

	runCfg := sim.RunConfig{
		Seed:       runtime.Seed,
		Difficulty: diff,
		Params:     paramsFromConfig(cfg),
		Arsenal:    g.arsenal,
	}
	if g.mode == ModeCampaign {
		runCfg.Mode = sim.ModeLevel
		runCfg.Levels = levelsFromConfig(cfg, diff)
	}

	g.run = sim.NewRun(runCfg)
	g.paused = false
	g.shopIndex = 0
	g.shopItems = purchasable(g.arsenal)
	g.notice = ""
	g.noticeLeft = 0
}

// Run exposes the underlying simulation so the platform can attach event
// subscribers and read final stats.
func (g *Game) Run() *sim.Run {
	return g.run
}

// Notify puts a transient message on the HUD.
func (g *Game) Notify(msg string) {
	g.notice = msg
	g.noticeLeft = noticeTicks
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.run == nil {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.run.Over() {
		g.paused = !g.paused
	}
	if g.paused || g.run.Over() {
		return core.StepResult{State: g.State()}
	}

	if g.noticeLeft > 0 {
		g.noticeLeft--
	}

	if g.run.BetweenRounds() {
		g.stepShop(in)
		return core.StepResult{State: g.State()}
	}

	g.applyAimInput(in)
	g.run.Step(1000 / float64(g.cfg.World.TickRate))

	return core.StepResult{State: g.State()}
}

// stepShop handles the armory between rounds. The simulation is not stepped
// here; the world stands still until the next round starts.
func (g *Game) stepShop(in core.InputFrame) {
	if in.Has(core.ActionConfirm) {
		if err := g.run.StartRound(); err != nil {
			g.Notify(err.Error())
		}
		return
	}
	if len(g.shopItems) == 0 {
		return
	}
	if in.Has(core.ActionNextWeapon) {
		g.shopIndex = (g.shopIndex + 1) % len(g.shopItems)
	}
	if in.Has(core.ActionPrevWeapon) {
		g.shopIndex = (g.shopIndex + len(g.shopItems) - 1) % len(g.shopItems)
	}
	if in.Has(core.ActionFire) {
		item := g.shopItems[g.shopIndex]
		if err := g.run.BuyWeapon(item.ID); err != nil {
			g.Notify(err.Error())
		} else {
			g.Notify("bought " + item.Name)
		}
	}
}

// applyAimInput forwards aim, weapon and fire intents to the round. The core
// rejects anything sent outside the player's aim phase; those errors are not
// worth a notice.
func (g *Game) applyAimInput(in core.InputFrame) {
	snap := g.run.Snapshot()
	if snap.Phase != sim.PhasePlayerAim {
		return
	}
	tank, ok := snap.Tank(sim.TeamPlayer)
	if !ok {
		return
	}

	angle, power := tank.Angle, tank.Power
	if in.Has(core.ActionAngleLeft) {
		angle += AngleStep
	}
	if in.Has(core.ActionAngleRight) {
		angle -= AngleStep
	}
	if in.Has(core.ActionPowerUp) {
		power += PowerStep
	}
	if in.Has(core.ActionPowerDown) {
		power -= PowerStep
	}
	if angle != tank.Angle || power != tank.Power {
		g.run.SetPlayerAim(angle, power)
	}

	if in.Has(core.ActionNextWeapon) {
		g.cycleWeapon(snap, tank.Weapon, 1)
	}
	if in.Has(core.ActionPrevWeapon) {
		g.cycleWeapon(snap, tank.Weapon, -1)
	}

	if in.Has(core.ActionFire) {
		g.run.PlayerFire()
	}
}

// cycleWeapon moves the player's selection through the weapons they have
// ammo for, in catalog order, wrapping at the ends.
func (g *Game) cycleWeapon(snap sim.Snapshot, current string, dir int) {
	var avail []string
	for _, w := range g.arsenal.List() {
		if snap.Inventory[w.ID] != 0 {
			avail = append(avail, w.ID)
		}
	}
	if len(avail) < 2 {
		return
	}

	idx := 0
	for i, id := range avail {
		if id == current {
			idx = i
			break
		}
	}
	next := avail[(idx+dir+len(avail))%len(avail)]
	g.run.SetPlayerWeapon(next)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.run == nil {
		return core.GameState{}
	}

	best := g.run.Stats().BestRound
	if n := g.run.RoundNumber(); n > best {
		best = n
	}
	return core.GameState{
		Score:    best,
		GameOver: g.run.Over(),
		Paused:   g.paused,
	}
}

// purchasable returns the shop inventory in catalog order.
func purchasable(a *sim.Arsenal) []sim.Weapon {
	var items []sim.Weapon
	for _, w := range a.List() {
		if w.Cost > 0 {
			items = append(items, w)
		}
	}
	return items
}

// paramsFromConfig maps the YAML config onto simulation parameters.
func paramsFromConfig(cfg config.ScorchedConfig) sim.Params {
	return sim.Params{
		PlayW:    cfg.World.Width,
		PlayH:    cfg.World.Height,
		TickRate: cfg.World.TickRate,

		Gravity:      cfg.Physics.Gravity,
		WindCoupling: cfg.Physics.WindCoupling,
		MaxVelocity:  cfg.Physics.MaxVelocity,
		PowerScale:   cfg.Physics.PowerScale,
		MaxTrail:     cfg.Physics.MaxTrail,
		SplitSpread:  cfg.Physics.SplitSpread,

		DirectHitRadius:     cfg.Damage.DirectHitRadius,
		DirectHitMultiplier: cfg.Damage.DirectHitMultiplier,

		TankWidth:     cfg.Tank.Width,
		TankHeight:    cfg.Tank.Height,
		BarrelLength:  cfg.Tank.BarrelLength,
		FallGravity:   cfg.Tank.FallGravity,
		MaxFallSpeed:  cfg.Tank.MaxFallSpeed,
		FallNoDamage:  cfg.Tank.FallNoDamage,
		FallLethal:    cfg.Tank.FallLethal,
		FallDamageMin: cfg.Tank.FallDamageMin,
		FallDamageMax: cfg.Tank.FallDamageMax,

		TerrainMinPct:   cfg.Terrain.MinHeightPct,
		TerrainMaxPct:   cfg.Terrain.MaxHeightPct,
		Roughness:       cfg.Terrain.Roughness,
		SettleThreshold: cfg.Terrain.SettleThreshold,
		SettleStep:      cfg.Terrain.SettleStep,
		SettleMaxIter:   cfg.Terrain.SettleMaxIter,

		RollClimbLimit:  cfg.Modes.RollClimbLimit,
		RollMaxSteps:    cfg.Modes.RollMaxSteps,
		RollMinMomentum: cfg.Modes.RollMinMomentum,
		DigSpeed:        cfg.Modes.DigSpeed,

		MinTankDistance: cfg.Placement.MinTankDistance,
		ValleyThreshold: cfg.Placement.ValleyThreshold,
		UIMarginLeft:    cfg.Placement.UIMarginLeft,
		UIMarginRight:   cfg.Placement.UIMarginRight,

		ThinkTicks:      cfg.AI.ThinkTicks,
		ImpactTolerance: cfg.AI.ImpactTolerance,
		AIIterationCap:  cfg.AI.IterationCap,
	}
}

// levelsFromConfig converts the YAML level list, falling back to a short
// built-in campaign when the config defines none.
func levelsFromConfig(cfg config.ScorchedConfig, fallback sim.Difficulty) []sim.LevelConfig {
	if len(cfg.Levels) == 0 {
		return []sim.LevelConfig{
			{PlayerHealth: 100, EnemyHealth: 100, WindRange: 1, Difficulty: sim.DifficultyEasy},
			{PlayerHealth: 100, EnemyHealth: 140, WindRange: 3, Difficulty: sim.DifficultyMedium},
			{PlayerHealth: 100, EnemyHealth: 200, WindRange: 6, Difficulty: sim.DifficultyHard},
		}
	}

	levels := make([]sim.LevelConfig, 0, len(cfg.Levels))
	for _, spec := range cfg.Levels {
		diff, err := sim.ParseDifficulty(spec.Difficulty)
		if err != nil {
			diff = fallback
		}
		levels = append(levels, sim.LevelConfig{
			PlayerHealth: spec.PlayerHealth,
			EnemyHealth:  spec.EnemyHealth,
			WindRange:    spec.WindRange,
			Roughness:    spec.Roughness,
			Difficulty:   diff,
		})
	}
	return levels
}

// Register the game modes with the registry
func init() {
	registry.Register("scorched", func() registry.Game {
		return New()
	})
	registry.Register("campaign", func() registry.Game {
		return NewCampaign()
	})
}
