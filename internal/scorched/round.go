package scorched

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
)

// RoundCounters are per-round tallies reset at every round start. They feed
// lifetime stats and achievement progress without letting subscribers mutate
// core state.
type RoundCounters struct {
	ShotsFired  int
	Spawned     int
	HitsOnEnemy int
	DirectHits  int
	DamageDealt float64
	DamageTaken float64
	SelfHits    int
	TerrainHits int
}

// Round owns one duel: the terrain, both tanks, the live projectile set, the
// wind value and the turn state. It is created and driven exclusively by the
// Run orchestrator.
type Round struct {
	params  Params
	arsenal *Arsenal
	bus     *Bus
	logger  *log.Logger

	number  int
	terrain *Terrain
	wind    Wind
	player  *Tank
	enemy   *Tank

	projectiles []*Projectile

	phase    Phase
	shooter  Team
	outcome  Outcome
	resolved bool

	aiPolicy   Policy
	aiRng      *rand.Rand
	thinkLeft  int
	aiDecision *Decision

	counters RoundCounters
}

// roundSetup carries everything the orchestrator decides per round.
type roundSetup struct {
	number         int
	terrain        *Terrain
	wind           Wind
	player, enemy  *Tank
	initialShooter Team
	aiPolicy       Policy
}

// newRound wires a round from orchestrator-owned pieces and enters the
// initial shooter's aim phase.
func newRound(setup roundSetup, params Params, arsenal *Arsenal, bus *Bus, logger *log.Logger, rng *rand.Rand) *Round {
	r := &Round{
		params:   params,
		arsenal:  arsenal,
		bus:      bus,
		logger:   logger,
		number:   setup.number,
		terrain:  setup.terrain,
		wind:     setup.wind,
		player:   setup.player,
		enemy:    setup.enemy,
		shooter:  setup.initialShooter,
		aiPolicy: setup.aiPolicy,
		aiRng:    rng,
		phase:    aimPhaseFor(setup.initialShooter),
	}
	r.enterAim()
	return r
}

// Phase returns the current turn-machine phase.
func (r *Round) Phase() Phase { return r.phase }

// Outcome returns the round outcome, OutcomeNone while unresolved.
func (r *Round) Outcome() Outcome { return r.outcome }

// Resolved reports whether the round reached ROUND_RESOLVED.
func (r *Round) Resolved() bool { return r.resolved }

// Counters returns the per-round tallies.
func (r *Round) Counters() RoundCounters { return r.counters }

// setPhase transitions the turn machine, enforcing the allowed graph.
// An illegal edge is a core bug: it aborts the current tick with an
// InternalError event instead of corrupting the machine.
func (r *Round) setPhase(to Phase) bool {
	if !phaseEdgeAllowed(r.phase, to) {
		msg := fmt.Sprintf("illegal phase transition %s -> %s", r.phase, to)
		if r.logger != nil {
			r.logger.Error("turn machine", "error", msg)
		}
		r.bus.Emit(InternalError{Message: msg})
		return false
	}
	from := r.phase
	r.phase = to
	r.bus.Emit(PhaseChanged{From: from, To: to})
	return true
}

// enterAim runs the bookkeeping for entering the current shooter's aim phase:
// EMP countdown and, for the AI, the think window.
func (r *Round) enterAim() {
	tank := r.tankFor(r.shooter)
	if tank.EMPTurns > 0 {
		tank.EMPTurns--
		if tank.EMPTurns >= 0 && tank.CurrentWeapon != WeaponBasicShot {
			tank.CurrentWeapon = WeaponBasicShot
		}
	}
	if r.shooter == TeamEnemy {
		r.thinkLeft = r.params.ThinkTicks
		r.aiDecision = nil
	}
}

// tankFor maps a team to its tank.
func (r *Round) tankFor(team Team) *Tank {
	if team == TeamPlayer {
		return r.player
	}
	return r.enemy
}

// tanks returns both tanks in fixed player-first order.
func (r *Round) tanks() []*Tank {
	return []*Tank{r.player, r.enemy}
}

// SetPlayerAim applies angle and power, clamped to their legal ranges.
// Accepted only in PLAYER_AIM; non-finite input is rejected.
func (r *Round) SetPlayerAim(angle, power float64) error {
	if r.phase != PhasePlayerAim {
		return fmt.Errorf("%w: aim in %s", ErrIllegalPhase, r.phase)
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) || math.IsNaN(power) || math.IsInf(power, 0) {
		return fmt.Errorf("%w: non-finite aim (%v, %v)", ErrInvalidArgument, angle, power)
	}
	r.player.SetAngle(angle)
	r.player.SetPower(power)
	return nil
}

// SetPlayerWeapon selects the player's weapon. Accepted only in PLAYER_AIM.
func (r *Round) SetPlayerWeapon(id string) error {
	if r.phase != PhasePlayerAim {
		return fmt.Errorf("%w: weapon select in %s", ErrIllegalPhase, r.phase)
	}
	return r.player.SetWeapon(id)
}

// PlayerFire commits the player's shot. Accepted only in PLAYER_AIM and only
// with ammo in the current slot.
func (r *Round) PlayerFire() error {
	if r.phase != PhasePlayerAim {
		return fmt.Errorf("%w: fire in %s", ErrIllegalPhase, r.phase)
	}
	return r.fire(r.player)
}

// fire spends ammo, walks the aim→fire→flight edges and spawns the shell at
// the barrel tip.
func (r *Round) fire(tank *Tank) error {
	weaponID := tank.CurrentWeapon
	weapon, ok := r.arsenal.Lookup(weaponID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownWeapon, weaponID)
	}
	if !tank.ConsumeAmmo() {
		return fmt.Errorf("%w: %q", ErrNoAmmo, weaponID)
	}
	if !r.setPhase(firePhaseFor(tank.Team)) {
		return nil
	}

	r.bus.Emit(InventoryChanged{Team: tank.Team, WeaponID: weaponID, Count: tank.Inventory[weaponID]})
	r.bus.Emit(ShotFired{Team: tank.Team, WeaponID: weaponID, Angle: tank.Angle, Power: tank.Power})
	r.counters.ShotsFired++

	rad := tank.Angle * math.Pi / 180
	speed := tank.Power * r.params.PowerScale
	proj := newProjectile(tank.Team, weapon, tank.BarrelTip(), math.Cos(rad)*speed, -math.Sin(rad)*speed)
	r.spawn(proj)

	r.setPhase(PhaseProjectileFlight)
	return nil
}

// spawn adds a projectile to the live set.
func (r *Round) spawn(p *Projectile) {
	r.projectiles = append(r.projectiles, p)
	r.counters.Spawned++
	r.bus.Emit(ProjectileSpawned{Owner: p.Owner, WeaponID: p.Weapon.ID, X: p.X, Y: p.Y})
}

// Step advances the round by one fixed simulation tick. Ordering within the
// tick: falling tanks, AI think, projectile integration and collisions,
// then phase resolution.
func (r *Round) Step() {
	if r.resolved {
		return
	}

	r.stepFallingTanks()

	if r.phase == PhaseAIAim {
		r.stepAIThink()
	}

	if r.phase == PhaseProjectileFlight {
		r.stepProjectiles()
	}

	r.maybeResolve()
}

// stepFallingTanks integrates both tanks' falling substates and applies fall
// damage on landing.
func (r *Round) stepFallingTanks() {
	for _, tank := range r.tanks() {
		if !tank.Falling.Active {
			continue
		}
		landed, dist := tank.StepFalling()
		if !landed {
			continue
		}
		dmg := FallDamage(dist, r.params)
		if dmg <= 0 {
			continue
		}
		before := tank.Health
		actual, destroyedNow := tank.TakeDamage(dmg)
		if actual <= 0 {
			continue
		}
		r.bus.Emit(DamageDealt{
			Actual:       actual,
			TargetTeam:   tank.Team,
			HealthBefore: before,
			HealthAfter:  tank.Health,
			WeaponID:     "", // Fall damage carries no weapon
		})
		r.noteDamage(tank, actual, false, tank.Team)
		if destroyedNow && tank.Team == TeamEnemy {
			r.bus.Emit(EnemyDestroyed{Round: r.number})
		}
	}
}

// stepAIThink counts the think window down and commits the decision at its
// end. The decision itself is computed once, up front, from a snapshot; the
// window exists so the shell can animate aim convergence.
func (r *Round) stepAIThink() {
	if r.aiDecision == nil {
		decision := r.aiPolicy.Decide(r.snapshotForAI(), r.aiRng)
		r.aiDecision = &decision
	}
	if r.thinkLeft > 0 {
		r.thinkLeft--
		return
	}

	tank := r.enemy
	tank.SetAngle(r.aiDecision.Angle)
	tank.SetPower(r.aiDecision.Power)
	if err := tank.SetWeapon(r.aiDecision.WeaponID); err != nil {
		// Fall back to the always-available basic shot.
		tank.CurrentWeapon = WeaponBasicShot
	}
	if err := r.fire(tank); err != nil && r.logger != nil {
		r.logger.Warn("ai fire rejected", "error", err)
	}
}

// anyFalling reports whether either tank is mid-drop.
func (r *Round) anyFalling() bool {
	return r.player.Falling.Active || r.enemy.Falling.Active
}

// liveProjectiles counts shells still in the world.
func (r *Round) liveProjectiles() int {
	n := 0
	for _, p := range r.projectiles {
		if p.Live() {
			n++
		}
	}
	return n
}

// maybeResolve runs the resolution rules once the world has settled: no live
// projectiles and no tanks still falling.
func (r *Round) maybeResolve() {
	if r.resolved || r.phase != PhaseProjectileFlight {
		return
	}
	if r.liveProjectiles() > 0 || r.anyFalling() {
		return
	}

	playerDead := !r.player.Alive()
	enemyDead := !r.enemy.Alive()

	switch {
	case playerDead && enemyDead:
		r.bus.Emit(MutualDestruction{Round: r.number})
		r.finish(OutcomeLoss)
	case playerDead:
		r.bus.Emit(RoundLost{Round: r.number})
		r.finish(OutcomeLoss)
	case enemyDead:
		r.bus.Emit(RoundWon{Round: r.number})
		r.finish(OutcomeWin)
	default:
		r.shooter = r.shooter.Other()
		if r.setPhase(aimPhaseFor(r.shooter)) {
			r.enterAim()
		}
	}
}

// finish moves to ROUND_RESOLVED and emits the outcome.
func (r *Round) finish(outcome Outcome) {
	r.outcome = outcome
	r.resolved = true
	r.projectiles = nil
	r.setPhase(PhaseRoundResolved)
	r.bus.Emit(RoundResolved{Round: r.number, Outcome: outcome})
}

// noteDamage updates round counters for one damage application.
func (r *Round) noteDamage(target *Tank, actual float64, direct bool, source Team) {
	if target.Team == TeamPlayer {
		r.counters.DamageTaken += actual
		r.bus.Emit(PlayerDamaged{Amount: actual})
	}
	if source == TeamPlayer && target.Team == TeamEnemy {
		r.counters.HitsOnEnemy++
		r.counters.DamageDealt += actual
		if direct {
			r.counters.DirectHits++
		}
	}
	if source == target.Team {
		r.counters.SelfHits++
		r.bus.Emit(SelfDamage{Team: target.Team, Amount: actual})
	}
}
