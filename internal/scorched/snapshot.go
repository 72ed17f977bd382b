package scorched

// TankSnapshot is the read-only view of one tank.
type TankSnapshot struct {
	Team      Team
	X, Y      float64
	Angle     float64
	Power     float64
	Health    float64
	MaxHealth float64
	Falling   bool
	Weapon    string
	EMPTurns  int
}

// ProjectileSnapshot is the read-only view of one live shell.
type ProjectileSnapshot struct {
	Owner    Team
	WeaponID string
	X, Y     float64
	VX, VY   float64
	Mode     ProjectileMode
	Trail    []Point
}

// Snapshot is the complete queryable state of the run: what the shell renders
// and what AI policies reason over. Everything inside is a copy; mutating a
// snapshot never touches the simulation.
type Snapshot struct {
	Phase   Phase
	Round   int
	Shooter Team
	Outcome Outcome
	Over    bool

	Wind      float64
	WindForce float64

	PlayW, PlayH int
	Terrain      []float64

	Tanks       []TankSnapshot
	Projectiles []ProjectileSnapshot

	Inventory    map[string]int
	WeaponDamage map[string]float64 // Base damage by weapon id, from the run's arsenal
	Tokens       int

	Params Params
}

// Tank returns the snapshot entry for a team.
func (s Snapshot) Tank(team Team) (TankSnapshot, bool) {
	for _, t := range s.Tanks {
		if t.Team == team {
			return t, true
		}
	}
	return TankSnapshot{}, false
}

// TerrainHeightAt samples the terrain view with edge clamping, matching
// Terrain.HeightAt semantics.
func (s Snapshot) TerrainHeightAt(x int) float64 {
	if len(s.Terrain) == 0 {
		return 0
	}
	if x < 0 {
		x = 0
	}
	if x >= len(s.Terrain) {
		x = len(s.Terrain) - 1
	}
	return s.Terrain[x]
}

// TerrainSurfaceY returns the canvas-down surface coordinate at column x.
func (s Snapshot) TerrainSurfaceY(x int) float64 {
	return float64(s.PlayH) - s.TerrainHeightAt(x)
}

// snapshot builds the view of the round's current state.
func (r *Round) snapshot() Snapshot {
	snap := Snapshot{
		Phase:     r.phase,
		Round:     r.number,
		Shooter:   r.shooter,
		Outcome:   r.outcome,
		Wind:      r.wind.Value(),
		WindForce: r.wind.Force(),
		PlayW:     r.params.PlayW,
		PlayH:     r.params.PlayH,
		Terrain:   r.terrain.HeightsView(),
		Params:    r.params,
	}
	snap.WeaponDamage = r.arsenal.damageTable()
	for _, tank := range r.tanks() {
		snap.Tanks = append(snap.Tanks, TankSnapshot{
			Team:      tank.Team,
			X:         tank.X,
			Y:         tank.Y,
			Angle:     tank.Angle,
			Power:     tank.Power,
			Health:    tank.Health,
			MaxHealth: tank.MaxHealth,
			Falling:   tank.Falling.Active,
			Weapon:    tank.CurrentWeapon,
			EMPTurns:  tank.EMPTurns,
		})
	}
	for _, p := range r.projectiles {
		if !p.Live() {
			continue
		}
		trail := make([]Point, len(p.Trail))
		copy(trail, p.Trail)
		snap.Projectiles = append(snap.Projectiles, ProjectileSnapshot{
			Owner:    p.Owner,
			WeaponID: p.Weapon.ID,
			X:        p.X,
			Y:        p.Y,
			VX:       p.VX,
			VY:       p.VY,
			Mode:     p.Mode,
			Trail:    trail,
		})
	}
	return snap
}

// snapshotForAI is the same view handed to the AI policy, including the
// enemy inventory so weapon selection can weigh ammo.
func (r *Round) snapshotForAI() Snapshot {
	snap := r.snapshot()
	snap.Inventory = make(map[string]int, len(r.enemy.Inventory))
	for id, count := range r.enemy.Inventory {
		snap.Inventory[id] = count
	}
	return snap
}
