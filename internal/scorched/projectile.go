package scorched

import (
	"fmt"
	"math"
)

// ProjectileMode is the per-projectile sub-state. Transitions are restricted
// to the edges in projectileEdges; every edge emits a ModeChanged event.
type ProjectileMode int

const (
	ModeFly ProjectileMode = iota
	ModeRolling
	ModeDigging
	ModeConsumed
)

// String returns the mode name.
func (m ProjectileMode) String() string {
	switch m {
	case ModeFly:
		return "fly"
	case ModeRolling:
		return "rolling"
	case ModeDigging:
		return "digging"
	case ModeConsumed:
		return "consumed"
	default:
		return "unknown"
	}
}

// projectileEdges is the allowed mode graph. Digging can emerge back into
// flight; consumed is terminal.
var projectileEdges = map[ProjectileMode][]ProjectileMode{
	ModeFly:      {ModeRolling, ModeDigging, ModeConsumed},
	ModeRolling:  {ModeConsumed},
	ModeDigging:  {ModeFly, ModeConsumed},
	ModeConsumed: {},
}

// Projectile is one live shell. A projectile produces at most one explosion
// in its lifetime and never re-enters the live set once consumed.
type Projectile struct {
	Owner  Team
	Weapon Weapon

	X, Y   float64
	VX, VY float64
	Mode   ProjectileMode

	Trail []Point

	// Splitting state. canSplit starts true only for splitting weapons and
	// is never granted to children, so a lineage splits exactly once.
	canSplit bool

	// Rolling state
	rollDir      float64
	rollMomentum float64
	rollSteps    int
	RollRotation float64

	// Digging state
	digDX, digDY float64
	digBudget    float64
	digSpeed     float64

	// Owner immunity: false until the projectile has fully left the owner's
	// body box once; afterwards the owner can be hit like any tank.
	clearedOwner bool

	touchedTerrain bool
	exploded       bool
}

// newProjectile spawns a shell at pos with the given velocity.
func newProjectile(owner Team, w Weapon, pos Point, vx, vy float64) *Projectile {
	return &Projectile{
		Owner:    owner,
		Weapon:   w,
		X:        pos.X,
		Y:        pos.Y,
		VX:       vx,
		VY:       vy,
		Mode:     ModeFly,
		canSplit: w.Kind == WeaponSplitting,
	}
}

// transition moves the projectile to a new mode, rejecting edges outside the
// graph. Callers emit the ModeChanged event.
func (p *Projectile) transition(to ProjectileMode) error {
	for _, next := range projectileEdges[p.Mode] {
		if next == to {
			if to == ModeConsumed {
				p.Trail = nil // release the trail with the projectile
			}
			p.Mode = to
			return nil
		}
	}
	return fmt.Errorf("%w: projectile mode %s -> %s", ErrInvalidArgument, p.Mode, to)
}

// Live reports whether the projectile is still in the world.
func (p *Projectile) Live() bool { return p.Mode != ModeConsumed }

// appendTrail records the current position, keeping the trail bounded.
func (p *Projectile) appendTrail(maxLen int) {
	p.Trail = append(p.Trail, Point{X: p.X, Y: p.Y})
	if len(p.Trail) > maxLen {
		p.Trail = p.Trail[len(p.Trail)-maxLen:]
	}
}

// anomalous reports whether the integrator produced NaN or infinity.
func (p *Projectile) anomalous() bool {
	for _, v := range [...]float64{p.X, p.Y, p.VX, p.VY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return true
		}
	}
	return false
}

// capSpeed rescales the velocity vector so its magnitude never exceeds vmax.
func (p *Projectile) capSpeed(vmax float64) {
	speed := math.Hypot(p.VX, p.VY)
	if speed > vmax && speed > 0 {
		scale := vmax / speed
		p.VX *= scale
		p.VY *= scale
	}
}

// speed returns the current velocity magnitude.
func (p *Projectile) speed() float64 {
	return math.Hypot(p.VX, p.VY)
}
