package scorched

import (
	"fmt"
	"math"
)

// Team identifies a side of the duel.
type Team int

const (
	TeamPlayer Team = iota
	TeamEnemy
)

// String returns the team name.
func (t Team) String() string {
	if t == TeamPlayer {
		return "player"
	}
	return "enemy"
}

// Other returns the opposing team.
func (t Team) Other() Team {
	if t == TeamPlayer {
		return TeamEnemy
	}
	return TeamPlayer
}

// AmmoInfinite marks an inventory slot that never depletes.
const AmmoInfinite = -1

// FallingState tracks a tank dropping after the ground beneath it was carved
// away.
type FallingState struct {
	Active   bool
	Velocity float64
	StartY   float64
	TargetY  float64
}

// Tank is one combatant. X/Y is the surface contact point in canvas-down
// coordinates; the body box extends TankHeight upward from it.
type Tank struct {
	Team      Team
	X, Y      float64
	Angle     float64 // Degrees, 0 points right, 90 straight up, 180 left
	Power     float64 // 0..100
	Health    float64
	MaxHealth float64

	CurrentWeapon string
	Inventory     map[string]int

	Falling  FallingState
	EMPTurns int // Turns during which only the basic shot is usable

	arsenal   *Arsenal
	params    Params
	destroyed bool
}

// NewTank creates a tank with full health and the basic shot selected.
// The basic shot slot is always infinite.
func NewTank(team Team, maxHealth float64, arsenal *Arsenal, params Params) *Tank {
	t := &Tank{
		Team:          team,
		Angle:         90,
		Power:         50,
		Health:        maxHealth,
		MaxHealth:     maxHealth,
		CurrentWeapon: WeaponBasicShot,
		Inventory:     map[string]int{WeaponBasicShot: AmmoInfinite},
		arsenal:       arsenal,
		params:        params,
	}
	return t
}

// Alive reports whether the tank still has health.
func (t *Tank) Alive() bool { return !t.destroyed }

// SetAngle clamps and applies an aim angle in degrees.
func (t *Tank) SetAngle(angle float64) {
	t.Angle = clampFloat(angle, 0, 180)
}

// SetPower clamps and applies shot power.
func (t *Tank) SetPower(power float64) {
	t.Power = clampFloat(power, 0, 100)
}

// TakeDamage reduces health by d, clamped to remaining health, and reports
// the amount applied plus whether this call crossed the alive→destroyed edge.
// The edge is crossed at most once per tank lifetime.
func (t *Tank) TakeDamage(d float64) (actual float64, destroyedNow bool) {
	if d <= 0 || t.destroyed {
		return 0, false
	}
	actual = math.Min(d, t.Health)
	t.Health -= actual
	if t.Health <= 0 {
		t.Health = 0
		t.destroyed = true
		destroyedNow = true
	}
	return actual, destroyedNow
}

// AmmoFor returns the inventory count for a weapon id; AmmoInfinite means
// unlimited and 0 means empty.
func (t *Tank) AmmoFor(id string) int {
	return t.Inventory[id]
}

// AddAmmo adds n units to a weapon slot. Infinite slots are left alone.
func (t *Tank) AddAmmo(id string, n int) {
	if t.Inventory[id] == AmmoInfinite {
		return
	}
	t.Inventory[id] += n
}

// SetWeapon selects the current weapon. It rejects unknown ids, empty slots,
// and non-basic weapons while an EMP is active.
func (t *Tank) SetWeapon(id string) error {
	if !t.arsenal.Exists(id) {
		return fmt.Errorf("%w: %q", ErrUnknownWeapon, id)
	}
	if t.EMPTurns > 0 && id != WeaponBasicShot {
		return fmt.Errorf("%w: weapon %q disabled by EMP", ErrInvalidArgument, id)
	}
	if count := t.Inventory[id]; count == 0 {
		return fmt.Errorf("%w: %q", ErrNoAmmo, id)
	}
	t.CurrentWeapon = id
	return nil
}

// ConsumeAmmo spends one unit of the current weapon. Consuming the last unit
// of a non-basic weapon auto-switches the selection back to the basic shot.
// Returns false if the slot was already empty.
func (t *Tank) ConsumeAmmo() bool {
	count := t.Inventory[t.CurrentWeapon]
	if count == AmmoInfinite {
		return true
	}
	if count <= 0 {
		return false
	}
	count--
	t.Inventory[t.CurrentWeapon] = count
	if count == 0 && t.CurrentWeapon != WeaponBasicShot {
		t.CurrentWeapon = WeaponBasicShot
	}
	return true
}

// Bounds returns the tank's axis-aligned body box.
func (t *Tank) Bounds() (x0, y0, x1, y1 float64) {
	halfW := t.params.TankWidth / 2
	return t.X - halfW, t.Y - t.params.TankHeight, t.X + halfW, t.Y
}

// Center returns the body center used for damage distance.
func (t *Tank) Center() Point {
	return Point{X: t.X, Y: t.Y - t.params.TankHeight/2}
}

// ContainsPoint reports whether (x, y) lies inside the body box.
func (t *Tank) ContainsPoint(x, y float64) bool {
	x0, y0, x1, y1 := t.Bounds()
	return x >= x0 && x <= x1 && y >= y0 && y <= y1
}

// BarrelTip returns the muzzle position for the current aim.
func (t *Tank) BarrelTip() Point {
	rad := t.Angle * math.Pi / 180
	c := t.Center()
	return Point{
		X: c.X + math.Cos(rad)*t.params.BarrelLength,
		Y: c.Y - math.Sin(rad)*t.params.BarrelLength,
	}
}

// StartFalling begins a gravity drop toward targetY. A gap of one pixel or
// less is applied directly with no falling substate.
func (t *Tank) StartFalling(targetY float64) {
	if targetY-t.Y <= 1 {
		t.Y = math.Max(t.Y, targetY)
		return
	}
	if t.Falling.Active {
		// Ground fell further while already dropping; extend the target.
		if targetY > t.Falling.TargetY {
			t.Falling.TargetY = targetY
		}
		return
	}
	t.Falling = FallingState{
		Active:  true,
		StartY:  t.Y,
		TargetY: targetY,
	}
}

// StepFalling advances one tick of the falling substate. When the tank
// crosses the target it snaps there, the substate clears, and the total fall
// distance is reported for damage evaluation.
func (t *Tank) StepFalling() (landed bool, fallDistance float64) {
	if !t.Falling.Active {
		return false, 0
	}
	t.Falling.Velocity = math.Min(t.Falling.Velocity+t.params.FallGravity, t.params.MaxFallSpeed)
	t.Y += t.Falling.Velocity
	if t.Y >= t.Falling.TargetY {
		t.Y = t.Falling.TargetY
		dist := t.Falling.TargetY - t.Falling.StartY
		t.Falling = FallingState{}
		return true, dist
	}
	return false, 0
}

// FallDamage maps a fall distance onto damage: zero below the no-damage
// threshold, a linear ramp between the thresholds, and a flat lethal 100 at
// or beyond the lethal distance.
func FallDamage(distance float64, p Params) float64 {
	switch {
	case distance < p.FallNoDamage:
		return 0
	case distance >= p.FallLethal:
		return 100
	default:
		frac := (distance - p.FallNoDamage) / (p.FallLethal - p.FallNoDamage)
		return p.FallDamageMin + frac*(p.FallDamageMax-p.FallDamageMin)
	}
}
