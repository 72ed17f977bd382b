package scorched

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Difficulty selects the AI tier.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return "unknown"
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return DifficultyEasy, nil
	case "medium", "normal", "":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyMedium, fmt.Errorf("%w: difficulty %q", ErrInvalidArgument, s)
	}
}

// Decision is the aim tuple a policy produces from a snapshot.
type Decision struct {
	Angle    float64
	Power    float64
	WeaponID string
}

// Policy turns a world snapshot into a firing decision. Implementations are
// stateless and pure apart from the supplied RNG; the orchestrator owns the
// think timer and applies the decision when the window closes.
type Policy interface {
	Decide(snap Snapshot, rng *rand.Rand) Decision
}

// PolicyFor returns the policy for a difficulty tier.
func PolicyFor(d Difficulty) Policy {
	switch d {
	case DifficultyEasy:
		return easyPolicy{}
	case DifficultyHard:
		return hardPolicy{}
	default:
		return mediumPolicy{}
	}
}

// shooterAndTarget resolves the acting tank and its victim from a snapshot.
func shooterAndTarget(snap Snapshot) (TankSnapshot, TankSnapshot) {
	self, _ := snap.Tank(snap.Shooter)
	target, _ := snap.Tank(snap.Shooter.Other())
	return self, target
}

// easyPolicy aims around a crude distance heuristic with wide jitter and
// only sometimes remembers the wind exists.
type easyPolicy struct{}

func (easyPolicy) Decide(snap Snapshot, rng *rand.Rand) Decision {
	self, target := shooterAndTarget(snap)
	dx := target.X - self.X
	dist := math.Abs(dx)

	power := clampFloat(dist*0.11+rng.Float64()*24-12, 20, 100)
	angle := 60 + rng.Float64()*30 - 15
	if dx < 0 {
		angle = 180 - angle
	}
	if rng.Float64() < 0.5 {
		// Underestimates wind: lean the barrel slightly against it.
		angle -= snap.WindForce * 40
	}

	return Decision{
		Angle:    clampFloat(angle, 0, 180),
		Power:    power,
		WeaponID: pickWeapon(snap, rng, 0.15),
	}
}

// mediumPolicy solves the level-ground ballistic arc, ignores terrain
// occlusion, compensates for wind linearly, and jitters a little.
type mediumPolicy struct{}

func (mediumPolicy) Decide(snap Snapshot, rng *rand.Rand) Decision {
	self, target := shooterAndTarget(snap)
	p := snap.Params

	angle, power := solveFlatArc(self, target, snap.WindForce, p)
	angle += rng.Float64()*4 - 2
	power += rng.Float64()*6 - 3

	return Decision{
		Angle:    clampFloat(angle, 0, 180),
		Power:    clampFloat(power, 10, 100),
		WeaponID: pickWeapon(snap, rng, 0.5),
	}
}

// hardPolicy runs the medium solution through an iterative refinement loop,
// simulating each candidate shot against the real terrain and wind and
// bisecting on power until the predicted impact is inside the tolerance or
// the iteration cap runs out. The best candidate so far always wins.
type hardPolicy struct{}

func (hardPolicy) Decide(snap Snapshot, rng *rand.Rand) Decision {
	self, target := shooterAndTarget(snap)
	p := snap.Params

	angle, seedPower := solveFlatArc(self, target, snap.WindForce, p)
	angle = clampFloat(angle, 1, 179)

	muzzle := muzzleFor(self, p)
	bestPower := clampFloat(seedPower, 10, 100)
	bestMiss := math.Inf(1)

	towardTarget := 1.0
	if target.X < self.X {
		towardTarget = -1
	}

	lo, hi := 10.0, 100.0
	power := bestPower
	for i := 0; i < p.AIIterationCap; i++ {
		impactX, landed := simulateImpact(snap, muzzle, angle, power)
		miss := math.Abs(impactX - target.X)
		if landed && miss < bestMiss {
			bestMiss = miss
			bestPower = power
		}
		if bestMiss <= p.ImpactTolerance {
			break
		}
		// Short shots need more power when firing toward the target,
		// long shots less; bisect accordingly.
		short := (target.X-impactX)*towardTarget > 0
		if short {
			lo = power
		} else {
			hi = power
		}
		power = (lo + hi) / 2
	}

	return Decision{
		Angle:    angle,
		Power:    bestPower,
		WeaponID: bestAvailableWeapon(snap),
	}
}

// solveFlatArc returns the high-arc angle/power pair that lands on the target
// over level ground, with a single linear wind correction pass.
func solveFlatArc(self, target TankSnapshot, windForce float64, p Params) (angle, power float64) {
	dx := target.X - self.X
	dist := math.Abs(dx)
	g := p.Gravity

	// Smallest speed that reaches dist at 45 degrees, with headroom.
	v := math.Sqrt(dist*g) * 1.08
	power = clampFloat(v/p.PowerScale, 10, 100)
	v = power * p.PowerScale

	elevation := arcElevation(dist, v, g)

	// One linear wind correction: shift the aim point by the predicted drift.
	t := 2 * v * math.Sin(elevation) / g
	drift := 0.5 * windForce * t * t
	shifted := math.Abs(dx - drift)
	elevation = arcElevation(shifted, v, g)

	angle = elevation * 180 / math.Pi
	if dx < 0 {
		angle = 180 - angle
	}
	return angle, power
}

// arcElevation returns the high-arc elevation (radians above horizontal) for
// range dist at speed v, or the best possible 45 degrees when out of reach.
func arcElevation(dist, v, g float64) float64 {
	if v <= 0 {
		return math.Pi / 4
	}
	s := dist * g / (v * v)
	if s >= 1 {
		return math.Pi / 4
	}
	return (math.Pi - math.Asin(s)) / 2
}

// muzzleFor approximates the barrel tip as the tank body center; the solver
// tolerance absorbs the difference.
func muzzleFor(t TankSnapshot, p Params) Point {
	return Point{X: t.X, Y: t.Y - p.TankHeight/2}
}

// simulateImpact flies a standard shell from start against the snapshot's
// terrain and wind, returning the x coordinate where it lands. landed is
// false when the shell leaves the playfield instead.
func simulateImpact(snap Snapshot, start Point, angle, power float64) (impactX float64, landed bool) {
	p := snap.Params
	rad := angle * math.Pi / 180
	v := power * p.PowerScale
	x, y := start.X, start.Y
	vx, vy := math.Cos(rad)*v, -math.Sin(rad)*v

	const maxTicks = 5000
	for i := 0; i < maxTicks; i++ {
		vy += p.Gravity
		vx += snap.WindForce
		speed := math.Hypot(vx, vy)
		if speed > p.MaxVelocity {
			scale := p.MaxVelocity / speed
			vx *= scale
			vy *= scale
		}
		x += vx
		y += vy

		if x < 0 || x >= float64(snap.PlayW) || y > float64(snap.PlayH) {
			return x, false
		}
		if y >= snap.TerrainSurfaceY(int(x)) {
			return x, true
		}
	}
	return x, false
}

// pickWeapon selects the basic shot most of the time and otherwise a random
// slot that still has ammo. fancyChance scales with tier.
func pickWeapon(snap Snapshot, rng *rand.Rand, fancyChance float64) string {
	if rng.Float64() >= fancyChance {
		return WeaponBasicShot
	}
	var stocked []string
	for id, count := range snap.Inventory {
		if id != WeaponBasicShot && count != 0 {
			stocked = append(stocked, id)
		}
	}
	if len(stocked) == 0 {
		return WeaponBasicShot
	}
	// Map iteration order is random; sort for a deterministic draw.
	sort.Strings(stocked)
	return stocked[rng.Intn(len(stocked))]
}

// bestAvailableWeapon returns the stocked weapon with the highest base
// damage per the snapshot's damage table, falling back to the basic shot.
func bestAvailableWeapon(snap Snapshot) string {
	best := WeaponBasicShot
	bestDamage := 0.0
	for id, count := range snap.Inventory {
		if count == 0 {
			continue
		}
		dmg, ok := snap.WeaponDamage[id]
		if !ok {
			continue
		}
		if dmg > bestDamage || (dmg == bestDamage && id < best) {
			best = id
			bestDamage = dmg
		}
	}
	return best
}
