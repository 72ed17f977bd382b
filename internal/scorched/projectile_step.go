package scorched

import "math"

// stepProjectiles runs one simulation tick over the live projectile set, in
// projectile-index order. Children spawned mid-tick (MIRV splits) join the
// set immediately but are first integrated on the next tick.
func (r *Round) stepProjectiles() {
	n := len(r.projectiles)
	for i := 0; i < n; i++ {
		p := r.projectiles[i]
		if !p.Live() {
			continue
		}
		switch p.Mode {
		case ModeFly:
			r.flyTick(p)
		case ModeRolling:
			r.rollTick(p)
		case ModeDigging:
			r.digTick(p)
		}
	}
	r.compactProjectiles()
}

// compactProjectiles drops consumed shells from the live set. A consumed
// projectile never re-enters it.
func (r *Round) compactProjectiles() {
	live := r.projectiles[:0]
	for _, p := range r.projectiles {
		if p.Live() {
			live = append(live, p)
		}
	}
	r.projectiles = live
}

// flyTick integrates one ballistic tick: gravity, wind, speed cap, movement,
// then the split check, tank collision and terrain collision, in that order.
func (r *Round) flyTick(p *Projectile) {
	p.VY += r.params.Gravity
	p.VX += r.wind.Force()
	p.capSpeed(r.params.MaxVelocity)
	p.X += p.VX
	p.Y += p.VY
	p.appendTrail(r.params.MaxTrail)

	if p.anomalous() {
		if r.logger != nil {
			r.logger.Error("physics anomaly, consuming projectile", "weapon", p.Weapon.ID)
		}
		r.consume(p)
		return
	}

	// Leaving the playfield sideways or below consumes the shell with no
	// effect. Above the top of the world it keeps integrating.
	if p.X < 0 || p.X >= float64(r.params.PlayW) || p.Y > float64(r.params.PlayH) {
		r.consume(p)
		return
	}

	owner := r.tankFor(p.Owner)
	if !p.clearedOwner && !owner.ContainsPoint(p.X, p.Y) {
		p.clearedOwner = true
	}

	// Apex check: first tick with non-negative vertical velocity.
	if p.canSplit && p.VY >= 0 {
		r.splitProjectile(p)
		return
	}

	for _, tank := range r.tanks() {
		if !tank.Alive() {
			continue
		}
		if tank.Team == p.Owner && !p.clearedOwner {
			continue
		}
		if tank.ContainsPoint(p.X, p.Y) {
			r.explodeAt(p, p.X, p.Y)
			return
		}
	}

	hit, ok := r.terrain.Collides(p.X, p.Y)
	if !ok {
		return
	}
	firstContact := !p.touchedTerrain
	if firstContact {
		p.touchedTerrain = true
		r.counters.TerrainHits++
		r.bus.Emit(ProjectileTouchedTerrain{WeaponID: p.Weapon.ID, X: hit.X, Y: hit.Y})
	}

	switch {
	case p.Weapon.Kind == WeaponRolling && firstContact:
		r.enterRolling(p, hit)
	case p.Weapon.Kind == WeaponDigging && firstContact:
		r.enterDigging(p, hit)
	default:
		r.explodeAt(p, hit.X, hit.Y)
	}
}

// splitProjectile deactivates a splitting shell at apex and spawns its
// children with evenly spread horizontal velocities. Children inherit the
// parent's momentum and can never split again.
func (r *Round) splitProjectile(p *Projectile) {
	p.canSplit = false
	count := p.Weapon.SplitCount
	r.bus.Emit(ProjectileSplit{WeaponID: p.Weapon.ID, X: p.X, Y: p.Y, Children: count})
	r.consume(p)

	for i := 0; i < count; i++ {
		offset := float64(i) - float64(count-1)/2
		child := newProjectile(p.Owner, p.Weapon, Point{X: p.X, Y: p.Y}, p.VX+offset*r.params.SplitSpread, p.VY)
		child.canSplit = false
		child.clearedOwner = true // children spawn at apex, well clear of the turret
		r.spawn(child)
	}
}

// enterRolling switches a roller onto the terrain contour at its landing
// point.
func (r *Round) enterRolling(p *Projectile, hit Point) {
	dir := 1.0
	if p.VX < 0 {
		dir = -1
	}
	momentum := math.Max(p.Weapon.RollMomentum, p.speed()*0.6)

	r.changeMode(p, ModeRolling)
	p.X = hit.X
	p.Y = hit.Y
	p.rollDir = dir
	p.rollMomentum = momentum
}

// rollTick advances a roller along the surface, one column per step. Drops
// steeper than the climb limit are followed downhill; rises steeper than it
// stop the roller and detonate it. Momentum bleeds on flats and climbs and
// recovers slightly downhill; the step cap guarantees detonation in finite
// steps.
func (r *Round) rollTick(p *Projectile) {
	steps := maxInt(1, int(p.rollMomentum))
	for i := 0; i < steps; i++ {
		nx := p.X + p.rollDir
		if nx < 0 || nx >= float64(r.params.PlayW) {
			r.consume(p)
			return
		}
		rise := r.terrain.SurfaceY(p.X) - r.terrain.SurfaceY(nx) // positive = uphill
		if rise > r.params.RollClimbLimit {
			r.explodeAt(p, p.X, p.Y)
			return
		}

		p.X = nx
		p.Y = r.terrain.SurfaceY(nx)
		p.rollSteps++
		p.RollRotation += p.rollDir

		if rise < 0 {
			p.rollMomentum += -rise * 0.02
		} else {
			p.rollMomentum -= rise * 0.05
		}
		p.rollMomentum = p.rollMomentum*0.995 - 0.01

		for _, tank := range r.tanks() {
			if tank.Alive() && tank.ContainsPoint(p.X, p.Y-1) {
				r.explodeAt(p, p.X, p.Y)
				return
			}
		}

		if p.rollSteps >= r.params.RollMaxSteps || p.rollMomentum < r.params.RollMinMomentum {
			r.explodeAt(p, p.X, p.Y)
			return
		}
	}
	p.appendTrail(r.params.MaxTrail)
}

// enterDigging switches a digger underground along its impact velocity.
func (r *Round) enterDigging(p *Projectile, hit Point) {
	speed := p.speed()
	dx, dy := 0.0, 1.0
	if speed > 0 {
		dx = p.VX / speed
		dy = p.VY / speed
	}

	r.changeMode(p, ModeDigging)
	p.X = hit.X
	p.Y = hit.Y
	p.digDX = dx
	p.digDY = dy
	p.digBudget = p.Weapon.DigBudget
	p.digSpeed = r.params.DigSpeed
}

// digTick tunnels the shell through terrain in one-pixel sub-steps, each one
// a tank-collision test. Exiting into open air reverts to flight with the
// entry velocity; exhausting the budget detonates in place.
func (r *Round) digTick(p *Projectile) {
	for i := 0; i < int(p.digSpeed); i++ {
		p.X += p.digDX
		p.Y += p.digDY
		p.digBudget--

		if p.X < 0 || p.X >= float64(r.params.PlayW) || p.Y > float64(r.params.PlayH) {
			r.consume(p)
			return
		}

		for _, tank := range r.tanks() {
			if tank.Alive() && tank.ContainsPoint(p.X, p.Y) {
				r.explodeAt(p, p.X, p.Y)
				return
			}
		}

		if _, underground := r.terrain.Collides(p.X, p.Y); !underground {
			// Emerged from the far side: back to flight with inherited velocity.
			r.changeMode(p, ModeFly)
			return
		}

		if p.digBudget <= 0 {
			r.explodeAt(p, p.X, p.Y)
			return
		}
	}
	p.appendTrail(r.params.MaxTrail)
}

// changeMode walks a projectile mode edge and emits ModeChanged. Illegal
// edges surface as InternalError and consume the shell.
func (r *Round) changeMode(p *Projectile, to ProjectileMode) {
	from := p.Mode
	if err := p.transition(to); err != nil {
		if r.logger != nil {
			r.logger.Error("projectile mode", "error", err)
		}
		r.bus.Emit(InternalError{Message: err.Error()})
		p.Mode = ModeConsumed
		return
	}
	r.bus.Emit(ModeChanged{WeaponID: p.Weapon.ID, From: from, To: to, X: p.X, Y: p.Y})
}

// consume retires a projectile with no explosion.
func (r *Round) consume(p *Projectile) {
	if !p.Live() {
		return
	}
	r.changeMode(p, ModeConsumed)
}

// explodeAt detonates a projectile at (x, y): carve the crater, settle the
// dirt, apply damage to every live tank including the owner, then restart
// falling for any tank whose support was removed. A projectile explodes at
// most once.
func (r *Round) explodeAt(p *Projectile, x, y float64) {
	if p.exploded || !p.Live() {
		return
	}
	p.exploded = true
	r.changeMode(p, ModeConsumed)

	w := p.Weapon
	r.terrain.CarveCrater(x, y, w.BlastRadius)
	r.terrain.ApplyFallingDirt(x, w.BlastRadius, r.params.SettleThreshold, r.params.SettleStep, r.params.SettleMaxIter)

	for _, rep := range resolveExplosion(x, y, w, r.tanks(), r.params) {
		r.bus.Emit(DamageDealt{
			Actual:       rep.Actual,
			Direct:       rep.Direct,
			TargetTeam:   rep.Target.Team,
			HealthBefore: rep.HealthBefore,
			HealthAfter:  rep.HealthAfter,
			WeaponID:     w.ID,
		})
		r.noteDamage(rep.Target, rep.Actual, rep.Direct, p.Owner)
		if rep.HealthBefore > 0 && rep.HealthAfter == 0 && rep.Target.Team == TeamEnemy {
			r.bus.Emit(EnemyDestroyed{Round: r.number})
		}
	}

	r.checkTankSupport()
}

// checkTankSupport starts a gravity drop for any tank left hanging above the
// surface after terrain mutation.
func (r *Round) checkTankSupport() {
	for _, tank := range r.tanks() {
		if !tank.Alive() {
			continue
		}
		surface := r.terrain.SurfaceY(tank.X)
		if surface > tank.Y+1 {
			tank.StartFalling(surface)
		}
	}
}
