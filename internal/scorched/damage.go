package scorched

import "math"

// DamageReport describes one tank's share of an explosion.
type DamageReport struct {
	Target       *Tank
	Actual       float64
	Direct       bool
	HealthBefore float64
	HealthAfter  float64
}

// explosionDamage computes raw damage for a target at distance d from the
// explosion center. Inside DirectHitRadius the weapon deals its base damage
// times the direct-hit multiplier; beyond the blast radius it deals nothing;
// in between it falls off by (1 - (d-dhr)/(r-dhr))^falloff.
func explosionDamage(w Weapon, d float64, p Params) (damage float64, direct bool) {
	r := w.BlastRadius
	if d > r {
		return 0, false
	}
	if d <= p.DirectHitRadius {
		return w.Damage * p.DirectHitMultiplier, true
	}
	span := r - p.DirectHitRadius
	if span <= 0 {
		return w.Damage, false
	}
	frac := 1 - (d-p.DirectHitRadius)/span
	if frac < 0 {
		frac = 0
	}
	return w.Damage * math.Pow(frac, w.Falloff), false
}

// resolveExplosion applies an explosion at (cx, cy) to every live tank,
// including the shooter's own; there is no friendly-fire exemption. Reports
// are returned in the given tank order with actual damage clamped to
// remaining health. Zero-damage tanks produce no report.
func resolveExplosion(cx, cy float64, w Weapon, tanks []*Tank, p Params) []DamageReport {
	var reports []DamageReport
	for _, tank := range tanks {
		if !tank.Alive() {
			continue
		}
		c := tank.Center()
		d := math.Hypot(c.X-cx, c.Y-cy)
		raw, direct := explosionDamage(w, d, p)
		if raw <= 0 {
			continue
		}
		before := tank.Health
		actual, _ := tank.TakeDamage(raw)
		reports = append(reports, DamageReport{
			Target:       tank,
			Actual:       actual,
			Direct:       direct,
			HealthBefore: before,
			HealthAfter:  tank.Health,
		})
	}
	return reports
}
