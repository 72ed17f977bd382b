package scorched

import (
	"math"
	"testing"
)

func TestExplosionDamageBeyondRadius(t *testing.T) {
	p := DefaultParams()
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)

	if dmg, _ := explosionDamage(w, w.BlastRadius+0.01, p); dmg != 0 {
		t.Errorf("damage beyond blast radius = %v, want 0", dmg)
	}
}

func TestExplosionDamageDirectHit(t *testing.T) {
	p := DefaultParams()
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)

	for _, d := range []float64{0, 10, p.DirectHitRadius} {
		dmg, direct := explosionDamage(w, d, p)
		if !direct {
			t.Errorf("distance %v: expected direct hit", d)
		}
		if want := w.Damage * p.DirectHitMultiplier; dmg != want {
			t.Errorf("distance %v: damage = %v, want %v", d, dmg, want)
		}
	}
}

func TestExplosionDamageSplashFalloff(t *testing.T) {
	p := DefaultParams()
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)

	// Halfway between the direct-hit radius and the blast radius.
	d := (p.DirectHitRadius + w.BlastRadius) / 2
	dmg, direct := explosionDamage(w, d, p)
	if direct {
		t.Error("splash range flagged as direct")
	}
	want := w.Damage * math.Pow(0.5, w.Falloff)
	if math.Abs(dmg-want) > 1e-9 {
		t.Errorf("splash damage = %v, want %v", dmg, want)
	}

	// Splash decreases with distance.
	farther, _ := explosionDamage(w, d+5, p)
	if farther >= dmg {
		t.Errorf("splash not decreasing: %v at d, %v farther", dmg, farther)
	}
}

func TestResolveExplosionNoFriendlyFireExemption(t *testing.T) {
	p := DefaultParams()
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)

	owner := testTank(TeamPlayer, 100)
	owner.X, owner.Y = 100, 500
	enemy := testTank(TeamEnemy, 100)
	enemy.X, enemy.Y = 1000, 500

	c := owner.Center()
	reports := resolveExplosion(c.X, c.Y, w, []*Tank{owner, enemy}, p)

	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1 (owner only)", len(reports))
	}
	if reports[0].Target != owner {
		t.Error("owner should take its own splash")
	}
	if !reports[0].Direct {
		t.Error("explosion at center should be direct")
	}
}

func TestResolveExplosionClampsToHealth(t *testing.T) {
	p := DefaultParams()
	w, _ := StandardArsenal().Lookup(WeaponNuke)

	victim := testTank(TeamEnemy, 15)
	victim.X, victim.Y = 100, 500
	c := victim.Center()

	reports := resolveExplosion(c.X, c.Y, w, []*Tank{victim}, p)
	if len(reports) != 1 {
		t.Fatalf("got %d reports, want 1", len(reports))
	}
	rep := reports[0]
	if rep.Actual != 15 {
		t.Errorf("actual = %v, want clamp to 15", rep.Actual)
	}
	if rep.HealthBefore != 15 || rep.HealthAfter != 0 {
		t.Errorf("health %v -> %v, want 15 -> 0", rep.HealthBefore, rep.HealthAfter)
	}
	if victim.Alive() {
		t.Error("victim should be destroyed")
	}
}

func TestResolveExplosionSkipsDeadAndDistant(t *testing.T) {
	p := DefaultParams()
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)

	dead := testTank(TeamEnemy, 10)
	dead.X, dead.Y = 100, 500
	dead.TakeDamage(100)

	far := testTank(TeamPlayer, 100)
	far.X, far.Y = 1000, 500

	reports := resolveExplosion(100, 488, w, []*Tank{dead, far}, p)
	if len(reports) != 0 {
		t.Errorf("got %d reports, want none", len(reports))
	}
}
