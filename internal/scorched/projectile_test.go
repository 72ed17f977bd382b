package scorched

import (
	"math"
	"testing"
)

func TestProjectileModeGraph(t *testing.T) {
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)

	cases := []struct {
		from, to ProjectileMode
		ok       bool
	}{
		{ModeFly, ModeRolling, true},
		{ModeFly, ModeDigging, true},
		{ModeFly, ModeConsumed, true},
		{ModeRolling, ModeConsumed, true},
		{ModeRolling, ModeFly, false},
		{ModeRolling, ModeDigging, false},
		{ModeDigging, ModeFly, true},
		{ModeDigging, ModeConsumed, true},
		{ModeDigging, ModeRolling, false},
		{ModeConsumed, ModeFly, false},
		{ModeConsumed, ModeConsumed, false},
	}
	for _, tc := range cases {
		p := newProjectile(TeamPlayer, w, Point{}, 0, 0)
		p.Mode = tc.from
		err := p.transition(tc.to)
		if tc.ok && err != nil {
			t.Errorf("%s -> %s: unexpected error %v", tc.from, tc.to, err)
		}
		if !tc.ok && err == nil {
			t.Errorf("%s -> %s: expected rejection", tc.from, tc.to)
		}
	}
}

func TestProjectileConsumeReleasesTrail(t *testing.T) {
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)
	p := newProjectile(TeamPlayer, w, Point{X: 10, Y: 10}, 1, 1)
	p.appendTrail(24)
	p.appendTrail(24)

	if err := p.transition(ModeConsumed); err != nil {
		t.Fatalf("transition: %v", err)
	}
	if p.Trail != nil {
		t.Error("trail should be released on consume")
	}
	if p.Live() {
		t.Error("consumed projectile reported live")
	}
}

func TestAppendTrailBounded(t *testing.T) {
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)
	p := newProjectile(TeamPlayer, w, Point{}, 0, 0)

	for i := 0; i < 100; i++ {
		p.X = float64(i)
		p.appendTrail(24)
	}
	if len(p.Trail) != 24 {
		t.Fatalf("trail length = %d, want 24", len(p.Trail))
	}
	// The newest point survives, the oldest are dropped.
	if p.Trail[23].X != 99 || p.Trail[0].X != 76 {
		t.Errorf("trail window wrong: first %v last %v", p.Trail[0].X, p.Trail[23].X)
	}
}

func TestCapSpeed(t *testing.T) {
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)
	p := newProjectile(TeamPlayer, w, Point{}, 30, 40)

	p.capSpeed(25)
	if s := p.speed(); math.Abs(s-25) > 1e-9 {
		t.Errorf("capped speed = %v, want 25", s)
	}
	// Direction is preserved.
	if math.Abs(p.VX/p.VY-0.75) > 1e-9 {
		t.Errorf("velocity direction changed: vx=%v vy=%v", p.VX, p.VY)
	}

	p.VX, p.VY = 3, 4
	p.capSpeed(25)
	if p.VX != 3 || p.VY != 4 {
		t.Error("sub-cap velocity should be untouched")
	}
}

func TestCanSplitOnlyForSplittingWeapons(t *testing.T) {
	a := StandardArsenal()
	for _, w := range a.List() {
		p := newProjectile(TeamPlayer, w, Point{}, 0, 0)
		want := w.Kind == WeaponSplitting
		if p.canSplit != want {
			t.Errorf("%s: canSplit = %v, want %v", w.ID, p.canSplit, want)
		}
	}
}

func TestAnomalousDetection(t *testing.T) {
	w, _ := StandardArsenal().Lookup(WeaponBasicShot)
	p := newProjectile(TeamPlayer, w, Point{X: 1, Y: 2}, 3, 4)
	if p.anomalous() {
		t.Error("finite projectile flagged anomalous")
	}
	p.VY = math.NaN()
	if !p.anomalous() {
		t.Error("NaN velocity not flagged")
	}
	p.VY = 0
	p.X = math.Inf(1)
	if !p.anomalous() {
		t.Error("infinite position not flagged")
	}
}
