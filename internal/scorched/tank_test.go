package scorched

import (
	"errors"
	"testing"
)

func testTank(team Team, health float64) *Tank {
	return NewTank(team, health, StandardArsenal(), DefaultParams())
}

func TestSetAngleClamp(t *testing.T) {
	tank := testTank(TeamPlayer, 100)

	cases := []struct{ in, want float64 }{
		{-30, 0},
		{0, 0},
		{90, 90},
		{180, 180},
		{250, 180},
	}
	for _, tc := range cases {
		tank.SetAngle(tc.in)
		if tank.Angle != tc.want {
			t.Errorf("SetAngle(%v): got %v, want %v", tc.in, tank.Angle, tc.want)
		}
	}
}

func TestSetPowerClamp(t *testing.T) {
	tank := testTank(TeamPlayer, 100)

	cases := []struct{ in, want float64 }{
		{-10, 0},
		{50, 50},
		{100, 100},
		{130, 100},
	}
	for _, tc := range cases {
		tank.SetPower(tc.in)
		if tank.Power != tc.want {
			t.Errorf("SetPower(%v): got %v, want %v", tc.in, tank.Power, tc.want)
		}
	}
}

func TestTakeDamageClampAndEdge(t *testing.T) {
	tank := testTank(TeamEnemy, 30)

	actual, destroyedNow := tank.TakeDamage(20)
	if actual != 20 || destroyedNow {
		t.Fatalf("first hit: actual=%v destroyedNow=%v", actual, destroyedNow)
	}

	// Overkill is clamped to remaining health and crosses the edge once.
	actual, destroyedNow = tank.TakeDamage(50)
	if actual != 10 {
		t.Errorf("overkill actual = %v, want 10", actual)
	}
	if !destroyedNow {
		t.Error("expected destroyedNow on lethal hit")
	}
	if tank.Alive() {
		t.Error("tank should be destroyed")
	}

	// Further damage is a no-op and never re-fires the edge.
	actual, destroyedNow = tank.TakeDamage(50)
	if actual != 0 || destroyedNow {
		t.Errorf("posthumous hit: actual=%v destroyedNow=%v", actual, destroyedNow)
	}
}

func TestTakeDamageNonPositive(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	if actual, _ := tank.TakeDamage(0); actual != 0 {
		t.Errorf("zero damage applied %v", actual)
	}
	if actual, _ := tank.TakeDamage(-5); actual != 0 {
		t.Errorf("negative damage applied %v", actual)
	}
	if tank.Health != 100 {
		t.Errorf("health changed to %v", tank.Health)
	}
}

func TestSetWeaponRejections(t *testing.T) {
	tank := testTank(TeamPlayer, 100)

	if err := tank.SetWeapon("plasma_cannon"); !errors.Is(err, ErrUnknownWeapon) {
		t.Errorf("unknown weapon: got %v", err)
	}
	if err := tank.SetWeapon(WeaponMIRV); !errors.Is(err, ErrNoAmmo) {
		t.Errorf("empty slot: got %v", err)
	}

	tank.AddAmmo(WeaponMIRV, 1)
	if err := tank.SetWeapon(WeaponMIRV); err != nil {
		t.Errorf("stocked weapon rejected: %v", err)
	}
}

func TestSetWeaponEMP(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	tank.AddAmmo(WeaponMissile, 2)
	tank.EMPTurns = 2

	if err := tank.SetWeapon(WeaponMissile); err == nil {
		t.Error("non-basic weapon should be rejected under EMP")
	}
	if err := tank.SetWeapon(WeaponBasicShot); err != nil {
		t.Errorf("basic shot should stay usable under EMP: %v", err)
	}
}

func TestConsumeAmmoAutoSwitch(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	tank.AddAmmo(WeaponRoller, 1)
	if err := tank.SetWeapon(WeaponRoller); err != nil {
		t.Fatalf("SetWeapon: %v", err)
	}

	if !tank.ConsumeAmmo() {
		t.Fatal("consume of last unit should succeed")
	}
	if tank.AmmoFor(WeaponRoller) != 0 {
		t.Errorf("roller ammo = %d, want 0", tank.AmmoFor(WeaponRoller))
	}
	if tank.CurrentWeapon != WeaponBasicShot {
		t.Errorf("selection = %q, want auto-switch to basic", tank.CurrentWeapon)
	}
}

func TestConsumeAmmoInfinite(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	for i := 0; i < 50; i++ {
		if !tank.ConsumeAmmo() {
			t.Fatal("basic shot should never deplete")
		}
	}
	if tank.AmmoFor(WeaponBasicShot) != AmmoInfinite {
		t.Errorf("basic slot = %d, want AmmoInfinite", tank.AmmoFor(WeaponBasicShot))
	}
}

func TestAddAmmoInfiniteSlotUntouched(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	tank.AddAmmo(WeaponBasicShot, 5)
	if tank.AmmoFor(WeaponBasicShot) != AmmoInfinite {
		t.Errorf("infinite slot changed to %d", tank.AmmoFor(WeaponBasicShot))
	}
}

func TestContainsPoint(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	tank.X, tank.Y = 100, 500 // box spans x 80..120, y 476..500

	cases := []struct {
		x, y float64
		want bool
	}{
		{100, 490, true},
		{80, 500, true},
		{120, 476, true},
		{79, 490, false},
		{100, 475, false},
		{100, 501, false},
	}
	for _, tc := range cases {
		if got := tank.ContainsPoint(tc.x, tc.y); got != tc.want {
			t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestBarrelTip(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	tank.X, tank.Y = 100, 500
	tank.SetAngle(90)

	tip := tank.BarrelTip()
	if tip.X < 99.9 || tip.X > 100.1 {
		t.Errorf("straight-up barrel tip X = %v, want ~100", tip.X)
	}
	want := 500 - DefaultParams().TankHeight/2 - DefaultParams().BarrelLength
	if tip.Y < want-0.1 || tip.Y > want+0.1 {
		t.Errorf("straight-up barrel tip Y = %v, want ~%v", tip.Y, want)
	}
}

func TestStartFallingSmallGap(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	tank.Y = 500

	tank.StartFalling(500.8)
	if tank.Falling.Active {
		t.Error("sub-pixel gap should not start a fall")
	}
	if tank.Y != 500.8 {
		t.Errorf("Y = %v, want direct snap to 500.8", tank.Y)
	}
}

func TestStartFallingExtendsTarget(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	tank.Y = 500

	tank.StartFalling(600)
	if !tank.Falling.Active || tank.Falling.TargetY != 600 {
		t.Fatalf("fall not started: %+v", tank.Falling)
	}

	// Ground collapses further mid-drop.
	tank.StartFalling(650)
	if tank.Falling.TargetY != 650 {
		t.Errorf("target = %v, want extended to 650", tank.Falling.TargetY)
	}

	// A shallower target never shortens the drop.
	tank.StartFalling(620)
	if tank.Falling.TargetY != 650 {
		t.Errorf("target = %v, want unchanged 650", tank.Falling.TargetY)
	}
}

func TestStepFallingLandsExactly(t *testing.T) {
	tank := testTank(TeamPlayer, 100)
	tank.Y = 500
	tank.StartFalling(700)

	var landed bool
	var dist float64
	for i := 0; i < 1000; i++ {
		if landed, dist = tank.StepFalling(); landed {
			break
		}
	}
	if !landed {
		t.Fatal("fall never landed")
	}
	if tank.Y != 700 {
		t.Errorf("landed Y = %v, want snap to 700", tank.Y)
	}
	if dist != 200 {
		t.Errorf("fall distance = %v, want 200", dist)
	}
	if tank.Falling.Active {
		t.Error("falling substate should clear on landing")
	}
}

func TestFallDamageSchedule(t *testing.T) {
	p := DefaultParams()

	cases := []struct {
		dist, want float64
	}{
		{0, 0},
		{59.9, 0},
		{p.FallNoDamage, 0}, // exactly the no-damage threshold
		{p.FallLethal, 100},
		{1000, 100},
	}
	for _, tc := range cases {
		if got := FallDamage(tc.dist, p); got != tc.want {
			t.Errorf("FallDamage(%v) = %v, want %v", tc.dist, got, tc.want)
		}
	}

	// The ramp is monotone between the thresholds.
	prev := FallDamage(p.FallNoDamage, p)
	for d := p.FallNoDamage + 10; d < p.FallLethal; d += 10 {
		got := FallDamage(d, p)
		if got < prev {
			t.Fatalf("ramp not monotone at %v: %v < %v", d, got, prev)
		}
		prev = got
	}
}
