package scorched

import (
	"errors"
	"testing"
)

func testRun(seed int64) *Run {
	return NewRun(RunConfig{Seed: seed, Difficulty: DifficultyMedium})
}

// stepRun drives the run at the nominal frame time until pred holds.
func stepRun(r *Run, maxFrames int, pred func() bool) bool {
	frame := 1000.0 / float64(r.params.TickRate)
	for i := 0; i < maxFrames; i++ {
		if pred() {
			return true
		}
		r.Step(frame)
	}
	return pred()
}

func TestRunDeterminism(t *testing.T) {
	play := func() Snapshot {
		r := testRun(99)
		if err := r.StartRound(); err != nil {
			t.Fatalf("StartRound: %v", err)
		}
		if err := r.SetPlayerAim(60, 70); err != nil {
			t.Fatalf("aim: %v", err)
		}
		if err := r.PlayerFire(); err != nil {
			t.Fatalf("fire: %v", err)
		}
		frame := 1000.0 / float64(r.params.TickRate)
		for i := 0; i < 1500; i++ {
			r.Step(frame)
		}
		return r.Snapshot()
	}

	s1, s2 := play(), play()

	if s1.Phase != s2.Phase || s1.Round != s2.Round || s1.Tokens != s2.Tokens {
		t.Errorf("run state mismatch: %s/%d/%d vs %s/%d/%d",
			s1.Phase, s1.Round, s1.Tokens, s2.Phase, s2.Round, s2.Tokens)
	}
	for i := range s1.Tanks {
		if s1.Tanks[i].Health != s2.Tanks[i].Health {
			t.Errorf("tank %d health mismatch: %v vs %v", i, s1.Tanks[i].Health, s2.Tanks[i].Health)
		}
	}
	var sum1, sum2 float64
	for i := range s1.Terrain {
		sum1 += s1.Terrain[i]
		sum2 += s2.Terrain[i]
	}
	if sum1 != sum2 {
		t.Errorf("terrain mismatch: %v vs %v", sum1, sum2)
	}
}

func TestStartRoundPlacement(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		r := testRun(seed)
		if err := r.StartRound(); err != nil {
			t.Fatalf("seed %d: StartRound: %v", seed, err)
		}

		p := r.params
		w := float64(p.PlayW)
		player, enemy := r.round.player, r.round.enemy

		if player.X < p.UIMarginLeft || player.X > 0.25*w {
			t.Errorf("seed %d: player x = %v outside its band", seed, player.X)
		}
		if enemy.X < 0.75*w || enemy.X > w-p.UIMarginRight {
			t.Errorf("seed %d: enemy x = %v outside its band", seed, enemy.X)
		}
		if enemy.X-player.X < p.MinTankDistance {
			t.Errorf("seed %d: separation %v below minimum", seed, enemy.X-player.X)
		}
		if player.Y != r.round.terrain.SurfaceY(player.X) {
			t.Errorf("seed %d: player not on the surface", seed)
		}
		if enemy.Y != r.round.terrain.SurfaceY(enemy.X) {
			t.Errorf("seed %d: enemy not on the surface", seed)
		}
	}
}

func TestStartRoundRejectedMidRound(t *testing.T) {
	r := testRun(3)
	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if err := r.StartRound(); !errors.Is(err, ErrIllegalPhase) {
		t.Errorf("mid-round StartRound: got %v", err)
	}
}

func TestSnapshotCarriesConfiguredArsenal(t *testing.T) {
	custom := NewArsenal([]Weapon{
		{ID: WeaponBasicShot, Name: "Basic Shot", Kind: WeaponStandard, BlastRadius: 40, Damage: 12, Falloff: 1.4},
		{ID: "plasma", Name: "Plasma", Kind: WeaponStandard, BlastRadius: 50, Damage: 77, Falloff: 1.2, Cost: 100},
	})
	r := NewRun(RunConfig{Seed: 7, Difficulty: DifficultyHard, Arsenal: custom})
	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	snap := r.Snapshot()
	if got := snap.WeaponDamage[WeaponBasicShot]; got != 12 {
		t.Errorf("basic shot damage = %v, want the custom catalog's 12", got)
	}
	if got := snap.WeaponDamage["plasma"]; got != 77 {
		t.Errorf("plasma damage = %v, want 77", got)
	}
	if _, ok := snap.WeaponDamage[WeaponNuke]; ok {
		t.Error("snapshot lists a weapon the configured arsenal does not carry")
	}
}

func TestEndlessSchedules(t *testing.T) {
	r := testRun(5)

	prev := r.levelFor(1)
	if prev.EnemyHealth != 100 {
		t.Errorf("round 1 enemy health = %v, want 100", prev.EnemyHealth)
	}
	for round := 2; round <= 30; round++ {
		lvl := r.levelFor(round)
		if lvl.EnemyHealth < prev.EnemyHealth {
			t.Fatalf("enemy health not monotone at round %d", round)
		}
		if lvl.WindRange < prev.WindRange {
			t.Fatalf("wind range not monotone at round %d", round)
		}
		prev = lvl
	}
	if lvl := r.levelFor(50); lvl.EnemyHealth != 240 {
		t.Errorf("enemy health cap = %v, want 240", lvl.EnemyHealth)
	}
	if lvl := r.levelFor(50); lvl.WindRange != 8 {
		t.Errorf("wind range cap = %v, want 8", lvl.WindRange)
	}
}

func TestLevelModeUsesConfigs(t *testing.T) {
	r := NewRun(RunConfig{
		Seed: 5,
		Mode: ModeLevel,
		Levels: []LevelConfig{
			{PlayerHealth: 80, EnemyHealth: 120, WindRange: 2, Difficulty: DifficultyEasy},
			{PlayerHealth: 80, EnemyHealth: 160, WindRange: 4, Difficulty: DifficultyHard},
		},
	})

	if lvl := r.levelFor(1); lvl.EnemyHealth != 120 || lvl.Difficulty != DifficultyEasy {
		t.Errorf("level 1 = %+v", lvl)
	}
	if lvl := r.levelFor(2); lvl.EnemyHealth != 160 || lvl.Difficulty != DifficultyHard {
		t.Errorf("level 2 = %+v", lvl)
	}
	// Past the end the last level repeats.
	if lvl := r.levelFor(9); lvl.EnemyHealth != 160 {
		t.Errorf("level 9 = %+v, want last config", lvl)
	}
}

func TestWinAwardsTokensAndAdvances(t *testing.T) {
	r := testRun(11)
	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	var money *MoneyEarned
	r.bus.Subscribe(func(ev Event) {
		if me, ok := ev.(MoneyEarned); ok {
			money = &me
		}
	})

	// Destroy the enemy, then let the player's shot play out so the round
	// can resolve.
	r.round.enemy.TakeDamage(1000)
	if err := r.SetPlayerAim(90, 50); err != nil {
		t.Fatalf("aim: %v", err)
	}
	if err := r.PlayerFire(); err != nil {
		t.Fatalf("fire: %v", err)
	}

	ok := stepRun(r, 5000, func() bool { return r.BetweenRounds() })
	if !ok {
		t.Fatal("round never resolved")
	}

	if r.Over() {
		t.Fatal("run ended on a win")
	}
	if r.RoundNumber() != 2 {
		t.Errorf("round number = %d, want advance to 2", r.RoundNumber())
	}
	if r.Tokens() != 65 {
		t.Errorf("tokens = %d, want 50 + 15*1", r.Tokens())
	}
	if money == nil || money.Balance != 65 {
		t.Errorf("MoneyEarned = %+v, want balance 65", money)
	}
	if r.Stats().RoundsWon != 1 || r.Stats().BestRound != 1 {
		t.Errorf("stats = %+v", r.Stats())
	}
}

func TestPermadeath(t *testing.T) {
	r := testRun(13)
	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}

	var lost bool
	r.bus.Subscribe(func(ev Event) {
		if _, ok := ev.(RoundLost); ok {
			lost = true
		}
	})

	// A one-health player firing straight up dies to the return shell.
	r.round.player.Health = 1
	if err := r.SetPlayerAim(90, 50); err != nil {
		t.Fatalf("aim: %v", err)
	}
	if err := r.PlayerFire(); err != nil {
		t.Fatalf("fire: %v", err)
	}

	ok := stepRun(r, 5000, func() bool { return r.Over() })
	if !ok {
		t.Fatal("run never ended")
	}

	if !lost {
		t.Error("RoundLost not emitted")
	}
	if err := r.StartRound(); !errors.Is(err, ErrRunOver) {
		t.Errorf("StartRound after game over: got %v", err)
	}
	if err := r.PlayerFire(); !errors.Is(err, ErrRunOver) {
		t.Errorf("fire after game over: got %v", err)
	}
	if r.Stats().BestRound != 1 {
		t.Errorf("best round = %d, want 1", r.Stats().BestRound)
	}
}

func TestBuyWeapon(t *testing.T) {
	r := testRun(17)
	r.tokens = 500

	if err := r.BuyWeapon("orbital_laser"); !errors.Is(err, ErrUnknownWeapon) {
		t.Errorf("unknown weapon: got %v", err)
	}
	if err := r.BuyWeapon(WeaponBasicShot); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("free weapon: got %v", err)
	}
	if err := r.BuyWeapon(WeaponNuke); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unaffordable weapon: got %v", err)
	}

	if err := r.BuyWeapon(WeaponBigShot); err != nil {
		t.Fatalf("BuyWeapon: %v", err)
	}
	if r.tokens != 380 {
		t.Errorf("tokens = %d, want 380", r.tokens)
	}
	if r.inventory[WeaponBigShot] != 1 {
		t.Errorf("inventory = %d, want 1", r.inventory[WeaponBigShot])
	}

	// Purchases carry into the round's player tank.
	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if r.round.player.AmmoFor(WeaponBigShot) != 1 {
		t.Errorf("round inventory = %d, want the purchase", r.round.player.AmmoFor(WeaponBigShot))
	}

	// The shop closes once the round is live.
	if err := r.BuyWeapon(WeaponBigShot); !errors.Is(err, ErrIllegalPhase) {
		t.Errorf("mid-round purchase: got %v", err)
	}
}

func TestQuitRun(t *testing.T) {
	r := testRun(19)
	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	r.QuitRun()

	if !r.Over() {
		t.Error("run should be over after quit")
	}
	if err := r.SetPlayerAim(45, 50); !errors.Is(err, ErrRunOver) {
		t.Errorf("aim after quit: got %v", err)
	}
	if r.Stats().BestRound != 1 {
		t.Errorf("best round = %d, want 1", r.Stats().BestRound)
	}
}

func TestInitialShooterAlternates(t *testing.T) {
	r := testRun(23)
	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if r.round.shooter != TeamPlayer {
		t.Errorf("round 1 shooter = %s, want player", r.round.shooter)
	}

	// Force a resolved round and start the next one.
	r.round.enemy.TakeDamage(1000)
	r.round.phase = PhaseProjectileFlight
	r.round.Step()
	r.handleRoundEnd()

	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	if r.round.shooter != TeamEnemy {
		t.Errorf("round 2 shooter = %s, want enemy", r.round.shooter)
	}
}

func TestStepIgnoresBadDeltas(t *testing.T) {
	r := testRun(29)
	if err := r.StartRound(); err != nil {
		t.Fatalf("StartRound: %v", err)
	}
	before := r.Snapshot()

	r.Step(-50)
	r.Step(0)

	after := r.Snapshot()
	if before.Phase != after.Phase {
		t.Error("non-positive delta advanced the simulation")
	}
}

func TestLifetimeStatsAccuracy(t *testing.T) {
	s := LifetimeStats{}
	if s.Accuracy() != 0 {
		t.Errorf("zero-shot accuracy = %v, want 0", s.Accuracy())
	}
	s.ShotsFired = 4
	s.HitsOnEnemy = 3
	if s.Accuracy() != 0.75 {
		t.Errorf("accuracy = %v, want 0.75", s.Accuracy())
	}
}
