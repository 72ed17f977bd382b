package achievements

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-scorched/internal/scorched"
	"github.com/vovakirdan/tui-scorched/internal/storage"
)

// Counter names kept in storage.
const (
	CounterShotsFired = "shots_fired"
	CounterDirectHits = "direct_hits"
	CounterRoundsWon  = "rounds_won"
	CounterNukesFired = "nukes_fired"
)

// Tracker listens to a run's event bus and unlocks achievements.
// One tracker can outlive many runs; attach it to each run's bus.
type Tracker struct {
	store  *storage.Store // nil keeps unlocks in memory only
	logger *log.Logger

	// OnUnlock, if set, is called once per fresh unlock. Used by the shell
	// to show a toast. Set it before Attach.
	OnUnlock func(Achievement)

	unlocked map[string]bool

	roundDamageTaken float64
	lastDamageSelf   bool
}

// NewTracker builds a tracker, preloading already-unlocked IDs from storage.
func NewTracker(store *storage.Store, logger *log.Logger) *Tracker {
	t := &Tracker{
		store:    store,
		logger:   logger,
		unlocked: make(map[string]bool),
	}
	if store != nil {
		if prior, err := store.Achievements(); err == nil {
			for id := range prior {
				t.unlocked[id] = true
			}
		} else if logger != nil {
			logger.Warn("cannot preload achievements", "err", err)
		}
	}
	return t
}

// Unlocked reports whether an achievement has been unlocked.
func (t *Tracker) Unlocked(id string) bool {
	return t.unlocked[id]
}

// Attach subscribes the tracker to a bus and returns the disposer.
func (t *Tracker) Attach(bus *scorched.Bus) func() {
	return bus.Subscribe(t.handle)
}

func (t *Tracker) handle(ev scorched.Event) {
	switch e := ev.(type) {
	case scorched.RoundStart:
		t.roundDamageTaken = 0
		if e.Round >= 5 {
			t.unlock(Survivor5)
		}
		if e.Round >= 10 {
			t.unlock(Survivor10)
		}

	case scorched.ShotFired:
		if e.Team == scorched.TeamPlayer {
			t.bump(CounterShotsFired, 1)
			if e.WeaponID == scorched.WeaponNuke || e.WeaponID == scorched.WeaponMiniNuke {
				t.bump(CounterNukesFired, 1)
				t.unlock(GoingNuclear)
			}
		}

	case scorched.ProjectileSplit:
		t.unlock(SplitShot)

	case scorched.DamageDealt:
		if e.TargetTeam == scorched.TeamEnemy && e.Direct {
			t.bump(CounterDirectHits, 1)
			t.unlock(DirectHit)
		}
		if e.TargetTeam == scorched.TeamPlayer {
			t.lastDamageSelf = false
		}

	case scorched.SelfDamage:
		if e.Team == scorched.TeamPlayer {
			t.lastDamageSelf = true
		}

	case scorched.PlayerDamaged:
		t.roundDamageTaken += e.Amount

	case scorched.RoundWon:
		t.bump(CounterRoundsWon, 1)
		t.unlock(FirstWin)
		if t.roundDamageTaken == 0 {
			t.unlock(Untouchable)
		}

	case scorched.RoundLost:
		if t.lastDamageSelf {
			t.unlock(OwnGoal)
		}

	case scorched.MutualDestruction:
		if t.lastDamageSelf {
			t.unlock(OwnGoal)
		}
	}
}

// unlock records a fresh unlock and fires the OnUnlock hook.
func (t *Tracker) unlock(id string) {
	if t.unlocked[id] {
		return
	}
	t.unlocked[id] = true

	if t.store != nil {
		if _, err := t.store.UnlockAchievement(id); err != nil && t.logger != nil {
			t.logger.Error("cannot persist achievement", "id", id, "err", err)
		}
	}
	if t.logger != nil {
		t.logger.Info("achievement unlocked", "id", id)
	}
	if t.OnUnlock != nil {
		if a, ok := ByID(id); ok {
			t.OnUnlock(a)
		}
	}
}

func (t *Tracker) bump(name string, delta int64) {
	if t.store == nil {
		return
	}
	if _, err := t.store.IncrementCounter(name, delta); err != nil && t.logger != nil {
		t.logger.Error("cannot bump counter", "name", name, "err", err)
	}
}
