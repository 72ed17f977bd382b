package scorched

import "github.com/charmbracelet/log"

// Event is the closed set of typed events the core emits. Subscribers receive
// them synchronously, in order of occurrence within a tick, and must not
// mutate core state.
type Event interface {
	gameEvent()
}

// RunStart fires once when a run begins.
type RunStart struct {
	Seed       int64
	Difficulty Difficulty
}

func (RunStart) gameEvent() {}

// RoundStart fires when a round's terrain, tanks and wind are in place.
type RoundStart struct {
	Round int
	Wind  float64
}

func (RoundStart) gameEvent() {}

// ShotFired fires when a shooter commits a shot.
type ShotFired struct {
	Team     Team
	WeaponID string
	Angle    float64
	Power    float64
}

func (ShotFired) gameEvent() {}

// ProjectileSpawned fires for every live projectile entering the world,
// including MIRV children.
type ProjectileSpawned struct {
	Owner    Team
	WeaponID string
	X, Y     float64
}

func (ProjectileSpawned) gameEvent() {}

// ProjectileSplit fires when a splitting weapon deactivates at apex.
type ProjectileSplit struct {
	WeaponID string
	X, Y     float64
	Children int
}

func (ProjectileSplit) gameEvent() {}

// ProjectileTouchedTerrain fires on first terrain contact of a projectile.
type ProjectileTouchedTerrain struct {
	WeaponID string
	X, Y     float64
}

func (ProjectileTouchedTerrain) gameEvent() {}

// ModeChanged fires on every projectile mode edge (fly→rolling, fly→digging,
// digging→fly, any→consumed).
type ModeChanged struct {
	WeaponID string
	From, To ProjectileMode
	X, Y     float64
}

func (ModeChanged) gameEvent() {}

// DamageDealt fires once per tank per explosion that dealt damage.
type DamageDealt struct {
	Actual       float64
	Direct       bool
	TargetTeam   Team
	HealthBefore float64
	HealthAfter  float64
	WeaponID     string
}

func (DamageDealt) gameEvent() {}

// SelfDamage fires when splash from a shooter's own shot hits them.
type SelfDamage struct {
	Team   Team
	Amount float64
}

func (SelfDamage) gameEvent() {}

// PlayerDamaged fires whenever the player tank loses health.
type PlayerDamaged struct {
	Amount float64
}

func (PlayerDamaged) gameEvent() {}

// EnemyDestroyed fires once on the enemy's alive→destroyed edge.
type EnemyDestroyed struct {
	Round int
}

func (EnemyDestroyed) gameEvent() {}

// PhaseChanged fires on every turn-machine transition.
type PhaseChanged struct {
	From, To Phase
}

func (PhaseChanged) gameEvent() {}

// RoundWon fires when only the enemy tank was destroyed.
type RoundWon struct {
	Round int
}

func (RoundWon) gameEvent() {}

// RoundLost fires when only the player tank was destroyed.
type RoundLost struct {
	Round int
}

func (RoundLost) gameEvent() {}

// MutualDestruction fires when both tanks died in the same resolution.
type MutualDestruction struct {
	Round int
}

func (MutualDestruction) gameEvent() {}

// RoundResolved fires after the win/loss classification events.
type RoundResolved struct {
	Round   int
	Outcome Outcome
}

func (RoundResolved) gameEvent() {}

// MoneyEarned fires when the player's token balance grows.
type MoneyEarned struct {
	Amount  int
	Balance int
}

func (MoneyEarned) gameEvent() {}

// InventoryChanged fires whenever an inventory slot count changes.
type InventoryChanged struct {
	Team     Team
	WeaponID string
	Count    int
}

func (InventoryChanged) gameEvent() {}

// InternalError fires when a fatal invariant aborts the current tick.
// The simulation continues on the next tick.
type InternalError struct {
	Message string
}

func (InternalError) gameEvent() {}

// Listener receives events from the bus.
type Listener func(Event)

// Bus is the achievement/event bus: a synchronous, insertion-ordered observer
// set. A panicking subscriber is caught and logged; it never aborts the tick.
type Bus struct {
	nextID int
	order  []int
	subs   map[int]Listener
	logger *log.Logger
}

// NewBus creates an empty bus. logger may be nil.
func NewBus(logger *log.Logger) *Bus {
	return &Bus{subs: make(map[int]Listener), logger: logger}
}

// Subscribe registers a listener and returns its disposer. Listeners are
// invoked in subscription order.
func (b *Bus) Subscribe(fn Listener) func() {
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.order = append(b.order, id)
	return func() {
		delete(b.subs, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Emit delivers ev to every subscriber, in order, on the calling goroutine.
// The order is captured up front so a subscriber disposing itself or a
// neighbor mid-delivery cannot skip anyone still subscribed.
func (b *Bus) Emit(ev Event) {
	order := make([]int, len(b.order))
	copy(order, b.order)
	for _, id := range order {
		fn, ok := b.subs[id]
		if !ok {
			continue
		}
		b.dispatch(fn, ev)
	}
}

func (b *Bus) dispatch(fn Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil && b.logger != nil {
			b.logger.Error("event subscriber panicked", "event", eventName(ev), "panic", r)
		}
	}()
	fn(ev)
}

// eventName returns a short name for logging.
func eventName(ev Event) string {
	switch ev.(type) {
	case RunStart:
		return "RunStart"
	case RoundStart:
		return "RoundStart"
	case ShotFired:
		return "ShotFired"
	case ProjectileSpawned:
		return "ProjectileSpawned"
	case ProjectileSplit:
		return "ProjectileSplit"
	case ProjectileTouchedTerrain:
		return "ProjectileTouchedTerrain"
	case ModeChanged:
		return "ModeChanged"
	case DamageDealt:
		return "DamageDealt"
	case SelfDamage:
		return "SelfDamage"
	case PlayerDamaged:
		return "PlayerDamaged"
	case EnemyDestroyed:
		return "EnemyDestroyed"
	case PhaseChanged:
		return "PhaseChanged"
	case RoundWon:
		return "RoundWon"
	case RoundLost:
		return "RoundLost"
	case MutualDestruction:
		return "MutualDestruction"
	case RoundResolved:
		return "RoundResolved"
	case MoneyEarned:
		return "MoneyEarned"
	case InventoryChanged:
		return "InventoryChanged"
	case InternalError:
		return "InternalError"
	default:
		return "Unknown"
	}
}
