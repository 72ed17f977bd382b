package scorched

import (
	"fmt"
	"sort"
)

// WeaponKind is the closed set of weapon families. Projectile behavior is
// dispatched on it exactly once per tick; adding a weapon of an existing kind
// is purely additive data.
type WeaponKind int

const (
	WeaponStandard WeaponKind = iota // Fly, explode on contact
	WeaponSplitting                  // Deactivate at apex, spawn children
	WeaponRolling                    // Follow the terrain contour after contact
	WeaponDigging                    // Tunnel along impact velocity
	WeaponNuclear                    // Standard flight, enlarged blast + flash flags
)

// String returns the family name.
func (k WeaponKind) String() string {
	switch k {
	case WeaponStandard:
		return "standard"
	case WeaponSplitting:
		return "splitting"
	case WeaponRolling:
		return "rolling"
	case WeaponDigging:
		return "digging"
	case WeaponNuclear:
		return "nuclear"
	default:
		return "unknown"
	}
}

// Weapon is an immutable catalog record. TrailColor and ProjectileColor are
// style names resolved by the renderer; MushroomCloud and ScreenFlash are
// effect-sink flags that never influence the damage model.
type Weapon struct {
	ID   string
	Name string
	Kind WeaponKind

	BlastRadius float64
	Damage      float64
	Falloff     float64 // Splash falloff exponent

	SplitCount   int     // Splitting: children spawned at apex
	DigBudget    float64 // Digging: tunnel distance before detonation
	RollMomentum float64 // Rolling: starting momentum on terrain contact

	Cost int // Shop price in tokens; 0 means not purchasable

	TrailColor      string
	ProjectileColor string
	MushroomCloud   bool
	ScreenFlash     bool
}

// Weapon ids of the standard catalog.
const (
	WeaponBasicShot   = "basic_shot"
	WeaponBigShot     = "big_shot"
	WeaponMissile     = "missile"
	WeaponMIRV        = "mirv"
	WeaponDeathsHead  = "deaths_head"
	WeaponRoller      = "roller"
	WeaponHeavyRoller = "heavy_roller"
	WeaponDigger      = "digger"
	WeaponHeavyDigger = "heavy_digger"
	WeaponMiniNuke    = "mini_nuke"
	WeaponNuke        = "nuke"
)

// Arsenal is the keyed weapon catalog. Lookup is total over registered ids;
// everything else in the core goes through it rather than testing weapon
// fields ad hoc.
type Arsenal struct {
	byID map[string]Weapon
}

// NewArsenal builds an arsenal from a weapon list.
// Panics on a duplicate id, mirroring factory registration.
func NewArsenal(weapons []Weapon) *Arsenal {
	a := &Arsenal{byID: make(map[string]Weapon, len(weapons))}
	for _, w := range weapons {
		if _, exists := a.byID[w.ID]; exists {
			panic(fmt.Sprintf("scorched: weapon %q already registered", w.ID))
		}
		a.byID[w.ID] = w
	}
	return a
}

// Lookup returns the weapon for id.
func (a *Arsenal) Lookup(id string) (Weapon, bool) {
	w, ok := a.byID[id]
	return w, ok
}

// damageTable returns base damage keyed by weapon id.
func (a *Arsenal) damageTable() map[string]float64 {
	out := make(map[string]float64, len(a.byID))
	for id, w := range a.byID {
		out[id] = w.Damage
	}
	return out
}

// Exists reports whether id is in the catalog.
func (a *Arsenal) Exists(id string) bool {
	_, ok := a.byID[id]
	return ok
}

// List returns all weapons sorted by id.
func (a *Arsenal) List() []Weapon {
	out := make([]Weapon, 0, len(a.byID))
	for _, w := range a.byID {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// StandardArsenal returns the full built-in catalog.
func StandardArsenal() *Arsenal {
	return NewArsenal([]Weapon{
		{
			ID: WeaponBasicShot, Name: "Basic Shot", Kind: WeaponStandard,
			BlastRadius: 40, Damage: 30, Falloff: 1.4,
			TrailColor: "cyan", ProjectileColor: "white",
		},
		{
			ID: WeaponBigShot, Name: "Big Shot", Kind: WeaponStandard,
			BlastRadius: 60, Damage: 45, Falloff: 1.4, Cost: 120,
			TrailColor: "cyan", ProjectileColor: "yellow",
		},
		{
			ID: WeaponMissile, Name: "Missile", Kind: WeaponStandard,
			BlastRadius: 50, Damage: 55, Falloff: 1.2, Cost: 200,
			TrailColor: "magenta", ProjectileColor: "red",
		},
		{
			ID: WeaponMIRV, Name: "MIRV", Kind: WeaponSplitting,
			BlastRadius: 35, Damage: 25, Falloff: 1.4, SplitCount: 3, Cost: 300,
			TrailColor: "green", ProjectileColor: "green",
		},
		{
			ID: WeaponDeathsHead, Name: "Death's Head", Kind: WeaponSplitting,
			BlastRadius: 40, Damage: 30, Falloff: 1.4, SplitCount: 5, Cost: 550,
			TrailColor: "magenta", ProjectileColor: "white",
		},
		{
			ID: WeaponRoller, Name: "Roller", Kind: WeaponRolling,
			BlastRadius: 45, Damage: 40, Falloff: 1.4, RollMomentum: 6, Cost: 180,
			TrailColor: "yellow", ProjectileColor: "yellow",
		},
		{
			ID: WeaponHeavyRoller, Name: "Heavy Roller", Kind: WeaponRolling,
			BlastRadius: 65, Damage: 55, Falloff: 1.4, RollMomentum: 9, Cost: 340,
			TrailColor: "yellow", ProjectileColor: "orange",
		},
		{
			ID: WeaponDigger, Name: "Digger", Kind: WeaponDigging,
			BlastRadius: 45, Damage: 45, Falloff: 1.4, DigBudget: 120, Cost: 220,
			TrailColor: "gray", ProjectileColor: "white",
		},
		{
			ID: WeaponHeavyDigger, Name: "Heavy Digger", Kind: WeaponDigging,
			BlastRadius: 60, Damage: 60, Falloff: 1.4, DigBudget: 200, Cost: 420,
			TrailColor: "gray", ProjectileColor: "yellow",
		},
		{
			ID: WeaponMiniNuke, Name: "Mini Nuke", Kind: WeaponNuclear,
			BlastRadius: 110, Damage: 70, Falloff: 1.1, Cost: 600,
			TrailColor: "white", ProjectileColor: "white",
			MushroomCloud: true, ScreenFlash: true,
		},
		{
			ID: WeaponNuke, Name: "Nuke", Kind: WeaponNuclear,
			BlastRadius: 170, Damage: 100, Falloff: 1.0, Cost: 1100,
			TrailColor: "white", ProjectileColor: "red",
			MushroomCloud: true, ScreenFlash: true,
		},
	})
}
