package scorched

// Params holds every tunable constant of the simulation. The shell builds it
// from YAML config; the core never reads files or renderer dimensions itself.
// PlayW/PlayH are the usable playfield bounds in world pixels, independent of
// whatever the terminal renderer scales them to.
type Params struct {
	PlayW int // Playfield width in world pixels
	PlayH int // Playfield height in world pixels

	TickRate int // Fixed simulation ticks per second

	// Projectile physics
	Gravity      float64 // Downward acceleration per tick
	WindCoupling float64 // Horizontal acceleration per unit of wind per tick
	MaxVelocity  float64 // Speed cap for in-flight projectiles
	PowerScale   float64 // Muzzle speed = power * PowerScale
	MaxTrail     int     // Bounded trail length per projectile
	SplitSpread  float64 // Horizontal velocity spacing between MIRV children

	// Damage model
	DirectHitRadius     float64 // Distance to tank center that counts as a direct hit
	DirectHitMultiplier float64 // Damage multiplier on a direct hit

	// Tank body and falling
	TankWidth     float64
	TankHeight    float64
	BarrelLength  float64
	FallGravity   float64 // Acceleration while a tank falls
	MaxFallSpeed  float64 // Terminal velocity while falling
	FallNoDamage  float64 // Fall distance below which no damage applies
	FallLethal    float64 // Fall distance at or above which damage is 100
	FallDamageMin float64 // Damage at FallNoDamage
	FallDamageMax float64 // Damage just under FallLethal

	// Terrain generation and settling
	TerrainMinPct   float64 // Lower clamp for generated heights, fraction of PlayH
	TerrainMaxPct   float64 // Upper clamp for generated heights, fraction of PlayH
	Roughness       float64 // Midpoint-displacement jitter scale
	SettleThreshold float64 // Overhang above both neighbors that sheds dirt
	SettleStep      float64 // Dirt shed per settling pass
	SettleMaxIter   int     // Settling pass cap

	// Rolling and digging weapon modes
	RollClimbLimit  float64 // Uphill step that stops a roller
	RollMaxSteps    int     // Hard cap on rolling steps before detonation
	RollMinMomentum float64 // Momentum below which a roller detonates
	DigSpeed        float64 // Underground advance per tick

	// Tank placement
	MinTankDistance float64 // Minimum separation between the two tanks
	ValleyThreshold float64 // Depth below windowed mean that disqualifies a spot
	UIMarginLeft    float64 // Playfield pixels reserved on the left edge
	UIMarginRight   float64 // Playfield pixels reserved on the right edge

	// AI
	ThinkTicks      int     // AI aim window length in ticks
	ImpactTolerance float64 // Hard solver stops once predicted miss is within this
	AIIterationCap  int     // Hard solver iteration cap
}

// DefaultParams returns the tuning used by the standard game.
func DefaultParams() Params {
	return Params{
		PlayW: 1200,
		PlayH: 800,

		TickRate: 60,

		Gravity:      0.18,
		WindCoupling: 0.012,
		MaxVelocity:  25,
		PowerScale:   0.16,
		MaxTrail:     24,
		SplitSpread:  1.1,

		DirectHitRadius:     20,
		DirectHitMultiplier: 1.5,

		TankWidth:     40,
		TankHeight:    24,
		BarrelLength:  28,
		FallGravity:   0.5,
		MaxFallSpeed:  12,
		FallNoDamage:  60,
		FallLethal:    400,
		FallDamageMin: 0,
		FallDamageMax: 95,

		TerrainMinPct:   0.15,
		TerrainMaxPct:   0.65,
		Roughness:       0.55,
		SettleThreshold: 18,
		SettleStep:      6,
		SettleMaxIter:   64,

		RollClimbLimit:  12,
		RollMaxSteps:    600,
		RollMinMomentum: 0.6,
		DigSpeed:        3,

		MinTankDistance: 300,
		ValleyThreshold: 40,
		UIMarginLeft:    60,
		UIMarginRight:   60,

		ThinkTicks:      45,
		ImpactTolerance: 14,
		AIIterationCap:  28,
	}
}
