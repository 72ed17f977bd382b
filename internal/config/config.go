// Package config provides YAML-based game configuration loading and
// difficulty presets for the artillery platform.
package config

// ScorchedConfig contains all tunables for the artillery game.
type ScorchedConfig struct {
	World     WorldConfig     `yaml:"world"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Damage    DamageConfig    `yaml:"damage"`
	Tank      TankConfig      `yaml:"tank"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Modes     ModesConfig     `yaml:"modes"`
	Placement PlacementConfig `yaml:"placement"`
	AI        AIConfig        `yaml:"ai"`
	Levels    []LevelSpec     `yaml:"levels"`
}

// WorldConfig defines the playfield and simulation cadence.
// Width and height are world pixels, independent of terminal size.
type WorldConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TickRate int `yaml:"tick_rate"`
}

// PhysicsConfig defines projectile flight parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	WindCoupling float64 `yaml:"wind_coupling"`
	MaxVelocity  float64 `yaml:"max_velocity"`
	PowerScale   float64 `yaml:"power_scale"`
	MaxTrail     int     `yaml:"max_trail"`
	SplitSpread  float64 `yaml:"split_spread"`
}

// DamageConfig defines the explosion damage model.
type DamageConfig struct {
	DirectHitRadius     float64 `yaml:"direct_hit_radius"`
	DirectHitMultiplier float64 `yaml:"direct_hit_multiplier"`
}

// TankConfig defines tank body dimensions and fall damage.
type TankConfig struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	BarrelLength  float64 `yaml:"barrel_length"`
	FallGravity   float64 `yaml:"fall_gravity"`
	MaxFallSpeed  float64 `yaml:"max_fall_speed"`
	FallNoDamage  float64 `yaml:"fall_no_damage"`
	FallLethal    float64 `yaml:"fall_lethal"`
	FallDamageMin float64 `yaml:"fall_damage_min"`
	FallDamageMax float64 `yaml:"fall_damage_max"`
}

// TerrainConfig defines heightmap generation and dirt settling.
type TerrainConfig struct {
	MinHeightPct    float64 `yaml:"min_height_pct"`
	MaxHeightPct    float64 `yaml:"max_height_pct"`
	Roughness       float64 `yaml:"roughness"`
	SettleThreshold float64 `yaml:"settle_threshold"`
	SettleStep      float64 `yaml:"settle_step"`
	SettleMaxIter   int     `yaml:"settle_max_iter"`
}

// ModesConfig defines the rolling and digging projectile modes.
type ModesConfig struct {
	RollClimbLimit  float64 `yaml:"roll_climb_limit"`
	RollMaxSteps    int     `yaml:"roll_max_steps"`
	RollMinMomentum float64 `yaml:"roll_min_momentum"`
	DigSpeed        float64 `yaml:"dig_speed"`
}

// PlacementConfig defines tank spawn placement.
type PlacementConfig struct {
	MinTankDistance float64 `yaml:"min_tank_distance"`
	ValleyThreshold float64 `yaml:"valley_threshold"`
	UIMarginLeft    float64 `yaml:"ui_margin_left"`
	UIMarginRight   float64 `yaml:"ui_margin_right"`
}

// AIConfig defines opponent behavior tuning.
type AIConfig struct {
	Tier            string  `yaml:"tier"` // "easy", "medium", or "hard"
	ThinkTicks      int     `yaml:"think_ticks"`
	ImpactTolerance float64 `yaml:"impact_tolerance"`
	IterationCap    int     `yaml:"iteration_cap"`
}

// LevelSpec describes one fixed level for level mode. An empty Levels list
// means endless mode with its built-in schedules.
type LevelSpec struct {
	PlayerHealth float64 `yaml:"player_health"`
	EnemyHealth  float64 `yaml:"enemy_health"`
	WindRange    float64 `yaml:"wind_range"`
	Roughness    float64 `yaml:"roughness"`
	Difficulty   string  `yaml:"difficulty"`
}
