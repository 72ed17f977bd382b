package config

import (
	_ "embed"
)

//go:embed defaults/scorched.yaml
var defaultScorchedYAML []byte

// DefaultScorchedConfig returns the default artillery game configuration.
// Kept in sync with defaults/scorched.yaml as the fallback of last resort.
func DefaultScorchedConfig() ScorchedConfig {
	return ScorchedConfig{
		World: WorldConfig{
			Width:    1200,
			Height:   800,
			TickRate: 60,
		},
		Physics: PhysicsConfig{
			Gravity:      0.18,
			WindCoupling: 0.012,
			MaxVelocity:  25,
			PowerScale:   0.16,
			MaxTrail:     24,
			SplitSpread:  1.1,
		},
		Damage: DamageConfig{
			DirectHitRadius:     20,
			DirectHitMultiplier: 1.5,
		},
		Tank: TankConfig{
			Width:         40,
			Height:        24,
			BarrelLength:  28,
			FallGravity:   0.5,
			MaxFallSpeed:  12,
			FallNoDamage:  60,
			FallLethal:    400,
			FallDamageMin: 0,
			FallDamageMax: 95,
		},
		Terrain: TerrainConfig{
			MinHeightPct:    0.15,
			MaxHeightPct:    0.65,
			Roughness:       0.55,
			SettleThreshold: 18,
			SettleStep:      6,
			SettleMaxIter:   64,
		},
		Modes: ModesConfig{
			RollClimbLimit:  12,
			RollMaxSteps:    600,
			RollMinMomentum: 0.6,
			DigSpeed:        3,
		},
		Placement: PlacementConfig{
			MinTankDistance: 300,
			ValleyThreshold: 40,
			UIMarginLeft:    60,
			UIMarginRight:   60,
		},
		AI: AIConfig{
			Tier:            "medium",
			ThinkTicks:      45,
			ImpactTolerance: 14,
			IterationCap:    28,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultScorchedYAML
}
