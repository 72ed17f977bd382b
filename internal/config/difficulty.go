package config

// DifficultyPreset represents a named opponent difficulty.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyMedium DifficultyPreset = "medium"
	DifficultyHard   DifficultyPreset = "hard"
)

// Valid reports whether the preset names a known tier.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ApplyPreset overrides the configured AI tier with the chosen preset.
// Easy also gets a wider aim tolerance so near misses stay near misses.
func ApplyPreset(cfg *ScorchedConfig, preset DifficultyPreset) {
	if !preset.Valid() {
		return
	}
	cfg.AI.Tier = string(preset)

	switch preset {
	case DifficultyEasy:
		cfg.AI.ImpactTolerance = 28
	case DifficultyHard:
		cfg.AI.ImpactTolerance = 10
	}
}
