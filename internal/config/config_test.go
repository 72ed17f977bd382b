package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var fromYAML ScorchedConfig
	if err := yaml.Unmarshal(GetDefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}

	hardcoded := DefaultScorchedConfig()

	if fromYAML.World != hardcoded.World {
		t.Errorf("world mismatch: %+v vs %+v", fromYAML.World, hardcoded.World)
	}
	if fromYAML.Physics != hardcoded.Physics {
		t.Errorf("physics mismatch: %+v vs %+v", fromYAML.Physics, hardcoded.Physics)
	}
	if fromYAML.Tank != hardcoded.Tank {
		t.Errorf("tank mismatch: %+v vs %+v", fromYAML.Tank, hardcoded.Tank)
	}
	if fromYAML.AI != hardcoded.AI {
		t.Errorf("ai mismatch: %+v vs %+v", fromYAML.AI, hardcoded.AI)
	}
	if len(fromYAML.Levels) != 0 {
		t.Errorf("default config should not define levels, got %d", len(fromYAML.Levels))
	}
}

func TestLoadScorchedCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("world:\n  width: 900\n  height: 600\n  tick_rate: 30\nai:\n  tier: hard\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := LoadScorched(path)
	if err != nil {
		t.Fatalf("LoadScorched: %v", err)
	}
	if cfg.World.Width != 900 || cfg.World.TickRate != 30 {
		t.Errorf("world = %+v", cfg.World)
	}
	if cfg.AI.Tier != "hard" {
		t.Errorf("ai tier = %q", cfg.AI.Tier)
	}
}

func TestLoadScorchedMissingCustomPath(t *testing.T) {
	if _, err := LoadScorched("/nonexistent/scorched.yaml"); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultScorchedConfig()

	ApplyPreset(&cfg, DifficultyHard)
	if cfg.AI.Tier != "hard" || cfg.AI.ImpactTolerance != 10 {
		t.Errorf("hard preset: %+v", cfg.AI)
	}

	ApplyPreset(&cfg, DifficultyEasy)
	if cfg.AI.Tier != "easy" || cfg.AI.ImpactTolerance != 28 {
		t.Errorf("easy preset: %+v", cfg.AI)
	}

	// Unknown presets leave the config alone.
	before := cfg.AI
	ApplyPreset(&cfg, DifficultyPreset("nightmare"))
	if cfg.AI != before {
		t.Errorf("unknown preset changed config: %+v", cfg.AI)
	}
}

func TestDifficultyPresetValid(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if DifficultyPreset("normal").Valid() {
		t.Error("\"normal\" should not be valid")
	}
}
