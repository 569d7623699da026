package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. An empty name means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", s)
	}
}

// StartLevelForPreset returns the starting gravity level for a preset.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyNormal:
		return 4
	case DifficultyHard:
		return 8
	default:
		return 0
	}
}

// ApplyPreset modifies a variant section for a difficulty preset.
// Fixed keeps the configured start level and disables progression.
func ApplyPreset(cfg *VariantConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.LinesPerLevel = 0
	default:
		cfg.Difficulty.StartLevel = StartLevelForPreset(preset)
	}

	// Harder presets also shorten the grace period.
	switch preset {
	case DifficultyEasy:
		cfg.Timing.LockDelayMs = max(cfg.Timing.LockDelayMs, 700)
	case DifficultyHard:
		cfg.Timing.LockDelayMs = min(cfg.Timing.LockDelayMs, 300)
	}
}
