package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration.
func DefaultBlocksConfig() BlocksConfig {
	timing := TimingConfig{
		DASMs:            150,
		ARRMs:            50,
		LockDelayMs:      500,
		LockDelayEnabled: true,
		SoftDropFactor:   10,
	}
	tritrisTiming := timing
	tritrisTiming.LockDelayEnabled = false

	return BlocksConfig{
		Tetris: VariantConfig{
			Board:  BoardConfig{Width: 10, Height: 20},
			Timing: timing,
			Difficulty: DifficultyConfig{
				StartLevel:    0,
				LinesPerLevel: 10,
				MaxLevel:      20,
			},
		},
		Tritris: VariantConfig{
			Board:  BoardConfig{Width: 4, Height: 5},
			Timing: tritrisTiming,
			Difficulty: DifficultyConfig{
				StartLevel:    0,
				LinesPerLevel: 5,
				MaxLevel:      15,
			},
		},
		Garbage: GarbageConfig{Accept: GarbagePreferred},
		Demo:    DemoConfig{ThinkMs: 50},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultBlocksYAML
}
