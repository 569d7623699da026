// Package blocks turns the falling-block engine into playable games: solo
// tetromino and triomino modes, a garbage battle against the AI, and the
// screensaver demo.
package blocks

import (
	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets a custom blocks.yaml path for games created afterwards.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects a named preset for games created afterwards.
func SetDifficultyPreset(name string) error {
	p, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	difficultyPreset = p
	return nil
}

// loadConfig reads the configured file, falling back to the embedded
// defaults so a broken file never prevents a game from starting.
func loadConfig() config.BlocksConfig {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultBlocksConfig()
	}
	return cfg
}

// variantSettings returns the section for v with the preset applied.
func variantSettings(cfg config.BlocksConfig, v engine.Variant) config.VariantConfig {
	vc := cfg.Variant(v)
	config.ApplyPreset(&vc, difficultyPreset)
	return vc
}
