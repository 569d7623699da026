// Package config provides YAML-based game configuration loading and
// difficulty presets for the block games.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
)

// BlocksConfig is the root of blocks.yaml.
type BlocksConfig struct {
	Tetris  VariantConfig `yaml:"tetris"`
	Tritris VariantConfig `yaml:"tritris"`
	Garbage GarbageConfig `yaml:"garbage"`
	Demo    DemoConfig    `yaml:"demo"`
}

// VariantConfig configures one rule set.
type VariantConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Pieces     string           `yaml:"pieces"` // optional subset of piece ids, e.g. "IOT"
}

// BoardConfig defines the playfield size.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines input and lock timings in milliseconds.
type TimingConfig struct {
	DASMs            int     `yaml:"das_ms"`
	ARRMs            int     `yaml:"arr_ms"`
	LockDelayMs      int     `yaml:"lock_delay_ms"`
	LockDelayEnabled bool    `yaml:"lock_delay_enabled"`
	SoftDropFactor   float64 `yaml:"soft_drop_factor"`
}

// DifficultyConfig defines the level progression.
type DifficultyConfig struct {
	StartLevel    int `yaml:"start_level"`
	LinesPerLevel int `yaml:"lines_per_level"` // 0 keeps the level fixed
	MaxLevel      int `yaml:"max_level"`       // 0 means no cap
}

// GarbageAccept controls which incoming attacks are applied.
type GarbageAccept string

const (
	GarbageOff       GarbageAccept = "off"
	GarbageAll       GarbageAccept = "all"
	GarbagePreferred GarbageAccept = "preferred"
)

// GarbageConfig defines multiplayer garbage handling.
type GarbageConfig struct {
	Accept GarbageAccept `yaml:"accept"`
}

// DemoConfig defines the screensaver AI.
type DemoConfig struct {
	ThinkMs int `yaml:"think_ms"`
}

// Variant returns the settings for a rule set.
func (c BlocksConfig) Variant(v engine.Variant) VariantConfig {
	if v == engine.VariantTriomino {
		return c.Tritris
	}
	return c.Tetris
}

// Validate checks every section for values the engine would reject.
func (c BlocksConfig) Validate() error {
	if err := c.Tetris.validate(engine.VariantTetromino); err != nil {
		return fmt.Errorf("tetris: %w", err)
	}
	if err := c.Tritris.validate(engine.VariantTriomino); err != nil {
		return fmt.Errorf("tritris: %w", err)
	}
	switch c.Garbage.Accept {
	case GarbageOff, GarbageAll, GarbagePreferred:
	default:
		return fmt.Errorf("garbage: unknown accept mode %q", c.Garbage.Accept)
	}
	if c.Demo.ThinkMs < 0 {
		return fmt.Errorf("demo: think_ms must not be negative")
	}
	return nil
}

func (v VariantConfig) validate(variant engine.Variant) error {
	if v.Board.Width <= 0 || v.Board.Height <= 0 {
		return fmt.Errorf("board: %w: %dx%d", engine.ErrInvalidDimensions, v.Board.Width, v.Board.Height)
	}
	catalog, err := engine.CatalogFor(variant)
	if err != nil {
		return err
	}
	for _, id := range v.PieceSet() {
		if !catalog.Has(id) {
			return fmt.Errorf("pieces: %w %q", engine.ErrUnknownPiece, id)
		}
	}
	return v.ClockConfig().Validate()
}

// PieceSet returns the configured piece subset, or nil for the full catalog.
func (v VariantConfig) PieceSet() []engine.PieceID {
	if v.Pieces == "" {
		return nil
	}
	ids := make([]engine.PieceID, 0, len(v.Pieces))
	for i := 0; i < len(v.Pieces); i++ {
		ids = append(ids, engine.PieceID(v.Pieces[i]))
	}
	return ids
}

// EngineConfig converts the section into engine construction parameters.
func (v VariantConfig) EngineConfig(variant engine.Variant) engine.Config {
	return engine.Config{
		Width:   v.Board.Width,
		Height:  v.Board.Height,
		Variant: variant,
		Pieces:  v.PieceSet(),
	}
}

// ClockConfig converts the section into clock timings.
func (v VariantConfig) ClockConfig() engine.ClockConfig {
	return engine.ClockConfig{
		Level:            v.Difficulty.StartLevel,
		LinesPerLevel:    v.Difficulty.LinesPerLevel,
		MaxLevel:         v.Difficulty.MaxLevel,
		LockDelay:        time.Duration(v.Timing.LockDelayMs) * time.Millisecond,
		LockDelayEnabled: v.Timing.LockDelayEnabled,
		DAS:              time.Duration(v.Timing.DASMs) * time.Millisecond,
		ARR:              time.Duration(v.Timing.ARRMs) * time.Millisecond,
		SoftDropFactor:   v.Timing.SoftDropFactor,
	}
}
