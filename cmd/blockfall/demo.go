package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/games/blocks"
	"github.com/vovakirdan/blockfall/internal/games/blocks/engine"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/registry"
)

var (
	flagHeadless bool
	flagTicks    int
	flagVariant  string
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Watch the AI play",
	Long: `Run the screensaver demo: a random AI plays and restarts after every
game over.

With --headless the demo runs without a terminal UI as fast as it can
and logs each finished game, which is handy for soak-testing rule and
config changes.

Examples:
  blockfall demo
  blockfall demo --headless --ticks 100000 --seed 7
  blockfall demo --headless --variant tritris`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().BoolVar(&flagHeadless, "headless", false, "Run without the UI and log results")
	demoCmd.Flags().IntVar(&flagTicks, "ticks", 36000, "Ticks to simulate in headless mode")
	demoCmd.Flags().StringVar(&flagVariant, "variant", "tetris", "Rule set: tetris or tritris")
}

func runDemo(_ *cobra.Command, _ []string) error {
	if !flagHeadless {
		game, err := registry.Create("tetris_demo")
		if err != nil {
			return err
		}
		return tui.Run(game, nil, runtimeConfig())
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "demo",
	})

	variant, err := engine.ParseVariant(flagVariant)
	if err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Warn("using default config", "error", err)
		cfg = config.DefaultBlocksConfig()
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := blocks.NewDemoSession(cfg, variant, seed)
	if err != nil {
		return fmt.Errorf("starting demo: %w", err)
	}

	fps := max(flagFPS, 1)
	dt := time.Second / time.Duration(fps)
	logger.Info("demo started", "variant", variant, "seed", seed, "ticks", flagTicks, "fps", fps)

	last := session.Stats()
	for tick := 0; tick < flagTicks; tick++ {
		games := session.Games()
		if _, err := session.Step(dt); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}
		if session.Games() != games {
			logger.Info("game over", "game", games, "score", last.Score,
				"lines", last.Lines, "level", last.Level, "pieces", last.Pieces)
		}
		last = session.Stats()
	}

	logger.Info("demo finished", "games", session.Games(), "best_lines", session.BestLines(),
		"simulated", time.Duration(flagTicks)*dt)
	return nil
}
