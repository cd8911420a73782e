package main

import (
	"fmt"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kurobon/gitquest/internal/config"
	"github.com/kurobon/gitquest/internal/puzzle"
)

var (
	generateDate string
	generateTier string
	generateSeed string
)

// generateCmd is the daily batch job. A generation failure is fatal for the
// day and must exit non-zero so the scheduler alerts, not fall back to a
// default puzzle.
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and store a solver-verified puzzle",
	RunE: func(cmd *cobra.Command, args []string) error {
		tiers, err := loadTiers()
		if err != nil {
			return err
		}
		gen := puzzle.NewGenerator(tiers, logger)

		var p *puzzle.Puzzle
		if generateSeed != "" {
			p, err = gen.GenerateArchive(generateSeed, generateTier)
		} else {
			date := time.Now()
			if generateDate != "" {
				date, err = time.Parse("2006-01-02", generateDate)
				if err != nil {
					return fmt.Errorf("invalid --date: %w", err)
				}
			}
			p, err = gen.GenerateDaily(date, generateTier)
		}
		if err != nil {
			logger.Error("puzzle generation failed", zap.Error(err))
			return err
		}

		store := puzzle.NewStore(osfs.New(config.Global.DataRoot), "puzzles")
		if err := store.Save(p); err != nil {
			return err
		}

		logger.Info("puzzle stored",
			zap.String("id", p.ID),
			zap.String("tier", p.Tier),
			zap.Int("par", p.ParScore),
			zap.Int("files", len(p.FileTargets)))
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateDate, "date", "", "target date (YYYY-MM-DD, default today)")
	generateCmd.Flags().StringVar(&generateTier, "tier", "medium", "difficulty tier")
	generateCmd.Flags().StringVar(&generateSeed, "seed", "", "generate an archive puzzle from this seed instead of a date")
}

func loadTiers() ([]puzzle.Tier, error) {
	if config.Global.TierFile == "" {
		return puzzle.DefaultTiers(), nil
	}
	return puzzle.LoadTiers(config.Global.TierFile)
}
