package service

import (
	"math"

	"github.com/tourbase/tourbase/internal/config"
	"github.com/tourbase/tourbase/internal/diagnostics/domain"
)

// levelFor applies the single banding table: below the critical bound is
// critical, below the medium bound is medium, everything else is good.
func levelFor(percentage float64, policy config.ScoringConfig) domain.Level {
	switch {
	case percentage < policy.CriticalBelow:
		return domain.LevelCritical
	case percentage < policy.MediumBelow:
		return domain.LevelMedium
	default:
		return domain.LevelGood
	}
}

// scoreBlocks computes per-block and aggregate scores. Missing answers count
// as zero; a block with zero max scores 0%.
func scoreBlocks(answers map[string]int, blocks []domain.Block, policy config.ScoringConfig) ([]domain.BlockScore, int, float64) {
	scores := make([]domain.BlockScore, 0, len(blocks))
	totalScore := 0
	totalMax := 0

	for _, block := range blocks {
		raw := 0
		for _, q := range block.Questions {
			raw += answers[q.ID]
		}
		max := block.MaxScore()

		percentage := 0.0
		if max > 0 {
			percentage = round1(float64(raw) / float64(max) * 100)
		}

		scores = append(scores, domain.BlockScore{
			ID:         block.ID,
			Title:      block.Title,
			Score:      raw,
			MaxScore:   max,
			Percentage: percentage,
			Level:      levelFor(percentage, policy),
			Icon:       block.Icon,
		})

		totalScore += raw
		totalMax += max
	}

	totalPercentage := 0.0
	if totalMax > 0 {
		totalPercentage = round1(float64(totalScore) / float64(totalMax) * 100)
	}
	return scores, totalScore, totalPercentage
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
