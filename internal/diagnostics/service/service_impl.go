package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/config"
	"github.com/tourbase/tourbase/internal/diagnostics/domain"
	"github.com/tourbase/tourbase/internal/kvstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const keyPrefix = "diagnostics_results:"

type Params struct {
	fx.In

	Store   kvstore.Store
	Scoring *config.ScoringHolder
	Clock   clock.Clock
	GenID   *snowflake.Node
	Log     *zap.Logger
}

type Service struct {
	store   kvstore.Store
	scoring *config.ScoringHolder
	clock   clock.Clock
	genID   *snowflake.Node
	blocks  []domain.Block
	log     *zap.Logger
}

func New(p Params) domain.Service {
	return &Service{
		store:   p.Store,
		scoring: p.Scoring,
		clock:   p.Clock,
		genID:   p.GenID,
		blocks:  domain.DefaultBlocks,
		log:     p.Log.Named("diagnostics"),
	}
}

// Score computes the result for a completed questionnaire and prepends it to
// the owner's capped history.
func (s *Service) Score(ctx context.Context, ownerID string, answers map[string]int) (*domain.Result, error) {
	if err := s.validateAnswers(answers); err != nil {
		return nil, err
	}

	policy := s.scoring.Get()
	blockScores, totalScore, totalPercentage := scoreBlocks(answers, s.blocks, policy)

	result := domain.Result{
		ID:              s.genID.Generate().String(),
		Answers:         answers,
		TotalScore:      totalScore,
		TotalPercentage: totalPercentage,
		BlockScores:     blockScores,
		CreatedAt:       s.clock.Now(),
	}

	history := s.load(ctx, ownerID)
	history = append([]domain.Result{result}, history...)
	if len(history) > policy.HistoryLimit {
		history = history[:policy.HistoryLimit]
	}

	if err := s.persist(ctx, ownerID, history); err != nil {
		return nil, err
	}
	return &result, nil
}

// List returns the stored history, newest first. A missing or corrupt store
// yields an empty list, never an error.
func (s *Service) List(ctx context.Context, ownerID string) ([]domain.Result, error) {
	return s.load(ctx, ownerID), nil
}

func (s *Service) GetByID(ctx context.Context, ownerID, id string) (*domain.Result, error) {
	for _, result := range s.load(ctx, ownerID) {
		if result.ID == id {
			return &result, nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteByID removes a result from the history. Deleting an absent id is a
// no-op.
func (s *Service) DeleteByID(ctx context.Context, ownerID, id string) error {
	history := s.load(ctx, ownerID)
	filtered := history[:0:0]
	for _, result := range history {
		if result.ID != id {
			filtered = append(filtered, result)
		}
	}
	if len(filtered) == len(history) {
		return nil
	}
	return s.persist(ctx, ownerID, filtered)
}

func (s *Service) validateAnswers(answers map[string]int) error {
	if len(answers) == 0 {
		return domain.ErrInvalidAnswers
	}
	known := make(map[string]int)
	for _, block := range s.blocks {
		for _, q := range block.Questions {
			known[q.ID] = q.MaxValue
		}
	}
	for id, value := range answers {
		max, ok := known[id]
		if !ok || value < 0 || value > max {
			return domain.ErrInvalidAnswers
		}
	}
	return nil
}

func (s *Service) load(ctx context.Context, ownerID string) []domain.Result {
	raw, err := s.store.Get(ctx, keyPrefix+ownerID)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Warn("diagnostics history read failed", zap.String("owner_id", ownerID), zap.Error(err))
		return nil
	}

	var history []domain.Result
	if err := json.Unmarshal(raw, &history); err != nil {
		s.log.Warn("corrupt diagnostics history", zap.String("owner_id", ownerID), zap.Error(err))
		return nil
	}
	return history
}

func (s *Service) persist(ctx context.Context, ownerID string, history []domain.Result) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, keyPrefix+ownerID, raw)
}
