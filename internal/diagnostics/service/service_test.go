package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/config"
	"github.com/tourbase/tourbase/internal/diagnostics/domain"
	"github.com/tourbase/tourbase/internal/kvstore"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (domain.Service, kvstore.Store, *clock.FakeClock) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	holder, err := config.NewStaticScoringHolder(config.DefaultScoringConfig())
	require.NoError(t, err)

	svc := New(Params{
		Store:   store,
		Scoring: holder,
		Clock:   fake,
		GenID:   node,
		Log:     zap.NewNop(),
	})
	return svc, store, fake
}

// allAnswers fills every question with the same value.
func allAnswers(value int) map[string]int {
	answers := make(map[string]int)
	for _, block := range domain.DefaultBlocks {
		for _, q := range block.Questions {
			answers[q.ID] = value
		}
	}
	return answers
}

func TestScoreComputesBlocksAndTotals(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	answers := allAnswers(1) // 5/10 per block → 50%
	result, err := svc.Score(ctx, "owner", answers)
	require.NoError(t, err)

	assert.Len(t, result.BlockScores, len(domain.DefaultBlocks))
	for _, bs := range result.BlockScores {
		assert.Equal(t, 5, bs.Score)
		assert.Equal(t, 10, bs.MaxScore)
		assert.Equal(t, 50.0, bs.Percentage)
		assert.Equal(t, domain.LevelMedium, bs.Level)
	}
	assert.Equal(t, 30, result.TotalScore)
	assert.Equal(t, 50.0, result.TotalPercentage)
	assert.NotEmpty(t, result.ID)
	assert.False(t, result.CreatedAt.IsZero())
}

func TestScoreLevelBands(t *testing.T) {
	// Pins the canonical threshold table: <40 critical, <75 medium, else good.
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	critical, err := svc.Score(ctx, "owner", allAnswers(0))
	require.NoError(t, err)
	for _, bs := range critical.BlockScores {
		assert.Equal(t, domain.LevelCritical, bs.Level)
	}

	good, err := svc.Score(ctx, "owner", allAnswers(2))
	require.NoError(t, err)
	for _, bs := range good.BlockScores {
		assert.Equal(t, domain.LevelGood, bs.Level)
	}
	assert.Equal(t, 100.0, good.TotalPercentage)
}

func TestScoreBoundaryValues(t *testing.T) {
	holder, err := config.NewStaticScoringHolder(config.DefaultScoringConfig())
	require.NoError(t, err)
	policy := holder.Get()

	assert.Equal(t, domain.LevelCritical, levelFor(39.9, policy))
	assert.Equal(t, domain.LevelMedium, levelFor(40, policy))
	assert.Equal(t, domain.LevelMedium, levelFor(74.9, policy))
	assert.Equal(t, domain.LevelGood, levelFor(75, policy))
}

func TestScoreRejectsInvalidAnswers(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Score(ctx, "owner", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidAnswers)

	_, err = svc.Score(ctx, "owner", map[string]int{"q9_9": 1})
	assert.ErrorIs(t, err, domain.ErrInvalidAnswers)

	_, err = svc.Score(ctx, "owner", map[string]int{"q1_1": 3})
	assert.ErrorIs(t, err, domain.ErrInvalidAnswers)
}

func TestHistoryCapAndOrder(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 11; i++ {
		result, err := svc.Score(ctx, "owner", allAnswers(1))
		require.NoError(t, err)
		ids = append(ids, result.ID)
		fake.Advance(time.Minute)
	}

	history, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, history, 10, "the eleventh save evicts the oldest")

	// Newest first; the very first result fell off the end.
	assert.Equal(t, ids[10], history[0].ID)
	assert.Equal(t, ids[1], history[9].ID)
	for _, result := range history {
		assert.NotEqual(t, ids[0], result.ID)
	}
}

func TestGetByID(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		result, err := svc.Score(ctx, "owner", allAnswers(1))
		require.NoError(t, err)
		ids = append(ids, result.ID)
		fake.Advance(time.Second)
	}

	middle, err := svc.GetByID(ctx, "owner", ids[1])
	require.NoError(t, err)
	assert.Equal(t, ids[1], middle.ID)
	assert.Equal(t, 30, middle.TotalScore)

	_, err = svc.GetByID(ctx, "owner", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteByID(t *testing.T) {
	svc, _, fake := newTestService(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		result, err := svc.Score(ctx, "owner", allAnswers(2))
		require.NoError(t, err)
		ids = append(ids, result.ID)
		fake.Advance(time.Second)
	}

	require.NoError(t, svc.DeleteByID(ctx, "owner", ids[1]))
	history, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, result := range history {
		assert.NotEqual(t, ids[1], result.ID)
	}

	// Absent id is a no-op.
	require.NoError(t, svc.DeleteByID(ctx, "owner", "missing"))
	history, err = svc.List(ctx, "owner")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestCorruptHistoryTreatedAsEmpty(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "diagnostics_results:owner", []byte("not json")))

	history, err := svc.List(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, history)

	// Saving over a corrupt store starts a fresh history.
	result, err := svc.Score(ctx, "owner", allAnswers(1))
	require.NoError(t, err)
	history, err = svc.List(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, result.ID, history[0].ID)
}

func TestHistoriesAreOwnerScoped(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Score(ctx, "a", allAnswers(1))
	require.NoError(t, err)

	history, err := svc.List(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, history)
}
