// Package domain contains the diagnostics questionnaire model.
package domain

import (
	"context"
	"errors"
	"time"
)

// Level buckets a percentage score.
type Level string

const (
	LevelCritical Level = "critical"
	LevelMedium   Level = "medium"
	LevelGood     Level = "good"
)

// Question is one questionnaire item. Every option value must be within
// [0, MaxValue].
type Question struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	MaxValue int    `json:"max_value"`
}

// Block is a named group of questions scored together.
type Block struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Questions   []Question `json:"questions"`
}

// MaxScore is the sum of the block's per-question maxima.
func (b Block) MaxScore() int {
	total := 0
	for _, q := range b.Questions {
		total += q.MaxValue
	}
	return total
}

// BlockScore is one scored block inside a result.
type BlockScore struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Score      int     `json:"score"`
	MaxScore   int     `json:"maxScore"`
	Percentage float64 `json:"percentage"`
	Level      Level   `json:"level"`
	Icon       string  `json:"icon"`
}

// Result is a completed diagnostics run. Results are immutable once saved.
type Result struct {
	ID              string         `json:"id"`
	Answers         map[string]int `json:"answers"`
	TotalScore      int            `json:"totalScore"`
	TotalPercentage float64        `json:"totalPercentage"`
	BlockScores     []BlockScore   `json:"blockScores"`
	CreatedAt       time.Time      `json:"createdAt"`
}

// Service scores questionnaires and manages the result history.
type Service interface {
	Score(ctx context.Context, ownerID string, answers map[string]int) (*Result, error)
	List(ctx context.Context, ownerID string) ([]Result, error)
	GetByID(ctx context.Context, ownerID, id string) (*Result, error)
	DeleteByID(ctx context.Context, ownerID, id string) error
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidAnswers = errors.New("invalid_answers")
)
