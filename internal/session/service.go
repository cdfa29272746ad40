package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/tourbase/tourbase/internal/cache"
	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/entitlement"
	"github.com/tourbase/tourbase/internal/kvstore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	keyPrefix = "session:"
	cacheTTL  = 15 * time.Second
)

type Params struct {
	fx.In

	Store kvstore.Store
	Clock clock.Clock
	Log   *zap.Logger
}

// Service reads and writes session records through the key/value store.
// Reads go through a short-lived cache so hot gate checks skip the store.
type Service struct {
	store kvstore.Store
	clock clock.Clock
	cache cache.Cache[string, Record]
	log   *zap.Logger
}

func New(p Params) *Service {
	return &Service{
		store: p.Store,
		clock: p.Clock,
		cache: cache.NewTTLCache[string, Record](),
		log:   p.Log.Named("session"),
	}
}

// Current returns the stored session for a user. A missing or corrupt record
// resolves to an anonymous session (plan none); callers never see an error
// for those cases.
func (s *Service) Current(ctx context.Context, userID string) Record {
	if rec, ok := s.cache.Get(userID); ok {
		return rec
	}

	raw, err := s.store.Get(ctx, keyPrefix+userID)
	if errors.Is(err, kvstore.ErrNotFound) {
		return Record{UserID: userID, Plan: entitlement.PlanNone}
	}
	if err != nil {
		s.log.Warn("session read failed", zap.String("user_id", userID), zap.Error(err))
		return Record{UserID: userID, Plan: entitlement.PlanNone}
	}

	var rec Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn("corrupt session payload", zap.String("user_id", userID), zap.Error(err))
		return Record{UserID: userID, Plan: entitlement.PlanNone}
	}
	rec.UserID = userID
	rec.Plan = entitlement.ParsePlan(string(rec.Plan))
	s.cache.Set(userID, rec, cacheTTL)
	return rec
}

// EffectivePlan derives the plan for gating, applying expiry against the
// injected clock.
func (s *Service) EffectivePlan(ctx context.Context, userID string) entitlement.Plan {
	return EffectivePlan(s.Current(ctx, userID), s.clock.Now())
}

// Put stores the session record at login.
func (s *Service) Put(ctx context.Context, rec Record) error {
	if rec.UserID == "" {
		return errors.New("session: empty user id")
	}
	rec.Plan = entitlement.ParsePlan(string(rec.Plan))
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, keyPrefix+rec.UserID, raw); err != nil {
		return err
	}
	s.cache.Delete(rec.UserID)
	return nil
}

// Clear removes the session record at logout.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if err := s.store.Delete(ctx, keyPrefix+userID); err != nil {
		return err
	}
	s.cache.Delete(userID)
	return nil
}

// Module wires the session service.
var Module = fx.Module("session",
	fx.Provide(New),
)
