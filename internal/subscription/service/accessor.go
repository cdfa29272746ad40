package service

import (
	"context"
	"sync"
	"time"

	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/config"
	"github.com/tourbase/tourbase/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type userState struct {
	record    *domain.Record
	token     string
	fetchedAt time.Time
	resolved  bool
	// started and applied track fetch generations so a slow response never
	// overwrites the result of a fetch started after it.
	started uint64
	applied uint64
}

type AccessorParams struct {
	fx.In

	Client domain.Client
	Clock  clock.Clock
	Cfg    config.Config
	Log    *zap.Logger
}

// Accessor caches the remote subscription per user. The cache is component
// local; it never feeds back into the session record used for plan gating.
type Accessor struct {
	client domain.Client
	clock  clock.Clock
	log    *zap.Logger
	ttl    time.Duration

	mu    sync.Mutex
	users map[string]*userState
}

func NewAccessor(p AccessorParams) *Accessor {
	return &Accessor{
		client: p.Client,
		clock:  p.Clock,
		log:    p.Log.Named("subscription.accessor"),
		ttl:    p.Cfg.SubscriptionTTL,
		users:  make(map[string]*userState),
	}
}

// Peek returns the cached record without touching the network. The second
// return is false while no fetch has ever settled for this user, which is the
// guard's loading state.
func (a *Accessor) Peek(userID string) (*domain.Record, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.users[userID]
	if !ok {
		return nil, false
	}
	return st.record, st.resolved
}

// Get returns the subscription for a user, fetching when the cache is cold or
// stale. A fetch failure falls back to the last resolved record if one exists.
func (a *Accessor) Get(ctx context.Context, userID, token string) (*domain.Record, error) {
	a.mu.Lock()
	st, ok := a.users[userID]
	if ok && st.resolved && a.clock.Now().Sub(st.fetchedAt) < a.ttl {
		rec := st.record
		st.token = token
		a.mu.Unlock()
		return rec, nil
	}
	a.mu.Unlock()

	rec, err := a.Refresh(ctx, userID, token)
	if err != nil {
		a.mu.Lock()
		defer a.mu.Unlock()
		if st, ok := a.users[userID]; ok && st.resolved {
			return st.record, nil
		}
		return nil, err
	}
	return rec, nil
}

// Refresh always hits the billing service. A result is dropped when a fetch
// started after this one, so rapid successive refreshes cannot apply stale
// data out of order.
func (a *Accessor) Refresh(ctx context.Context, userID, token string) (*domain.Record, error) {
	a.mu.Lock()
	st, ok := a.users[userID]
	if !ok {
		st = &userState{}
		a.users[userID] = st
	}
	st.token = token
	st.started++
	gen := st.started
	a.mu.Unlock()

	rec, err := a.client.Fetch(ctx, token)

	a.mu.Lock()
	defer a.mu.Unlock()
	if gen < st.started {
		a.log.Debug("dropping superseded subscription fetch",
			zap.String("user_id", userID),
			zap.Uint64("generation", gen),
			zap.Uint64("latest", st.started),
		)
		if st.resolved {
			return st.record, nil
		}
		return nil, err
	}
	if err != nil {
		a.log.Warn("subscription fetch failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	st.record = rec
	st.resolved = true
	st.fetchedAt = a.clock.Now()
	st.applied = gen
	return rec, nil
}

// Invalidate drops the cached record, forcing the next Get to fetch.
func (a *Accessor) Invalidate(userID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if st, ok := a.users[userID]; ok {
		st.fetchedAt = time.Time{}
	}
}

// Forget removes a user from the cache entirely (logout).
func (a *Accessor) Forget(userID string) {
	a.mu.Lock()
	delete(a.users, userID)
	a.mu.Unlock()
}

// tracked returns the users with a stored token for background refresh.
func (a *Accessor) tracked() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]string, len(a.users))
	for id, st := range a.users {
		if st.token != "" {
			out[id] = st.token
		}
	}
	return out
}
