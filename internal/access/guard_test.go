package access

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/config"
	"github.com/tourbase/tourbase/internal/entitlement"
	subscriptiondomain "github.com/tourbase/tourbase/internal/subscription/domain"
	subscriptionservice "github.com/tourbase/tourbase/internal/subscription/service"
	"go.uber.org/zap"
)

type stubClient struct {
	mu     sync.Mutex
	record *subscriptiondomain.Record
	err    error
}

func (s *stubClient) Fetch(ctx context.Context, token string) (*subscriptiondomain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record, s.err
}

func (s *stubClient) Cancel(ctx context.Context, token, id string) error { return nil }

func newGuard(t *testing.T, rec *subscriptiondomain.Record, fetchErr error, cfg config.Config) (*Guard, *clock.FakeClock) {
	t.Helper()
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	if cfg.SubscriptionTTL == 0 {
		cfg.SubscriptionTTL = time.Minute
	}
	accessor := subscriptionservice.NewAccessor(subscriptionservice.AccessorParams{
		Client: &stubClient{record: rec, err: fetchErr},
		Clock:  fake,
		Cfg:    cfg,
		Log:    zap.NewNop(),
	})
	return New(Params{Cfg: cfg, Accessor: accessor, Clock: fake, Log: zap.NewNop()}), fake
}

func evaluate(g *Guard, capability entitlement.Capability) Decision {
	return g.Evaluate(context.Background(), Request{
		UserID:     "u1",
		Token:      "tok",
		Host:       "app.example.com",
		Capability: capability,
	})
}

func TestBypassStates(t *testing.T) {
	g, _ := newGuard(t, nil, nil, config.Config{DevMode: true})
	d := evaluate(g, entitlement.CapabilityClub)
	assert.Equal(t, StateBypass, d.State)
	assert.True(t, d.Granted())

	g, _ = newGuard(t, nil, nil, config.Config{TrustedHosts: []string{"localhost", "preview.dev"}})
	d = g.Evaluate(context.Background(), Request{UserID: "u1", Host: "localhost:3000", Capability: entitlement.CapabilityClub})
	assert.Equal(t, StateBypass, d.State)

	d = g.Evaluate(context.Background(), Request{UserID: "u1", Host: "mysite.preview.dev", Capability: entitlement.CapabilityClub})
	assert.Equal(t, StateBypass, d.State)
}

func TestLoadingWhileUnresolved(t *testing.T) {
	g, _ := newGuard(t, nil, errors.New("network down"), config.Config{})
	d := evaluate(g, entitlement.CapabilityCalendar)
	assert.Equal(t, StateLoading, d.State)
	assert.False(t, d.Granted())
}

func TestActiveProGrantsClub(t *testing.T) {
	g, _ := newGuard(t, &subscriptiondomain.Record{
		ID: "sub_1", PlanCode: "pro", Status: subscriptiondomain.StatusActive, CancelAtPeriodEnd: true,
	}, nil, config.Config{})

	d := evaluate(g, entitlement.CapabilityClub)
	assert.Equal(t, StateGranted, d.State)
	assert.Equal(t, entitlement.PlanPro, d.Plan)
	assert.Nil(t, d.Upsell)
}

func TestActiveNonePlanDeniedForCalendar(t *testing.T) {
	// Matrix flag false overrides an active status.
	g, _ := newGuard(t, &subscriptiondomain.Record{
		ID: "sub_1", PlanCode: "none", Status: subscriptiondomain.StatusActive,
	}, nil, config.Config{})

	d := evaluate(g, entitlement.CapabilityCalendar)
	assert.Equal(t, StateDenied, d.State)
	require.NotNil(t, d.Upsell)
	assert.Equal(t, entitlement.PlanNone, d.Upsell.CurrentPlan)
	assert.NotEmpty(t, d.Upsell.Offers)
}

func TestCancelledWithinPeriodGrants(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	g, _ := newGuard(t, &subscriptiondomain.Record{
		ID: "sub_1", PlanCode: "start", Status: subscriptiondomain.StatusCancelled, CurrentPeriodEnd: &future,
	}, nil, config.Config{})
	d := evaluate(g, entitlement.CapabilityDiagnostics)
	assert.Equal(t, StateGranted, d.State)

	g, _ = newGuard(t, &subscriptiondomain.Record{
		ID: "sub_1", PlanCode: "start", Status: subscriptiondomain.StatusCancelled, CurrentPeriodEnd: &past,
	}, nil, config.Config{})
	d = evaluate(g, entitlement.CapabilityDiagnostics)
	assert.Equal(t, StateDenied, d.State)
}

func TestCanceledSpellingAccepted(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	g, _ := newGuard(t, &subscriptiondomain.Record{
		ID: "sub_1", PlanCode: "pro", Status: subscriptiondomain.StatusCanceled, CurrentPeriodEnd: &future,
	}, nil, config.Config{})

	d := evaluate(g, entitlement.CapabilityClub)
	assert.Equal(t, StateGranted, d.State)
}

func TestCancelledWithoutPeriodEndDenied(t *testing.T) {
	g, _ := newGuard(t, &subscriptiondomain.Record{
		ID: "sub_1", PlanCode: "pro", Status: subscriptiondomain.StatusCancelled,
	}, nil, config.Config{})

	d := evaluate(g, entitlement.CapabilityClub)
	assert.Equal(t, StateDenied, d.State)
}

func TestNoSubscriptionDenied(t *testing.T) {
	g, _ := newGuard(t, nil, nil, config.Config{})
	d := evaluate(g, entitlement.CapabilityCalendar)
	assert.Equal(t, StateDenied, d.State)
	assert.Equal(t, entitlement.PlanNone, d.Plan)
}

func TestPendingStatusDenied(t *testing.T) {
	g, _ := newGuard(t, &subscriptiondomain.Record{
		ID: "sub_1", PlanCode: "pro", Status: subscriptiondomain.StatusPending,
	}, nil, config.Config{})

	d := evaluate(g, entitlement.CapabilityClub)
	assert.Equal(t, StateDenied, d.State)
}
