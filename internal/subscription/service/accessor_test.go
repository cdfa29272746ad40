package service

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
	"github.com/tourbase/tourbase/internal/subscription/domain"
	"go.uber.org/zap"
)

// Manual mock: fixed responses plus an optional gate so tests
// can hold a fetch open.
type mockClient struct {
	mu      sync.Mutex
	record  *domain.Record
	err     error
	calls   int
	gate    chan struct{}
	cancels []string
}

func (m *mockClient) Fetch(ctx context.Context, token string) (*domain.Record, error) {
	m.mu.Lock()
	m.calls++
	gate := m.gate
	rec, err := m.record, m.err
	m.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return rec, err
}

func (m *mockClient) Cancel(ctx context.Context, token, subscriptionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancels = append(m.cancels, subscriptionID)
	return m.err
}

func (m *mockClient) set(rec *domain.Record, err error) {
	m.mu.Lock()
	m.record, m.err = rec, err
	m.mu.Unlock()
}

func (m *mockClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func newTestAccessor(client domain.Client, fake *clock.FakeClock) *Accessor {
	return NewAccessor(AccessorParams{
		Client: client,
		Clock:  fake,
		Cfg:    config.Config{SubscriptionTTL: 45 * time.Second},
		Log:    zap.NewNop(),
	})
}

func activeRecord(plan string) *domain.Record {
	return &domain.Record{ID: "sub_1", PlanCode: plan, Status: domain.StatusActive}
}

func TestGetCachesWithinTTL(t *testing.T) {
	fake := clock.NewFakeClock(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	client := &mockClient{record: activeRecord("pro")}
	accessor := newTestAccessor(client, fake)
	ctx := context.Background()

	rec, err := accessor.Get(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "pro", rec.PlanCode)
	assert.Equal(t, 1, client.callCount())

	_, err = accessor.Get(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.Equal(t, 1, client.callCount(), "fresh cache must not refetch")

	fake.Advance(time.Minute)
	_, err = accessor.Get(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, client.callCount(), "stale cache refetches")
}

func TestPeekLoadingUntilFirstSettle(t *testing.T) {
	fake := clock.NewFakeClock(time.Now())
	client := &mockClient{record: activeRecord("start")}
	accessor := newTestAccessor(client, fake)

	_, resolved := accessor.Peek("u1")
	assert.False(t, resolved)

	_, err := accessor.Get(context.Background(), "u1", "tok")
	require.NoError(t, err)

	rec, resolved := accessor.Peek("u1")
	assert.True(t, resolved)
	assert.Equal(t, "start", rec.PlanCode)
}

func TestFetchFailureFallsBackToLastResolved(t *testing.T) {
	fake := clock.NewFakeClock(time.Now())
	client := &mockClient{record: activeRecord("pro")}
	accessor := newTestAccessor(client, fake)
	ctx := context.Background()

	_, err := accessor.Get(ctx, "u1", "tok")
	require.NoError(t, err)

	client.set(nil, errors.New("boom"))
	fake.Advance(time.Minute)

	rec, err := accessor.Get(ctx, "u1", "tok")
	require.NoError(t, err, "stale record is served when refresh fails")
	assert.Equal(t, "pro", rec.PlanCode)

	// A user with no resolved record surfaces the error.
	_, err = accessor.Get(ctx, "u2", "tok")
	assert.Error(t, err)
	_, resolved := accessor.Peek("u2")
	assert.False(t, resolved)
}

func TestSlowFetchDoesNotOverwriteNewer(t *testing.T) {
	fake := clock.NewFakeClock(time.Now())
	gate := make(chan struct{})
	client := &mockClient{record: activeRecord("start"), gate: gate}
	accessor := newTestAccessor(client, fake)
	ctx := context.Background()

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = accessor.Refresh(ctx, "u1", "tok")
	}()

	// Wait for the first fetch to be in flight, then complete a second one.
	require.Eventually(t, func() bool { return client.callCount() == 1 }, time.Second, time.Millisecond)

	client.mu.Lock()
	client.gate = nil
	client.record = activeRecord("business")
	client.mu.Unlock()

	rec, err := accessor.Refresh(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.Equal(t, "business", rec.PlanCode)

	// Release the slow first fetch; its older result must be dropped.
	close(gate)
	<-firstDone

	rec, resolved := accessor.Peek("u1")
	require.True(t, resolved)
	assert.Equal(t, "business", rec.PlanCode)
}

func TestForgetAndInvalidate(t *testing.T) {
	fake := clock.NewFakeClock(time.Now())
	client := &mockClient{record: activeRecord("pro")}
	accessor := newTestAccessor(client, fake)
	ctx := context.Background()

	_, err := accessor.Get(ctx, "u1", "tok")
	require.NoError(t, err)

	accessor.Invalidate("u1")
	_, err = accessor.Get(ctx, "u1", "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, client.callCount())

	accessor.Forget("u1")
	_, resolved := accessor.Peek("u1")
	assert.False(t, resolved)
}

func TestNilSubscriptionResolves(t *testing.T) {
	// A user without a subscription still settles the loading state.
	fake := clock.NewFakeClock(time.Now())
	client := &mockClient{record: nil}
	accessor := newTestAccessor(client, fake)

	rec, err := accessor.Get(context.Background(), "u1", "tok")
	require.NoError(t, err)
	assert.Nil(t, rec)

	rec, resolved := accessor.Peek("u1")
	assert.True(t, resolved)
	assert.Nil(t, rec)
}
