package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/config"
	"go.uber.org/zap"
)

func TestRefresherTicksTrackedUsers(t *testing.T) {
	fake := clock.NewFakeClock(time.Now())
	client := &mockClient{record: activeRecord("pro")}
	accessor := newTestAccessor(client, fake)

	_, err := accessor.Get(context.Background(), "u1", "tok")
	require.NoError(t, err)
	before := client.callCount()

	r := NewRefresher(accessor, config.Config{RefreshInterval: 5 * time.Millisecond}, zap.NewNop())
	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool {
		return client.callCount() > before
	}, time.Second, time.Millisecond)
}

func TestRefresherStopCancelsLoop(t *testing.T) {
	fake := clock.NewFakeClock(time.Now())
	client := &mockClient{record: activeRecord("pro")}
	accessor := newTestAccessor(client, fake)

	r := NewRefresher(accessor, config.Config{RefreshInterval: 5 * time.Millisecond}, zap.NewNop())
	r.Start()
	r.Stop()

	calls := client.callCount()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, client.callCount(), "no fetches after Stop")
}
