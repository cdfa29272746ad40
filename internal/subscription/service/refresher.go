package service

import (
	"context"
	"time"

	"github.com/tourbase/tourbase/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Refresher re-fetches tracked subscriptions on a fixed interval. The loop is
// owned by the fx lifecycle: stopping the app cancels its context, so no
// response can be applied after teardown.
type Refresher struct {
	accessor *Accessor
	log      *zap.Logger
	interval time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewRefresher(accessor *Accessor, cfg config.Config, log *zap.Logger) *Refresher {
	return &Refresher{
		accessor: accessor,
		log:      log.Named("subscription.refresher"),
		interval: cfg.RefreshInterval,
	}
}

func (r *Refresher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.run(ctx)
}

func (r *Refresher) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *Refresher) tick(ctx context.Context) {
	for userID, token := range r.accessor.tracked() {
		if ctx.Err() != nil {
			return
		}
		if _, err := r.accessor.Refresh(ctx, userID, token); err != nil {
			// Failures stay cached-stale; the next tick or a manual
			// refresh retries.
			r.log.Debug("background refresh failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
}

// RegisterRefresher ties the refresh loop to the application lifecycle.
func RegisterRefresher(lc fx.Lifecycle, r *Refresher) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			r.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			r.Stop()
			return nil
		},
	})
}
