// Package access decides whether a caller may use a gated capability.
package access

import (
	"context"
	"strings"

	"github.com/tourbase/tourbase/internal/clock"
	"github.com/tourbase/tourbase/internal/config"
	"github.com/tourbase/tourbase/internal/entitlement"
	subscriptiondomain "github.com/tourbase/tourbase/internal/subscription/domain"
	subscriptionservice "github.com/tourbase/tourbase/internal/subscription/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// State is the guard outcome. The terminal decision splits into granted
// and denied; bypass and loading short-circuit before it.
type State string

const (
	// StateBypass grants unconditionally in development/authoring contexts.
	StateBypass State = "bypass"
	// StateLoading means the remote subscription has not settled yet.
	StateLoading State = "loading"
	StateGranted State = "granted"
	StateDenied  State = "denied"
)

// Request carries the inputs for one gate evaluation.
type Request struct {
	UserID     string
	Token      string
	Host       string
	Capability entitlement.Capability
}

// Decision is the evaluated gate outcome.
type Decision struct {
	State  State              `json:"state"`
	Plan   entitlement.Plan   `json:"plan"`
	Limits entitlement.Limits `json:"limits"`
	Upsell *Upsell            `json:"upsell,omitempty"`
}

// Granted reports whether the protected content may be served.
func (d Decision) Granted() bool {
	return d.State == StateGranted || d.State == StateBypass
}

type Params struct {
	fx.In

	Cfg      config.Config
	Accessor *subscriptionservice.Accessor
	Clock    clock.Clock
	Log      *zap.Logger
}

// Guard evaluates capability access against the resolved entitlement matrix
// and the remote billing state.
type Guard struct {
	devMode      bool
	trustedHosts []string
	accessor     *subscriptionservice.Accessor
	clock        clock.Clock
	log          *zap.Logger
}

func New(p Params) *Guard {
	return &Guard{
		devMode:      p.Cfg.DevMode,
		trustedHosts: p.Cfg.TrustedHosts,
		accessor:     p.Accessor,
		clock:        p.Clock,
		log:          p.Log.Named("access.guard"),
	}
}

// Evaluate runs the gate states in order; the first match wins.
func (g *Guard) Evaluate(ctx context.Context, req Request) Decision {
	// 1. Bypass for development and authoring/preview contexts.
	if g.devMode || g.trustedHost(req.Host) {
		return Decision{State: StateBypass, Plan: entitlement.PlanNone, Limits: entitlement.Resolve(entitlement.PlanNone)}
	}

	// 2. Loading until the remote record settles. A failed fetch with no
	// prior resolved record stays here; the next request retries.
	rec, err := g.accessor.Get(ctx, req.UserID, req.Token)
	if err != nil {
		if peeked, resolved := g.accessor.Peek(req.UserID); resolved {
			rec = peeked
		} else {
			return Decision{State: StateLoading, Plan: entitlement.PlanNone, Limits: entitlement.Resolve(entitlement.PlanNone)}
		}
	}

	// 3. Terminal decision from plan matrix and billing-period state.
	return g.decide(rec, req)
}

func (g *Guard) decide(rec *subscriptiondomain.Record, req Request) Decision {
	now := g.clock.Now()

	plan := entitlement.PlanNone
	var status subscriptiondomain.Status
	var periodEnd string
	cancelAtPeriodEnd := false
	if rec != nil {
		plan = entitlement.ParsePlan(rec.PlanCode)
		status = rec.Status
		cancelAtPeriodEnd = rec.CancelAtPeriodEnd
		if rec.CurrentPeriodEnd != nil {
			periodEnd = rec.CurrentPeriodEnd.Format("2006-01-02T15:04:05Z07:00")
		}
	}
	limits := entitlement.Resolve(plan)

	// Active grants regardless of cancel_at_period_end: cancelling at
	// renewal does not revoke current-period access.
	isActive := status.Active()
	isCancelledButValid := status.Canceled() &&
		rec != nil && rec.CurrentPeriodEnd != nil && rec.CurrentPeriodEnd.After(now)

	hasFeature := limits.Allows(req.Capability)
	hasAccess := hasFeature && (isActive || isCancelledButValid)

	// Diagnostic trace of every input used; must never affect the outcome.
	g.log.Debug("access decision",
		zap.String("user_id", req.UserID),
		zap.String("capability", string(req.Capability)),
		zap.String("plan", string(plan)),
		zap.String("status", string(status)),
		zap.Bool("cancel_at_period_end", cancelAtPeriodEnd),
		zap.String("current_period_end", periodEnd),
		zap.Bool("is_active", isActive),
		zap.Bool("is_cancelled_but_valid", isCancelledButValid),
		zap.Bool("has_feature_access", hasFeature),
		zap.Bool("has_access", hasAccess),
	)

	if hasAccess {
		return Decision{State: StateGranted, Plan: plan, Limits: limits}
	}
	return Decision{State: StateDenied, Plan: plan, Limits: limits, Upsell: NewUpsell(plan, req.Capability)}
}

func (g *Guard) trustedHost(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	for _, trusted := range g.trustedHosts {
		if host == trusted || strings.HasSuffix(host, "."+trusted) {
			return true
		}
	}
	return false
}

// Module wires the access guard.
var Module = fx.Module("access",
	fx.Provide(New),
)
