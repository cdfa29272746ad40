// Package session holds the locally persisted user session and derives the
// effective plan from it.
package session

import (
	"time"

	"github.com/tourbase/tourbase/internal/entitlement"
)

// Record is the client session written at login and cleared at logout.
type Record struct {
	UserID    string           `json:"user_id"`
	Email     string           `json:"email"`
	Plan      entitlement.Plan `json:"subscription_plan"`
	ExpiresAt *time.Time       `json:"subscription_expires_at,omitempty"`
	AutoRenew bool             `json:"auto_renew,omitempty"`
}

// EffectivePlan applies time-based expiry to the stored plan: a non-none plan
// with an expiry strictly in the past collapses to none. A record without an
// expiry keeps its stored plan.
func EffectivePlan(rec Record, now time.Time) entitlement.Plan {
	plan := entitlement.ParsePlan(string(rec.Plan))
	if plan == entitlement.PlanNone {
		return entitlement.PlanNone
	}
	if rec.ExpiresAt != nil && rec.ExpiresAt.Before(now) {
		return entitlement.PlanNone
	}
	return plan
}
