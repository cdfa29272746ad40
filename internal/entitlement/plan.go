// Package entitlement maps subscription plans to feature access.
package entitlement

import "strings"

// Plan is a subscription tier identifier. The set is closed; anything else
// normalizes to PlanNone.
type Plan string

const (
	PlanNone       Plan = "none"
	PlanStart      Plan = "start"
	PlanPro        Plan = "pro"
	PlanBusiness   Plan = "business"
	PlanEnterprise Plan = "enterprise"
)

// Plans lists every valid plan.
var Plans = []Plan{PlanNone, PlanStart, PlanPro, PlanBusiness, PlanEnterprise}

// ParsePlan normalizes a raw plan code. Unknown or empty input maps to
// PlanNone so downstream lookups can never miss.
func ParsePlan(raw string) Plan {
	switch Plan(strings.ToLower(strings.TrimSpace(raw))) {
	case PlanStart:
		return PlanStart
	case PlanPro:
		return PlanPro
	case PlanBusiness:
		return PlanBusiness
	case PlanEnterprise:
		return PlanEnterprise
	default:
		return PlanNone
	}
}

// DisplayName returns the marketing name for a plan.
func (p Plan) DisplayName() string {
	switch p {
	case PlanStart:
		return "START"
	case PlanPro:
		return "PRO"
	case PlanBusiness:
		return "BUSINESS"
	case PlanEnterprise:
		return "ENTERPRISE"
	default:
		return "No subscription"
	}
}

// Emoji returns the badge emoji for a plan.
func (p Plan) Emoji() string {
	switch p {
	case PlanStart:
		return "🟢"
	case PlanPro:
		return "🔵"
	case PlanBusiness:
		return "🟣"
	case PlanEnterprise:
		return "🔴"
	default:
		return "⚪"
	}
}
