package access

import "github.com/tourbase/tourbase/internal/entitlement"

// PlanOffer is one row of the upsell plan comparison.
type PlanOffer struct {
	Plan         entitlement.Plan `json:"plan"`
	Name         string           `json:"name"`
	Emoji        string           `json:"emoji"`
	MonthlyPrice int              `json:"monthly_price"`
	Popular      bool             `json:"popular,omitempty"`
}

// Upsell is the denied-state payload: the caller's current plan plus the
// purchasable alternatives.
type Upsell struct {
	CurrentPlan  entitlement.Plan       `json:"current_plan"`
	CurrentName  string                 `json:"current_name"`
	CurrentEmoji string                 `json:"current_emoji"`
	Capability   entitlement.Capability `json:"capability"`
	Offers       []PlanOffer            `json:"offers"`
}

func NewUpsell(current entitlement.Plan, cap entitlement.Capability) *Upsell {
	return &Upsell{
		CurrentPlan:  current,
		CurrentName:  current.DisplayName(),
		CurrentEmoji: current.Emoji(),
		Capability:   cap,
		Offers: []PlanOffer{
			{Plan: entitlement.PlanStart, Name: entitlement.PlanStart.DisplayName(), Emoji: entitlement.PlanStart.Emoji(), MonthlyPrice: 2490},
			{Plan: entitlement.PlanPro, Name: entitlement.PlanPro.DisplayName(), Emoji: entitlement.PlanPro.Emoji(), MonthlyPrice: 5990, Popular: true},
			{Plan: entitlement.PlanBusiness, Name: entitlement.PlanBusiness.DisplayName(), Emoji: entitlement.PlanBusiness.Emoji(), MonthlyPrice: 9990},
		},
	}
}
