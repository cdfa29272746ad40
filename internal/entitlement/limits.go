package entitlement

import "strings"

// UnlimitedUnits is the sentinel MaxUnits value meaning no unit cap.
const UnlimitedUnits = 999

// Capability names a gated feature area.
type Capability string

const (
	CapabilityCalendar    Capability = "calendar"
	CapabilityDiagnostics Capability = "diagnostics"
	CapabilityClub        Capability = "club"
	CapabilitySimulator   Capability = "simulator"
)

// ParseCapability normalizes a raw capability name.
func ParseCapability(raw string) (Capability, bool) {
	switch Capability(strings.ToLower(strings.TrimSpace(raw))) {
	case CapabilityCalendar:
		return CapabilityCalendar, true
	case CapabilityDiagnostics:
		return CapabilityDiagnostics, true
	case CapabilityClub:
		return CapabilityClub, true
	case CapabilitySimulator:
		return CapabilitySimulator, true
	default:
		return "", false
	}
}

// Limits is the per-plan entitlement row.
type Limits struct {
	MaxUnits    int  `json:"max_units"`
	Calendar    bool `json:"calendar"`
	Diagnostics bool `json:"diagnostics"`
	Club        bool `json:"club"`
	Simulator   bool `json:"simulator"`
}

// Resolve returns the entitlement row for a plan. The function is total:
// every plan has exactly one row and unrecognized input falls back to the
// none row. The simulator stays available on the none plan as the free-tier
// carve-out.
func Resolve(plan Plan) Limits {
	switch plan {
	case PlanStart:
		return Limits{MaxUnits: 2, Calendar: true, Diagnostics: true, Club: false, Simulator: true}
	case PlanPro:
		return Limits{MaxUnits: 10, Calendar: true, Diagnostics: true, Club: true, Simulator: true}
	case PlanBusiness:
		return Limits{MaxUnits: 30, Calendar: true, Diagnostics: true, Club: true, Simulator: true}
	case PlanEnterprise:
		return Limits{MaxUnits: UnlimitedUnits, Calendar: true, Diagnostics: true, Club: true, Simulator: true}
	default:
		return Limits{MaxUnits: 0, Calendar: false, Diagnostics: false, Club: false, Simulator: true}
	}
}

// Allows reports whether the row grants a capability.
func (l Limits) Allows(cap Capability) bool {
	switch cap {
	case CapabilityCalendar:
		return l.Calendar
	case CapabilityDiagnostics:
		return l.Diagnostics
	case CapabilityClub:
		return l.Club
	case CapabilitySimulator:
		return l.Simulator
	default:
		return false
	}
}

// CanAddUnit reports whether another bookable unit fits under the plan cap.
func (l Limits) CanAddUnit(current int) bool {
	if l.MaxUnits >= UnlimitedUnits {
		return true
	}
	return current < l.MaxUnits
}
