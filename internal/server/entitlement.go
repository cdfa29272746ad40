package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tourbase/tourbase/internal/entitlement"
)

type entitlementsResponse struct {
	Plan     entitlement.Plan   `json:"plan"`
	PlanName string             `json:"plan_name"`
	Emoji    string             `json:"emoji"`
	Limits   entitlement.Limits `json:"limits"`
}

// GetEntitlements resolves the owner's stored session to a limit matrix.
// Expiry applies here, so a lapsed plan reports the no-subscription row.
func (s *Server) GetEntitlements(c *gin.Context) {
	plan := s.sessions.EffectivePlan(c.Request.Context(), ownerID(c))

	c.JSON(http.StatusOK, entitlementsResponse{
		Plan:     plan,
		PlanName: plan.DisplayName(),
		Emoji:    plan.Emoji(),
		Limits:   entitlement.Resolve(plan),
	})
}
