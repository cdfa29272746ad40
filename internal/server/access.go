package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tourbase/tourbase/internal/access"
	"github.com/tourbase/tourbase/internal/entitlement"
)

// CheckAccess evaluates the gate for one capability. The Host header feeds
// the trusted-host bypass; the bearer token feeds the billing lookup.
func (s *Server) CheckAccess(c *gin.Context) {
	raw := strings.TrimSpace(c.Param("capability"))
	capability, ok := entitlement.ParseCapability(raw)
	if !ok {
		AbortWithError(c, newValidationError("capability", "invalid_capability", "unknown capability"))
		return
	}

	decision := s.guard.Evaluate(c.Request.Context(), access.Request{
		UserID:     ownerID(c),
		Token:      bearerToken(c),
		Host:       c.Request.Host,
		Capability: capability,
	})

	c.JSON(http.StatusOK, decision)
}
