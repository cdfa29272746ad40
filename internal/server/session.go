package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tourbase/tourbase/internal/entitlement"
	"github.com/tourbase/tourbase/internal/session"
)

type putSessionRequest struct {
	Email     string     `json:"email"`
	Plan      string     `json:"subscription_plan"`
	ExpiresAt *time.Time `json:"subscription_expires_at"`
	AutoRenew bool       `json:"auto_renew"`
}

type sessionResponse struct {
	Session       session.Record   `json:"session"`
	EffectivePlan entitlement.Plan `json:"effective_plan"`
}

func (s *Server) PutSession(c *gin.Context) {
	var req putSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	rec := session.Record{
		UserID:    ownerID(c),
		Email:     strings.TrimSpace(req.Email),
		Plan:      entitlement.ParsePlan(req.Plan),
		ExpiresAt: req.ExpiresAt,
		AutoRenew: req.AutoRenew,
	}
	if err := s.sessions.Put(c.Request.Context(), rec); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{
		Session:       rec,
		EffectivePlan: session.EffectivePlan(rec, s.clock.Now()),
	})
}

func (s *Server) GetSession(c *gin.Context) {
	rec := s.sessions.Current(c.Request.Context(), ownerID(c))
	c.JSON(http.StatusOK, sessionResponse{
		Session:       rec,
		EffectivePlan: session.EffectivePlan(rec, s.clock.Now()),
	})
}

func (s *Server) ClearSession(c *gin.Context) {
	owner := ownerID(c)
	if err := s.sessions.Clear(c.Request.Context(), owner); err != nil {
		AbortWithError(c, err)
		return
	}
	// Dropping the billing record too keeps logout a full reset.
	s.accessor.Forget(owner)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
