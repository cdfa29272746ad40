package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetSubscription returns the owner's billing record, refreshed through the
// accessor cache. A null subscription is a valid resolved answer.
func (s *Server) GetSubscription(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	rec, err := s.accessor.Get(c.Request.Context(), ownerID(c), token)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": rec})
}

type cancelSubscriptionRequest struct {
	SubscriptionID string `json:"subscription_id"`
}

func (s *Server) CancelSubscription(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		AbortWithError(c, ErrUnauthorized)
		return
	}

	var req cancelSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	subscriptionID := strings.TrimSpace(req.SubscriptionID)
	if subscriptionID == "" {
		AbortWithError(c, newValidationError("subscription_id", "invalid_subscription_id", "invalid subscription_id"))
		return
	}

	if err := s.billing.Cancel(c.Request.Context(), token, subscriptionID); err != nil {
		AbortWithError(c, err)
		return
	}

	// The cached record still says active; force the next read to refetch.
	s.accessor.Invalidate(ownerID(c))

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
