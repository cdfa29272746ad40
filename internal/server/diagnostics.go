package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	diagnosticsdomain "github.com/tourbase/tourbase/internal/diagnostics/domain"
)

type submitDiagnosticsRequest struct {
	Answers map[string]int `json:"answers"`
}

func (s *Server) SubmitDiagnostics(c *gin.Context) {
	var req submitDiagnosticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.diagnosticsSvc.Score(c.Request.Context(), ownerID(c), req.Answers)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (s *Server) ListDiagnostics(c *gin.Context) {
	history, err := s.diagnosticsSvc.List(c.Request.Context(), ownerID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": history})
}

// ListDiagnosticBlocks exposes the questionnaire itself so clients render
// blocks and questions from one source of truth.
func (s *Server) ListDiagnosticBlocks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"blocks": diagnosticsdomain.DefaultBlocks})
}

func (s *Server) GetDiagnosticsByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	result, err := s.diagnosticsSvc.GetByID(c.Request.Context(), ownerID(c), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

func (s *Server) DeleteDiagnosticsByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		AbortWithError(c, newValidationError("id", "invalid_id", "invalid id"))
		return
	}

	if err := s.diagnosticsSvc.DeleteByID(c.Request.Context(), ownerID(c), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
