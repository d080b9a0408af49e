package handlers

import (
	"net/http"

	"timebridge/middleware"
	"timebridge/models"
	"timebridge/services/matching"
	"timebridge/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatchingHandler exposes compatibility scoring and provider ranking.
type MatchingHandler struct {
	Service matching.MatchingService
	Logger  *zap.Logger
}

func NewMatchingHandler(svc matching.MatchingService, logger *zap.Logger) *MatchingHandler {
	return &MatchingHandler{Service: svc, Logger: logger}
}

// ScoreCompatibility scores one provider against the authenticated requester.
func (h *MatchingHandler) ScoreCompatibility(c *gin.Context) {
	var input struct {
		ProviderID  string                  `json:"providerId"`
		Preferences models.MatchPreferences `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.ProviderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "providerId is required"})
		return
	}

	result, err := h.Service.ScoreCompatibility(c.Request.Context(), input.ProviderID, middleware.ActorID(c), input.Preferences)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RankMatches ranks the eligible provider pool for the authenticated requester.
func (h *MatchingHandler) RankMatches(c *gin.Context) {
	var input struct {
		Preferences models.MatchPreferences `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&input); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	matches, err := h.Service.RankMatches(c.Request.Context(), middleware.ActorID(c), input.Preferences)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// RankSpecific ranks an explicit candidate list for the authenticated requester.
func (h *MatchingHandler) RankSpecific(c *gin.Context) {
	var input struct {
		CandidateIDs []string                `json:"candidateIds"`
		Preferences  models.MatchPreferences `json:"preferences"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	matches, err := h.Service.RankSpecific(c.Request.Context(), middleware.ActorID(c), input.CandidateIDs, input.Preferences)
	if err != nil {
		utils.JSONServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}
