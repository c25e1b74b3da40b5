package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"Squadup/logging"
	"Squadup/metrics"
	"Squadup/middleware"
	"Squadup/services/matching"

	"github.com/gin-gonic/gin"
)

// SearchLimiter caps how often a user may run a match search.
type SearchLimiter interface {
	AllowMatchSearch(ctx context.Context, userID int64, limit int, window time.Duration) (bool, error)
}

// MatchController serves the /matches endpoints.
type MatchController struct {
	Service *matching.Service
	// Limiter is optional; nil disables search limiting.
	Limiter      SearchLimiter
	SearchLimit  int
	SearchWindow time.Duration
}

type findMatchesQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

type matchURI struct {
	MatchID int64 `uri:"match_id" binding:"required,min=1"`
}

// @Summary Find compatible players
// @Description Scores players sharing at least one game with the caller, returns the best ones and records a pending match for each
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param limit query int false "Maximum number of suggestions (default 10, capped at 20)"
// @Success 200 {object} matching.FindResult
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 429 {object} object{error=string}
// @Failure 500 {object} object{error=string,matches=[]matching.SuggestedMatch}
// @Router /matches [post]
// @Security ApiKeyAuth
func (mc *MatchController) FindMatches(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var q findMatchesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	ctx := c.Request.Context()
	if mc.Limiter != nil {
		allowed, err := mc.Limiter.AllowMatchSearch(ctx, userID, mc.SearchLimit, mc.SearchWindow)
		if err != nil {
			// fail open
			logging.Ctx(ctx).Warn().Err(err).Msg("Match search limiter unavailable")
		} else if !allowed {
			metrics.MatchSearches.WithLabelValues(metrics.SearchLimited).Inc()
			c.Header("Retry-After", retryAfter(mc.SearchWindow))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many match searches, try again later"})
			return
		}
	}

	result, err := mc.Service.FindMatches(ctx, userID, q.Limit)
	if err != nil {
		// matches persisted before the failure
		persisted := []matching.SuggestedMatch{}
		if result != nil && result.Matches != nil {
			persisted = result.Matches
		}
		logging.Ctx(ctx).Error().Err(err).Int("persisted", len(persisted)).Msg("Error finding matches")
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error finding matches", "matches": persisted})
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary List the caller's matches
// @Description Returns pending and accepted matches, pending first, then by score
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{matches=[]matching.MatchView}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /matches [get]
// @Security ApiKeyAuth
func (mc *MatchController) GetMatches(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	views, err := mc.Service.ListMatches(c.Request.Context(), userID)
	if err != nil {
		logging.Ctx(c.Request.Context()).Error().Err(err).Msg("Error listing matches")
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching matches"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"matches": views})
}

// @Summary Accept a match
// @Description Moves a pending match the caller takes part in to accepted
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path int true "Match ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /matches/{match_id}/accept [post]
// @Security ApiKeyAuth
func (mc *MatchController) AcceptMatch(c *gin.Context) {
	mc.decide(c, mc.Service.AcceptMatch, "Match accepted")
}

// @Summary Reject a match
// @Description Moves a pending match the caller takes part in to rejected
// @Tags matches
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param match_id path int true "Match ID"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /matches/{match_id}/reject [post]
// @Security ApiKeyAuth
func (mc *MatchController) RejectMatch(c *gin.Context) {
	mc.decide(c, mc.Service.RejectMatch, "Match rejected")
}

func (mc *MatchController) decide(c *gin.Context, apply func(context.Context, int64, int64) error, done string) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var uri matchURI
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "match_id must be a positive integer"})
		return
	}

	err := apply(c.Request.Context(), uri.MatchID, userID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": done})
	case errors.Is(err, matching.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found or already processed"})
	default:
		logging.Ctx(c.Request.Context()).Error().Err(err).Int64("match_id", uri.MatchID).Msg("Error updating match")
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating match"})
	}
}

func retryAfter(window time.Duration) string {
	secs := int(window.Seconds())
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
