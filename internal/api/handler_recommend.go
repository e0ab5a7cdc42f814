package api

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"balboa-parking-backend/internal/engine"
	"balboa-parking-backend/internal/model"
)

// GetRecommendations handles GET /api/recommendations.
//
// Query parameters: user_type (required), has_pass, destination,
// visit_hours, time (RFC 3339, defaults to now). The handler validates the
// structural inputs the engine treats as caller bugs, so the engine's panic
// path is unreachable from the wire.
func (h *Handler) GetRecommendations(c *gin.Context) {
	userType := model.UserType(c.Query("user_type"))
	if !userType.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_type is required and must be one of resident, nonresident, staff, volunteer, ada"})
		return
	}

	hasPass := c.Query("has_pass") == "true"
	destination := c.Query("destination")

	visitHours := h.defaultVisitHours
	if raw := c.Query("visit_hours"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "visit_hours must be a positive number"})
			return
		}
		visitHours = parsed
	}

	queryTime := time.Now()
	if raw := c.Query("time"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "time must be an RFC 3339 timestamp"})
			return
		}
		queryTime = parsed
	}

	cat, err := h.store.Catalog(c.Request.Context(), destination)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load parking catalog"})
		return
	}
	cat.TramFrequencyMinutes = h.tramFrequency

	result := h.engine.Recommend(engine.Request{
		UserType:        userType,
		HasPass:         hasPass,
		DestinationSlug: destination,
		QueryTime:       queryTime,
		VisitHours:      visitHours,
	}, cat)

	c.JSON(http.StatusOK, result)
}
