package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"balboa-parking-backend/internal/engine"
)

// enforcementResponse is the current enforcement state plus the next
// enforcement-free holiday, for the map header.
type enforcementResponse struct {
	Active      bool                    `json:"active"`
	StartTime   string                  `json:"startTime,omitempty"`
	EndTime     string                  `json:"endTime,omitempty"`
	NextHoliday *engine.UpcomingHoliday `json:"nextHoliday"`
}

// GetEnforcement handles GET /api/enforcement.
func (h *Handler) GetEnforcement(c *gin.Context) {
	cat, err := h.store.Catalog(c.Request.Context(), "")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load enforcement data"})
		return
	}

	now := time.Now()
	status := h.engine.EnforcementStatus(now, cat.EnforcementPeriods, cat.Holidays)

	resp := enforcementResponse{
		Active:    status.Active,
		StartTime: status.StartTime,
		EndTime:   status.EndTime,
	}
	if next, ok := h.engine.NextHoliday(now, cat.Holidays); ok {
		resp.NextHoliday = &next
	}
	c.JSON(http.StatusOK, resp)
}
