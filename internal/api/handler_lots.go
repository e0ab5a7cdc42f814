package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"balboa-parking-backend/internal/model"
)

// lotResponse is a catalog lot annotated with its current tier.
type lotResponse struct {
	ID            string              `json:"id"`
	Slug          string              `json:"slug"`
	Name          string              `json:"name"`
	DisplayName   string              `json:"displayName"`
	Address       string              `json:"address"`
	Lat           float64             `json:"lat"`
	Lng           float64             `json:"lng"`
	Capacity      *int                `json:"capacity"`
	HasEvCharging bool                `json:"hasEvCharging"`
	HasAdaSpaces  bool                `json:"hasAdaSpaces"`
	HasTramStop   bool                `json:"hasTramStop"`
	Notes         *string             `json:"notes"`
	Tier          model.LotTier       `json:"tier"`
	TierName      string              `json:"tierName"`
	SpecialRules  []model.SpecialRule `json:"specialRules,omitempty"`
}

// GetLots handles GET /api/lots.
func (h *Handler) GetLots(c *gin.Context) {
	cat, err := h.store.Catalog(c.Request.Context(), "")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lots"})
		return
	}

	now := time.Now()
	responses := make([]lotResponse, 0, len(cat.Lots))
	for _, lot := range cat.Lots {
		tier := h.engine.ResolveTier(lot.ID, cat.TierAssignments, now)
		responses = append(responses, lotResponse{
			ID:            lot.ID,
			Slug:          lot.Slug,
			Name:          lot.Name,
			DisplayName:   lot.DisplayName,
			Address:       lot.Address,
			Lat:           lot.Lat,
			Lng:           lot.Lng,
			Capacity:      lot.Capacity,
			HasEvCharging: lot.HasEvCharging,
			HasAdaSpaces:  lot.HasAdaSpaces,
			HasTramStop:   lot.HasTramStop,
			Notes:         lot.Notes,
			Tier:          tier,
			TierName:      tier.Name(),
			SpecialRules:  lot.SpecialRules,
		})
	}
	c.JSON(http.StatusOK, responses)
}

// destinationResponse mirrors the destination catalog row.
type destinationResponse struct {
	ID          string  `json:"id"`
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Area        string  `json:"area"`
	Type        string  `json:"type"`
	Address     *string `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
}

// GetDestinations handles GET /api/destinations.
func (h *Handler) GetDestinations(c *gin.Context) {
	dests, err := h.store.Destinations(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve destinations"})
		return
	}

	responses := make([]destinationResponse, 0, len(dests))
	for _, d := range dests {
		responses = append(responses, destinationResponse{
			ID:          d.ID,
			Slug:        d.Slug,
			Name:        d.Name,
			DisplayName: d.DisplayName,
			Area:        d.Area,
			Type:        d.Type,
			Address:     d.Address,
			Lat:         d.Lat,
			Lng:         d.Lng,
		})
	}
	c.JSON(http.StatusOK, responses)
}
