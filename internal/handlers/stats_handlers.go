package handlers

import (
	"net/http"

	"fitnexus_backend/internal/services"
	"fitnexus_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service.
type StatsHandler struct {
	statsService services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(ss services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: ss}
}

// GetAdminStats returns total revenue and the last six payments.
func (h *StatsHandler) GetAdminStats(c *gin.Context) {
	stats, err := h.statsService.GetAdminStats()
	if err != nil {
		utils.LogError(err, "GetAdminStats: Error from statsService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch admin stats.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetChartStats returns subscriber and paying-member counts.
func (h *StatsHandler) GetChartStats(c *gin.Context) {
	stats, err := h.statsService.GetChartStats()
	if err != nil {
		utils.LogError(err, "GetChartStats: Error from statsService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch chart stats.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetRevenueHistory returns succeeded-payment revenue grouped by month.
func (h *StatsHandler) GetRevenueHistory(c *gin.Context) {
	history, err := h.statsService.GetRevenueHistory()
	if err != nil {
		utils.LogError(err, "GetRevenueHistory: Error from statsService")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to fetch revenue history.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, history)
}
