package api

import (
	"net/http"

	"fittrack/fitness-app/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats godoc
// @Summary Workout totals and this week's training hours
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Router /dashboard [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
