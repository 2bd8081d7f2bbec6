package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymdesk-api/internal/application/service"
	"github.com/sangkips/gymdesk-api/internal/presentation/http/dto/response"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats returns the month figures for the caller's branch scope.
// Super admins see every branch unless ?branch_id narrows the scope.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	stats, err := h.dashboardService.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}
