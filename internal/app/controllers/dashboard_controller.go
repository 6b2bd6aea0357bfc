package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keiji0711/final-final/internal/app/models/dto"
	"github.com/keiji0711/final-final/internal/app/services"
	"github.com/keiji0711/final-final/internal/middleware"
)

// DashboardController serves aggregate attendance figures
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GlobalStats returns the campus-wide summary
// @Summary Global attendance statistics
// @Description Totals and percentages over every student and every event
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.GlobalStats} "Statistics computed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/stats [get]
func (c *DashboardController) GlobalStats(ctx *gin.Context) {
	stats, err := c.dashboardService.GlobalStats(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// EventStats returns the per-event breakdown
// @Summary Per-event attendance statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventStats} "Statistics computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/events/{id} [get]
func (c *DashboardController) EventStats(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		return
	}

	stats, err := c.dashboardService.EventStats(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      stats,
		Timestamp: time.Now(),
	})
}

// StudentProfile returns a student's attendance profile
// @Summary Student attendance profile
// @Description Summary counts plus the full per-event history with derived status
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param usn path string true "Student USN"
// @Success 200 {object} dto.APIResponse{data=dto.StudentProfile} "Profile computed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/students/{usn} [get]
func (c *DashboardController) StudentProfile(ctx *gin.Context) {
	profile, err := c.dashboardService.StudentProfile(ctx, ctx.Param("usn"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      profile,
		Timestamp: time.Now(),
	})
}
