package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/models/dto"
	"github.com/keiji0711/final-final/internal/app/services"
	"github.com/keiji0711/final-final/internal/middleware"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
)

// scanResultLabel buckets scan rejections for the metrics counter
func scanResultLabel(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrCutoffExceeded):
		return "cutoff"
	case errors.Is(err, apperrors.ErrDuplicateTimeIn):
		return "duplicate"
	case errors.Is(err, apperrors.ErrStudentNotFound), errors.Is(err, apperrors.ErrEventNotFound):
		return "not_found"
	case errors.Is(err, apperrors.ErrInvalidAction):
		return "invalid_action"
	default:
		return "error"
	}
}

// AttendanceController handles barcode scan submissions
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// Scan records a time-in or time-out
// @Summary Record a barcode scan
// @Description Applies the attendance rule to a scan: time-in is rejected after the event cutoff and when already recorded today; time-out without a prior time-in marks the student Late
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScanRequest true "Scan payload"
// @Success 200 {object} dto.APIResponse{data=dto.ScanResponse} "Scan recorded"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload, unknown action or cutoff exceeded"
// @Failure 404 {object} dto.ErrorResponse "Student or event not found"
// @Failure 409 {object} dto.ErrorResponse "Already timed in today"
// @Failure 429 {object} dto.ErrorResponse "Scan rate limit exceeded"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/scan [post]
func (c *AttendanceController) Scan(ctx *gin.Context) {
	var req dto.ScanRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeMissingFields, "Missing required fields")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	action := models.ScanAction(req.Action)
	update, err := c.attendanceService.RecordScan(ctx, req.Barcode, req.EventID, action)
	if err != nil {
		middleware.ScansTotal.WithLabelValues(req.Action, scanResultLabel(err)).Inc()
		middleware.HandleAPIError(ctx, err)
		return
	}

	middleware.ScansTotal.WithLabelValues(req.Action, "recorded").Inc()

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.ScanResponse{
			Record: dto.ScanRecord{
				USN:     update.USN,
				Name:    update.Name,
				Date:    update.Date,
				TimeIn:  update.TimeIn,
				TimeOut: update.TimeOut,
			},
		},
		Timestamp: time.Now(),
	})
}
