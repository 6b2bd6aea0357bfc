package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/keiji0711/final-final/internal/app/models/dto"
	"github.com/keiji0711/final-final/internal/app/services"
	"github.com/keiji0711/final-final/internal/middleware"
)

// EventController handles event catalog operations
type EventController struct {
	eventService  *services.EventService
	exportService *services.ExportService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService, exportService *services.ExportService) *EventController {
	return &EventController{
		eventService:  eventService,
		exportService: exportService,
	}
}

func parseEventID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event ID")
		errorDetail = errorDetail.WithDetails("Event ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateEvent registers an event
// @Summary Create an event
// @Description Creates an event; time-ins after the optional cutoff are rejected
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event information"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	event, err := c.eventService.CreateEvent(ctx, req.EventName, req.EventDate, req.Semester, req.CutoffTime)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      event,
		Timestamp: time.Now(),
	})
}

// GetEvent retrieves an event by ID
// @Summary Get event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      event,
		Timestamp: time.Now(),
	})
}

// ListEvents retrieves all events
// @Summary List all events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	events, err := c.eventService.ListEvents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      events,
		Timestamp: time.Now(),
	})
}

// UpdateEvent edits an event
// @Summary Update an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Updated details"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid event data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, id, req.EventName, req.EventDate, req.Semester, req.CutoffTime)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      event,
		Timestamp: time.Now(),
	})
}

// DeleteEvent removes an event
// @Summary Delete an event
// @Description Removes an event and all attendance recorded against it
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Event deleted"},
		Timestamp: time.Now(),
	})
}

// ListEventAttendance returns an event's recorded attendance rows
// @Summary List event attendance
// @Description Returns every attendance row recorded for the event, ordered by date then student name
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]repositories.EventAttendanceRow} "Attendance rows"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/attendance [get]
func (c *EventController) ListEventAttendance(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		return
	}

	rows, err := c.eventService.ListAttendance(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      rows,
		Timestamp: time.Now(),
	})
}

// ExportEvent downloads an event's attendance sheet
// @Summary Export event attendance
// @Description Streams the event's attendance sheet as an XLSX workbook
// @Tags events
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {file} file "Attendance workbook"
// @Failure 400 {object} dto.ErrorResponse "Invalid event ID"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /events/{id}/export [get]
func (c *EventController) ExportEvent(ctx *gin.Context) {
	id, ok := parseEventID(ctx)
	if !ok {
		return
	}

	workbook, filename, err := c.exportService.ExportEvent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}
