package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/services"
	"github.com/collegeconnect/collegeconnect/internal/middleware"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// EventController handles event endpoints
type EventController struct {
	eventService *services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService *services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// CreateEvent creates a new event posting
// @Summary Create an event
// @Description Creates an event posting and notifies every other college
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	event, err := c.eventService.Create(ctx.Request.Context(), college, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// GetEvents lists all events
// @Summary List all events
// @Description Returns every event ordered by event date
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Event} "Events retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /events [get]
func (c *EventController) GetEvents(ctx *gin.Context) {
	events, err := c.eventService.GetAll(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEventByID returns a single event
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// UpdateEvent partially updates an event
// @Summary Update an event
// @Description Partially updates an event. Only the organizing college may update it.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizing college"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, middleware.BindingError(err))
		return
	}

	event, err := c.eventService.Update(ctx.Request.Context(), college.ID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent removes an event
// @Summary Delete an event
// @Description Deletes an event. Only the organizing college may delete it.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not the organizing college"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	id, err := parseIDParam(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.eventService.Delete(ctx.Request.Context(), college.ID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event removed"}))
}
