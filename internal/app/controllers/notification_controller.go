package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/services"
	"github.com/collegeconnect/collegeconnect/internal/middleware"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// NotificationController handles notification endpoints
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// GetNotifications lists the caller's newest notifications
// @Summary List notifications
// @Description Returns the authenticated college's newest notifications, capped at 20
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse} "Notifications retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	notifications, err := c.notificationService.GetForCollege(ctx.Request.Context(), college.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, dto.ToNotificationResponse(n))
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(responses))
}

// GetUnreadCount returns the caller's unread notification count
// @Summary Get unread notification count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CountResponse} "Unread count retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	count, err := c.notificationService.CountUnread(ctx.Request.Context(), college.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.CountResponse{Count: count}))
}

// MarkNotificationAsRead marks a single notification as read
// @Summary Mark a notification as read
// @Description Marks one of the authenticated college's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Notification marked as read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkNotificationAsRead(ctx *gin.Context) {
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

	if err := c.notificationService.MarkRead(ctx.Request.Context(), id, college.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Notification marked as read"}))
}

// MarkAllNotificationsAsRead marks every notification of the caller as read
// @Summary Mark all notifications as read
// @Description Marks every notification of the authenticated college as read. Calling it with nothing unread succeeds and changes nothing.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "All notifications marked as read"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /notifications/mark-all-read [put]
func (c *NotificationController) MarkAllNotificationsAsRead(ctx *gin.Context) {
	college, ok := middleware.CollegeFromContext(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrNotAuthenticated)
		return
	}

	if err := c.notificationService.MarkAllRead(ctx.Request.Context(), college.ID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "All notifications marked as read"}))
}
