package controllers

import (
	"net/http"

	"github.com/brightBediako/farmlink-api/middleware"
	"github.com/brightBediako/farmlink-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationController handles HTTP requests for the in-app notification feed.
type NotificationController struct {
	notificationService *services.NotificationService
}

func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications handles GET /notifications.
func (nc *NotificationController) ListNotifications(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	notifications, svcErr := nc.notificationService.ListForUser(ctx.Request.Context(), userID)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// MarkNotificationRead handles PUT /notifications/:id/read.
func (nc *NotificationController) MarkNotificationRead(ctx *gin.Context) {
	userID, err := middleware.GetUserID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id"})
		return
	}

	if svcErr := nc.notificationService.MarkRead(ctx.Request.Context(), id, userID); svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
