package handlers

import (
	"math"
	"net/http"

	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
	users         *services.UserService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService, users *services.UserService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, users: users}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/unread-count", h.GetUnreadCount)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
	g.PUT("/notifications/read-all", h.MarkAllAsRead)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	ActorInfo models.UserCompact `json:"actor"`
}

func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	page, limit := pagination(c, 20, 50)

	list, total, err := h.notifications.List(c.Request().Context(), me, page, limit)
	if err != nil {
		return toHTTPError(err)
	}
	enriched := make([]EnrichedNotification, len(list))
	for i, n := range list {
		enriched[i] = EnrichedNotification{Notification: n}
		if n.Actor != nil {
			enriched[i].ActorInfo = n.Actor.ToCompact()
		}
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications": enriched,
		},
		"meta": echo.Map{
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	count, err := h.notifications.UnreadCount(c.Request().Context(), me)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAsRead(c.Request().Context(), me, id); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	if err := h.notifications.MarkAllAsRead(c.Request().Context(), me); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
