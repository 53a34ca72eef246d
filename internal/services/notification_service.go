package services

import (
	"context"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/models"
)

// NotificationService reads and acknowledges the follow and like notifications
// written by the follow graph and the like ledger
type NotificationService struct {
	deps Deps
}

func NewNotificationService(deps Deps) *NotificationService {
	deps.defaults()
	return &NotificationService{deps: deps}
}

// List returns one page (1-based) of the recipient's notifications, newest first
func (s *NotificationService) List(ctx context.Context, recipient *models.User, page, limit int) ([]models.Notification, int64, error) {
	return s.deps.Store.Notifications.GetByRecipientID(ctx, recipient.ID, page, limit)
}

// UnreadCount returns the number of unread notifications of recipient
func (s *NotificationService) UnreadCount(ctx context.Context, recipient *models.User) (int64, error) {
	return s.deps.Store.Notifications.GetUnreadCount(ctx, recipient.ID)
}

// MarkAsRead acknowledges a single notification. Notifications of other users are not found.
func (s *NotificationService) MarkAsRead(ctx context.Context, recipient *models.User, id uint) error {
	ok, err := s.deps.Store.Notifications.MarkAsRead(ctx, recipient.ID, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("notification")
	}
	return nil
}

// MarkAllAsRead marks every notification of recipient as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context, recipient *models.User) error {
	return s.deps.Store.Notifications.MarkAllAsRead(ctx, recipient.ID)
}
