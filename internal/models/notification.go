package models

import "time"

const (
	NotificationFollow = "follow"
	NotificationLike   = "like"
)

// Notification represents a user notification
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"` // follow, like
	ActorID     uint      `json:"actor_id" gorm:"index"`
	Actor       *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	RecipientID uint      `json:"recipient_id" gorm:"index"`
	Recipient   *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID      *uint     `json:"post_id,omitempty"`
	Message     string    `json:"message"`
	IsRead      bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
