package models

import "time"

// Like records that a user liked a post; at most one per (user, post)
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_like_user_post"`
	User      *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PostID    uint      `json:"post_id" gorm:"not null;index;uniqueIndex:idx_like_user_post"`
	Post      *Post     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Like
func (Like) TableName() string {
	return "likes"
}

// LikeStatus is the viewer's like state for a post along with its current count
type LikeStatus struct {
	Liked bool  `json:"liked"`
	Count int64 `json:"count"`
}
