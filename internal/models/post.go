package models

import "time"

// MaxPostLength is the maximum number of characters (runes) in a post
const MaxPostLength = 140

// Post is a short text update authored by a user
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Author    *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Post
func (Post) TableName() string {
	return "posts"
}

// PostRequest is the body of create and update requests. Content is checked by
// the post store so that authorship is verified before the content.
type PostRequest struct {
	Content string `json:"content"`
}
