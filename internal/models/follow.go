package models

import "time"

// Follow is a directed "follower follows followed" edge
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"not null;index;uniqueIndex:idx_follower_followed;check:chk_follow_not_self,follower_id <> followed_id"`
	Follower   *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FollowedID uint      `json:"followed_id" gorm:"not null;index;uniqueIndex:idx_follower_followed"`
	Followed   *User     `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name for Follow
func (Follow) TableName() string {
	return "follow"
}

// Relation describes how the viewer relates to another user
type Relation struct {
	Target         UserCompact `json:"target"`
	HasFollowed    bool        `json:"has_followed"`
	IsSameUser     bool        `json:"is_same_user"`
	FollowingCount int64       `json:"following_count"`
	FollowerCount  int64       `json:"follower_count"`
}
