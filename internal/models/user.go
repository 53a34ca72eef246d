package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account able to author posts, like them and follow other users.
type User struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Username string `json:"username" gorm:"size:150;not null;uniqueIndex"`
	Email    string `json:"email,omitempty" gorm:"size:254;index"`
	Password string `json:"-"` // bcrypt hash
	// FirebaseUID links accounts created through Firebase login; NULL for local accounts.
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

// UserCompact is the public projection of a user embedded in other payloads
type UserCompact struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ToCompact returns the compact projection of u
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username}
}

type CreateLocalUserRequest struct {
	Username string `json:"username" validate:"required,min=1,max=150,alphanumunicode"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type SignInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
