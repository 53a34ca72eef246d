package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// Store bundles the per-entity repositories sharing one connection or transaction
type Store struct {
	db            *gorm.DB
	Users         UserRepository
	Posts         PostRepository
	Likes         LikeRepository
	Follows       FollowRepository
	Notifications NotificationRepository
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:            db,
		Users:         NewPostgresUserRepository(db),
		Posts:         NewPostgresPostRepository(db),
		Likes:         NewPostgresLikeRepository(db),
		Follows:       NewPostgresFollowRepository(db),
		Notifications: NewPostgresNotificationRepository(db),
	}
}

// Transaction runs fn with a Store bound to a single database transaction.
// The transaction is rolled back if fn returns an error.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

// AutoMigrate creates or updates the tables behind every repository
func (s *Store) AutoMigrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
}

// notFound translates gorm.ErrRecordNotFound into apperr.ErrNotFound for entity
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity)
	}
	return err
}
