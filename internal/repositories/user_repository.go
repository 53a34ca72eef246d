package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// PostgresUserRepository implements UserRepository on top of gorm
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser inserts user, returning apperr.ErrConflict if the username is taken
func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", user.Username).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return apperr.ErrConflict
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		return err
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *PostgresUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves the account linked to a Firebase UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", uid).First(&user).Error; err != nil {
		return nil, notFound(err, "user")
	}
	return &user, nil
}

// DeleteUser removes a user together with everything that references them.
// Callers should run it inside Store.Transaction.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	authored := func() *gorm.DB {
		return db.Model(&models.Post{}).Select("id").Where("author_id = ?", id)
	}

	if err := db.Where("actor_id = ? OR recipient_id = ? OR post_id IN (?)", id, id, authored()).
		Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	if err := db.Where("user_id = ? OR post_id IN (?)", id, authored()).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := db.Where("follower_id = ? OR followed_id = ?", id, id).Delete(&models.Follow{}).Error; err != nil {
		return err
	}
	if err := db.Where("author_id = ?", id).Delete(&models.Post{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
