package repositories

import (
	"context"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/models"
	"gorm.io/gorm"
)

// PostFilter restricts a post listing. A nil AuthorIDs means every author.
type PostFilter struct {
	AuthorIDs []uint
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, filter PostFilter, page models.Page) ([]models.Post, error)
	CountPosts(ctx context.Context, filter PostFilter) (int64, error)
	UpdateContent(ctx context.Context, id uint, content string) error
	DeletePost(ctx context.Context, id uint) error
}

// PostgresPostRepository implements PostRepository on top of gorm
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts a new post
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// GetPostByID retrieves a post by ID with its author preloaded
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, notFound(err, "post")
	}
	return &post, nil
}

// ListPosts returns posts newest first; equal timestamps fall back to the most recently inserted
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter PostFilter, page models.Page) ([]models.Post, error) {
	var posts []models.Post
	q := r.filtered(ctx, filter).Preload("Author").Order("created_at DESC").Order("id DESC")
	if page.Offset > 0 {
		q = q.Offset(page.Offset)
	}
	if page.Limit > 0 {
		q = q.Limit(page.Limit)
	}
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CountPosts counts the posts matching filter
func (r *PostgresPostRepository) CountPosts(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	return count, err
}

// UpdateContent replaces the content of a post, leaving created_at untouched
func (r *PostgresPostRepository) UpdateContent(ctx context.Context, id uint, content string) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Update("content", content)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post")
	}
	return nil
}

// DeletePost deletes a post and its likes and notifications.
// Callers should run it inside Store.Transaction.
func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("post_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	if err := db.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post")
	}
	return nil
}

func (r *PostgresPostRepository) filtered(ctx context.Context, filter PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.AuthorIDs != nil {
		q = q.Where("author_id IN ?", filter.AuthorIDs)
	}
	return q
}
