package services

import (
	"context"
	"fmt"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/events"
	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/repositories"
)

// PostService is the post store
type PostService struct {
	deps Deps
}

func NewPostService(deps Deps) *PostService {
	deps.defaults()
	return &PostService{deps: deps}
}

// Create stores a new post by author. Nothing is persisted if content is invalid.
func (s *PostService) Create(ctx context.Context, author *models.User, content string) (*models.Post, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	now := s.deps.Now()
	post := &models.Post{
		Content:   content,
		AuthorID:  author.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deps.Store.Posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = author

	s.deps.publish(ctx, events.Event{Type: events.PostCreated, ActorID: author.ID, PostID: post.ID})
	return post, nil
}

// Update replaces the content of a post. Only the author may do so.
func (s *PostService) Update(ctx context.Context, postID uint, actor *models.User, content string) (*models.Post, error) {
	var updated *models.Post
	err := s.deps.Store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != actor.ID {
			return apperr.ErrForbidden
		}
		if err := validateContent(content); err != nil {
			return err
		}
		if err := tx.Posts.UpdateContent(ctx, postID, content); err != nil {
			return err
		}
		updated, err = tx.Posts.GetPostByID(ctx, postID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", postID, err)
	}

	s.deps.publish(ctx, events.Event{Type: events.PostUpdated, ActorID: actor.ID, PostID: postID})
	return updated, nil
}

// Delete removes a post and its likes. Only the author may do so.
func (s *PostService) Delete(ctx context.Context, postID uint, actor *models.User) error {
	err := s.deps.Store.Transaction(ctx, func(tx *repositories.Store) error {
		post, err := tx.Posts.GetPostByID(ctx, postID)
		if err != nil {
			return err
		}
		if post.AuthorID != actor.ID {
			return apperr.ErrForbidden
		}
		return tx.Posts.DeletePost(ctx, postID)
	})
	if err != nil {
		return fmt.Errorf("delete post %d: %w", postID, err)
	}

	if err := s.deps.LikeCache.Invalidate(ctx, postID); err != nil {
		s.deps.Log.WithError(err).WithField("post", postID).Warn("failed to invalidate like count")
	}
	s.deps.publish(ctx, events.Event{Type: events.PostDeleted, ActorID: actor.ID, PostID: postID})
	return nil
}

// Get returns a single post with its author
func (s *PostService) Get(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.deps.Store.Posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", postID, err)
	}
	return post, nil
}

// ListAll returns every post, newest first. Each call reflects the current state.
func (s *PostService) ListAll(ctx context.Context) ([]models.Post, error) {
	return s.deps.Store.Posts.ListPosts(ctx, repositories.PostFilter{}, models.Page{})
}

// ListByAuthor returns the posts written by username, newest first
func (s *PostService) ListByAuthor(ctx context.Context, username string, page models.Page) ([]models.Post, error) {
	author, err := s.deps.Store.Users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list posts of %q: %w", username, err)
	}
	return s.deps.Store.Posts.ListPosts(ctx, repositories.PostFilter{AuthorIDs: []uint{author.ID}}, page)
}
