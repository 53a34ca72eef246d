package services

import (
	"context"
	"fmt"

	"github.com/anonto42/microblog/backend/internal/events"
	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/repositories"
)

// LikeService is the like ledger
type LikeService struct {
	deps Deps
}

func NewLikeService(deps Deps) *LikeService {
	deps.defaults()
	return &LikeService{deps: deps}
}

// Like records that user likes postID. Liking twice leaves a single like.
func (s *LikeService) Like(ctx context.Context, postID uint, user *models.User) (*models.LikeStatus, error) {
	var (
		changed bool
		count   int64
		post    *models.Post
	)
	err := s.deps.Store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if post, err = tx.Posts.GetPostByID(ctx, postID); err != nil {
			return err
		}
		if changed, err = tx.Likes.CreateLike(ctx, user.ID, postID); err != nil {
			return err
		}
		if changed && post.AuthorID != user.ID {
			pid := postID
			if err = tx.Notifications.CreateNotification(ctx, &models.Notification{
				Type:        models.NotificationLike,
				ActorID:     user.ID,
				RecipientID: post.AuthorID,
				PostID:      &pid,
				Message:     user.Username + " liked your post",
			}); err != nil {
				return err
			}
		}
		count, err = tx.Likes.GetLikesCountByPostID(ctx, postID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("like post %d: %w", postID, err)
	}

	if changed {
		s.store(ctx, postID, count)
		s.deps.publish(ctx, events.Event{Type: events.PostLiked, ActorID: user.ID, SubjectID: post.AuthorID, PostID: postID})
	}
	return &models.LikeStatus{Liked: true, Count: count}, nil
}

// Unlike removes the like of user on postID. Unliking a post that is not liked is a no-op.
func (s *LikeService) Unlike(ctx context.Context, postID uint, user *models.User) (*models.LikeStatus, error) {
	var (
		changed bool
		count   int64
		post    *models.Post
	)
	err := s.deps.Store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if post, err = tx.Posts.GetPostByID(ctx, postID); err != nil {
			return err
		}
		if changed, err = tx.Likes.DeleteLike(ctx, user.ID, postID); err != nil {
			return err
		}
		count, err = tx.Likes.GetLikesCountByPostID(ctx, postID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unlike post %d: %w", postID, err)
	}

	if changed {
		s.store(ctx, postID, count)
		s.deps.publish(ctx, events.Event{Type: events.PostUnliked, ActorID: user.ID, SubjectID: post.AuthorID, PostID: postID})
	}
	return &models.LikeStatus{Liked: false, Count: count}, nil
}

// Count returns the number of users currently liking postID, served from the
// cache when possible. A post that does not exist has zero likes.
func (s *LikeService) Count(ctx context.Context, postID uint) (int64, error) {
	if v, ok, err := s.deps.LikeCache.Get(ctx, postID); err == nil && ok {
		return v, nil
	} else if err != nil {
		s.deps.Log.WithError(err).WithField("post", postID).Debug("like count cache miss")
	}

	count, err := s.deps.Store.Likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes of post %d: %w", postID, err)
	}
	if err := s.deps.LikeCache.Fill(ctx, postID, count); err != nil {
		s.deps.Log.WithError(err).WithField("post", postID).Debug("failed to fill like count cache")
	}
	return count, nil
}

// Status reports whether user likes postID along with the count read from the ledger
func (s *LikeService) Status(ctx context.Context, postID uint, user *models.User) (*models.LikeStatus, error) {
	if _, err := s.deps.Store.Posts.GetPostByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("like status of post %d: %w", postID, err)
	}
	liked, err := s.deps.Store.Likes.HasUserLikedPost(ctx, user.ID, postID)
	if err != nil {
		return nil, err
	}
	count, err := s.deps.Store.Likes.GetLikesCountByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count likes of post %d: %w", postID, err)
	}
	return &models.LikeStatus{Liked: liked, Count: count}, nil
}

// store writes the count committed by a like or unlike. If that fails the key is
// dropped so readers go back to the ledger.
func (s *LikeService) store(ctx context.Context, postID uint, count int64) {
	err := s.deps.LikeCache.Set(ctx, postID, count)
	if err == nil {
		return
	}
	s.deps.Log.WithError(err).WithField("post", postID).Warn("failed to store like count")
	if err := s.deps.LikeCache.Invalidate(ctx, postID); err != nil {
		s.deps.Log.WithError(err).WithField("post", postID).Warn("failed to invalidate like count")
	}
}
