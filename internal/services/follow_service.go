package services

import (
	"context"
	"fmt"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/events"
	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/repositories"
)

// FollowService is the follow graph. Edges are directed and unique per ordered pair.
type FollowService struct {
	deps Deps
}

func NewFollowService(deps Deps) *FollowService {
	deps.defaults()
	return &FollowService{deps: deps}
}

// Follow makes follower follow the user named username. Following an already
// followed user is a silent no-op.
func (s *FollowService) Follow(ctx context.Context, follower *models.User, username string) error {
	var (
		changed bool
		target  *models.User
	)
	err := s.deps.Store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if target, err = tx.Users.GetUserByUsername(ctx, username); err != nil {
			return err
		}
		if target.ID == follower.ID {
			return apperr.ErrSelfFollow
		}
		if changed, err = tx.Follows.CreateFollow(ctx, follower.ID, target.ID); err != nil || !changed {
			return err
		}
		return tx.Notifications.CreateNotification(ctx, &models.Notification{
			Type:        models.NotificationFollow,
			ActorID:     follower.ID,
			RecipientID: target.ID,
			Message:     follower.Username + " started following you",
		})
	})
	if err != nil {
		return fmt.Errorf("follow %q: %w", username, err)
	}

	if changed {
		s.deps.publish(ctx, events.Event{Type: events.UserFollowed, ActorID: follower.ID, SubjectID: target.ID})
	}
	return nil
}

// Unfollow removes the edge follower -> username. Unfollowing a user that is not
// followed is a silent no-op.
func (s *FollowService) Unfollow(ctx context.Context, follower *models.User, username string) error {
	var (
		changed bool
		target  *models.User
	)
	err := s.deps.Store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if target, err = tx.Users.GetUserByUsername(ctx, username); err != nil {
			return err
		}
		changed, err = tx.Follows.DeleteFollow(ctx, follower.ID, target.ID)
		return err
	})
	if err != nil {
		return fmt.Errorf("unfollow %q: %w", username, err)
	}

	if changed {
		s.deps.publish(ctx, events.Event{Type: events.UserUnfollowed, ActorID: follower.ID, SubjectID: target.ID})
	}
	return nil
}

// FollowingOf returns everyone username follows
func (s *FollowService) FollowingOf(ctx context.Context, username string) ([]models.User, error) {
	user, err := s.deps.Store.Users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("following of %q: %w", username, err)
	}
	return s.deps.Store.Follows.GetFollowing(ctx, user.ID)
}

// FollowersOf returns everyone following username
func (s *FollowService) FollowersOf(ctx context.Context, username string) ([]models.User, error) {
	user, err := s.deps.Store.Users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("followers of %q: %w", username, err)
	}
	return s.deps.Store.Follows.GetFollowers(ctx, user.ID)
}

// FollowingCount returns how many users userID follows
func (s *FollowService) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.deps.Store.Follows.GetFollowingCount(ctx, userID)
}

// FollowerCount returns how many users follow userID
func (s *FollowService) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.deps.Store.Follows.GetFollowersCount(ctx, userID)
}

// IsFollowing reports whether a follows b
func (s *FollowService) IsFollowing(ctx context.Context, a, b uint) (bool, error) {
	return s.deps.Store.Follows.IsFollowing(ctx, a, b)
}

// Relation describes how viewer relates to the user named username
func (s *FollowService) Relation(ctx context.Context, viewer *models.User, username string) (*models.Relation, error) {
	target, err := s.deps.Store.Users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("relation with %q: %w", username, err)
	}
	rel := &models.Relation{
		Target:     target.ToCompact(),
		IsSameUser: target.ID == viewer.ID,
	}
	if !rel.IsSameUser {
		if rel.HasFollowed, err = s.IsFollowing(ctx, viewer.ID, target.ID); err != nil {
			return nil, err
		}
	}
	if rel.FollowingCount, err = s.FollowingCount(ctx, target.ID); err != nil {
		return nil, err
	}
	if rel.FollowerCount, err = s.FollowerCount(ctx, target.ID); err != nil {
		return nil, err
	}
	return rel, nil
}
