package services

import (
	"context"
	"fmt"

	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/repositories"
)

// Scope decides whose posts make up a feed
type Scope string

const (
	// ScopeGlobal shows posts from every author
	ScopeGlobal Scope = "global"
	// ScopeFollowing shows posts from followed authors and the viewer
	ScopeFollowing Scope = "following"
)

// ParseScope validates a scope name; the empty string selects ScopeGlobal
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "", ScopeGlobal:
		return ScopeGlobal, nil
	case ScopeFollowing:
		return ScopeFollowing, nil
	}
	return "", fmt.Errorf("unknown feed scope %q", s)
}

// FeedService assembles feeds. It never writes.
type FeedService struct {
	deps  Deps
	scope Scope
}

func NewFeedService(deps Deps, scope Scope) *FeedService {
	deps.defaults()
	if scope == "" {
		scope = ScopeGlobal
	}
	return &FeedService{deps: deps, scope: scope}
}

// Scope returns the configured feed scope
func (s *FeedService) Scope() Scope {
	return s.scope
}

// For builds the feed of viewer: posts newest first plus the viewer's follow counts
func (s *FeedService) For(ctx context.Context, viewer *models.User, page models.Page) (*models.Feed, error) {
	store := s.deps.Store

	filter, err := s.filter(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("feed for %d: %w", viewer.ID, err)
	}
	posts, err := store.Posts.ListPosts(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("feed for %d: %w", viewer.ID, err)
	}
	total, err := store.Posts.CountPosts(ctx, filter)
	if err != nil {
		return nil, err
	}

	feed := &models.Feed{Total: total}
	if feed.Posts, err = s.Decorate(ctx, viewer, posts); err != nil {
		return nil, err
	}

	if feed.FollowingCount, err = store.Follows.GetFollowingCount(ctx, viewer.ID); err != nil {
		return nil, err
	}
	if feed.FollowerCount, err = store.Follows.GetFollowersCount(ctx, viewer.ID); err != nil {
		return nil, err
	}
	return feed, nil
}

// Decorate attaches author info, like counts and the viewer's like flags to posts
func (s *FeedService) Decorate(ctx context.Context, viewer *models.User, posts []models.Post) ([]models.FeedPost, error) {
	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}
	counts, err := s.deps.Store.Likes.GetLikesCountByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.deps.Store.Likes.GetLikedPostIDs(ctx, viewer.ID, postIDs)
	if err != nil {
		return nil, err
	}

	out := make([]models.FeedPost, len(posts))
	for i, p := range posts {
		out[i] = models.FeedPost{
			Post:      p,
			LikeCount: counts[p.ID],
			IsLiked:   liked[p.ID],
		}
		if p.Author != nil {
			out[i].AuthorInfo = p.Author.ToCompact()
		}
	}
	return out, nil
}

func (s *FeedService) filter(ctx context.Context, viewer *models.User) (repositories.PostFilter, error) {
	if s.scope != ScopeFollowing {
		return repositories.PostFilter{}, nil
	}
	ids, err := s.deps.Store.Follows.GetFollowingIDs(ctx, viewer.ID)
	if err != nil {
		return repositories.PostFilter{}, err
	}
	return repositories.PostFilter{AuthorIDs: append(ids, viewer.ID)}, nil
}
