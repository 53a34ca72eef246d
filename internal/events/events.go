// Package events publishes domain events emitted after a mutation commits.
package events

import (
	"context"
	"errors"
	"time"
)

// Type names a domain event
type Type string

const (
	PostCreated    Type = "post.created"
	PostUpdated    Type = "post.updated"
	PostDeleted    Type = "post.deleted"
	PostLiked      Type = "post.liked"
	PostUnliked    Type = "post.unliked"
	UserFollowed   Type = "user.followed"
	UserUnfollowed Type = "user.unfollowed"
)

// Event describes a committed change. SubjectID is the user acted upon (follow target or
// post author) and PostID the post involved, when there is one.
type Event struct {
	Type      Type      `json:"type" bson:"type"`
	ActorID   uint      `json:"actor_id" bson:"actor_id"`
	SubjectID uint      `json:"subject_id,omitempty" bson:"subject_id,omitempty"`
	PostID    uint      `json:"post_id,omitempty" bson:"post_id,omitempty"`
	At        time.Time `json:"at" bson:"at"`
}

// Publisher delivers events to a sink
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Multi fans an event out to every publisher
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every event
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
