package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned by Authenticate for an unknown user or wrong password
var ErrBadCredentials = errors.New("invalid username or password")

// UserService manages accounts. Identities are referenced, never mutated, by the core.
type UserService struct {
	deps Deps
	cost int
}

func NewUserService(deps Deps) *UserService {
	deps.defaults()
	return &UserService{deps: deps, cost: bcrypt.DefaultCost}
}

// Register creates a local account with a bcrypt-hashed password
func (s *UserService) Register(ctx context.Context, req models.CreateLocalUserRequest) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
	}
	if err := s.deps.Store.Users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("register %q: %w", req.Username, err)
	}
	return user, nil
}

// Authenticate checks username and password
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.deps.Store.Users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return user, nil
}

// EnsureExternal returns the account linked to the external identity uid, creating a
// password-less one with a generated username on first login. Local accounts are never
// resolved from a UID.
func (s *UserService) EnsureExternal(ctx context.Context, uid, email string) (*models.User, error) {
	if uid == "" {
		return nil, apperr.Invalid("uid", "this field is required")
	}
	for attempt := 0; attempt < externalCreateAttempts; attempt++ {
		user, err := s.deps.Store.Users.GetUserByFirebaseUID(ctx, uid)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}

		linked := uid
		user = &models.User{Username: externalUsername(), Email: email, FirebaseUID: &linked}
		err = s.deps.Store.Users.CreateUser(ctx, user)
		if err == nil {
			return user, nil
		}
		// a taken username, or a concurrent first login that linked uid already
		if !errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("create external user: %w", err)
		}
	}
	return nil, fmt.Errorf("create external user: %w", apperr.ErrConflict)
}

const externalCreateAttempts = 3

func externalUsername() string {
	return "user" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.deps.Store.Users.GetUserByID(ctx, id)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.deps.Store.Users.GetUserByUsername(ctx, username)
}

// Delete removes the account and, with it, its posts, likes and follow edges
func (s *UserService) Delete(ctx context.Context, id uint) error {
	var liked []uint
	err := s.deps.Store.Transaction(ctx, func(tx *repositories.Store) error {
		var err error
		if liked, err = tx.Likes.GetPostIDsLikedBy(ctx, id); err != nil {
			return err
		}
		return tx.Users.DeleteUser(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}

	for _, postID := range liked {
		if err := s.deps.LikeCache.Invalidate(ctx, postID); err != nil {
			s.deps.Log.WithError(err).WithField("post", postID).Warn("failed to invalidate like count")
		}
	}
	return nil
}
