package handlers

import (
	"net/http"

	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves profiles and the follow graph views of a user
type UserHandler struct {
	users   *services.UserService
	follows *services.FollowService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, follows *services.FollowService) *UserHandler {
	return &UserHandler{users: users, follows: follows}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.DELETE("/profile", h.DeleteUser)
	g.GET("/users/:username", h.GetUser)
	g.GET("/users/:username/relation", h.GetRelation)
	g.GET("/users/:username/following", h.GetFollowing)
	g.GET("/users/:username/followers", h.GetFollowers)
}

// GetProfile returns the authenticated user with follow counts
func (h *UserHandler) GetProfile(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	rel, err := h.follows.Relation(c.Request().Context(), me, me.Username)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"user":            me,
		"following_count": rel.FollowingCount,
		"follower_count":  rel.FollowerCount,
	})
}

func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.users.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, user.ToCompact())
}

// DeleteUser removes the authenticated account along with its posts, likes and follows
func (h *UserHandler) DeleteUser(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), me.ID); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) GetRelation(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	rel, err := h.follows.Relation(c.Request().Context(), me, c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, rel)
}

func (h *UserHandler) GetFollowing(c echo.Context) error {
	list, err := h.follows.FollowingOf(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, compactUsers(list))
}

func (h *UserHandler) GetFollowers(c echo.Context) error {
	list, err := h.follows.FollowersOf(c.Request().Context(), c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, compactUsers(list))
}
