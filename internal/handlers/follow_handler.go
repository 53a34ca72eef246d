package handlers

import (
	"net/http"

	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow-related HTTP requests
type FollowHandler struct {
	follows *services.FollowService
	users   *services.UserService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(follows *services.FollowService, users *services.UserService) *FollowHandler {
	return &FollowHandler{follows: follows, users: users}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:username/follow", h.Follow)
	g.DELETE("/users/:username/follow", h.Unfollow)
}

func (h *FollowHandler) Follow(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	if err := h.follows.Follow(c.Request().Context(), me, c.Param("username")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

func (h *FollowHandler) Unfollow(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	if err := h.follows.Unfollow(c.Request().Context(), me, c.Param("username")); err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

func compactUsers(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
