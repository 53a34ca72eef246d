package handlers

import (
	"net/http"

	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like-related HTTP requests
type LikeHandler struct {
	likes *services.LikeService
	users *services.UserService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likes *services.LikeService, users *services.UserService) *LikeHandler {
	return &LikeHandler{likes: likes, users: users}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
	g.GET("/posts/:id/like", h.GetLikeStatus)
}

// LikePost likes a post. Liking twice is harmless.
func (h *LikeHandler) LikePost(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	status, err := h.likes.Like(c.Request().Context(), postID, me)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, status)
}

// UnlikePost withdraws a like
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	status, err := h.likes.Unlike(c.Request().Context(), postID, me)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, status)
}

func (h *LikeHandler) GetLikeStatus(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	postID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	status, err := h.likes.Status(c.Request().Context(), postID, me)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, status)
}
