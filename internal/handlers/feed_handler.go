package handlers

import (
	"math"
	"net/http"

	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feeds *services.FeedService
	users *services.UserService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feeds *services.FeedService, users *services.UserService) *FeedHandler {
	return &FeedHandler{feeds: feeds, users: users}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the feed of the current user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	page, limit := pagination(c, 20, 100)

	feed, err := h.feeds.For(c.Request().Context(), me, models.Page{Offset: (page - 1) * limit, Limit: limit})
	if err != nil {
		return toHTTPError(err)
	}

	totalPages := int(math.Ceil(float64(feed.Total) / float64(limit)))

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    feed,
		"meta": echo.Map{
			"scope":           h.feeds.Scope(),
			"currentPage":     page,
			"totalPages":      totalPages,
			"totalItems":      feed.Total,
			"itemsPerPage":    limit,
			"hasNextPage":     page < totalPages,
			"hasPreviousPage": page > 1,
		},
	})
}
