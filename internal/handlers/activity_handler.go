package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anonto42/microblog/backend/internal/events"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ActivitySource returns the most recent events caused by an actor
type ActivitySource interface {
	Recent(ctx context.Context, actorID uint, limit int64) ([]events.Event, error)
}

// ActivityHandler exposes the event journal of the authenticated user
type ActivityHandler struct {
	journal ActivitySource
	users   *services.UserService
}

func NewActivityHandler(journal ActivitySource, users *services.UserService) *ActivityHandler {
	return &ActivityHandler{journal: journal, users: users}
}

func (h *ActivityHandler) RegisterActivityRoutes(g *echo.Group) {
	g.GET("/activity", h.GetActivity)
}

func (h *ActivityHandler) GetActivity(c echo.Context) error {
	me, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	list, err := h.journal.Recent(c.Request().Context(), me.ID, limit)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"events": list})
}
