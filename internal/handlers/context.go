package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/anonto42/microblog/backend/internal/models"
	"github.com/anonto42/microblog/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the user id carried by the JWT, or 0 when unauthenticated
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// currentUser loads the authenticated account. A token outliving its account is rejected.
func currentUser(c echo.Context, users *services.UserService) (*models.User, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	user, err := users.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "User no longer exists")
		}
		return nil, err
	}
	return user, nil
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusNotFound, "Invalid "+name)
	}
	return uint(id), nil
}

// pagination reads page and limit query parameters, falling back to defaults.
// page is capped so that (page-1)*limit always fits an int32 offset.
func pagination(c echo.Context, defaultLimit, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}
	return page, limit
}
