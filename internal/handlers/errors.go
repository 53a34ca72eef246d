package handlers

import (
	"errors"
	"net/http"

	"github.com/anonto42/microblog/backend/internal/apperr"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto HTTP responses
func toHTTPError(err error) error {
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	if ve, ok := apperr.IsValidation(err); ok {
		return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
			"message": ve.Message,
			"field":   ve.Field,
		})
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, apperr.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
}
