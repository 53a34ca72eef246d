package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the API process is up
func HealthCheck(e echo.Context) error {
	return e.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "microblog-api",
	})
}
