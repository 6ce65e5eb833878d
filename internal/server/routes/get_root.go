package routes

import (
	"net/http"

	"github.com/nodegen/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

// RootHandler is the liveness text the frontend polls.
func RootHandler(c echo.Context) error {
	return c.String(http.StatusOK, "Backend is alive")
}

func HealthHandler(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// SchemaHandler serves the JSON Schema of a generated document.
func SchemaHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, graph.DocumentSchema())
}
