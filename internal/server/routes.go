package server

import (
	"github.com/nodegen/backend/internal/server/routes"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check routes
	e.GET("/", routes.RootHandler)
	e.GET("/health", routes.HealthHandler)

	e.GET("/schema", routes.SchemaHandler)
	e.POST("/generate", routes.GenerateHandler)
}
