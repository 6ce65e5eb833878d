package middleware

import (
	"github.com/nodegen/backend/internal/config"
	"github.com/nodegen/backend/internal/storage"
	"github.com/nodegen/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

// App holds everything handlers share. It is built once at startup and never
// mutated afterwards.
type App struct {
	Config    config.Config
	Generator *graph.Generator
	Archive   storage.FailureArchive
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app}
			return next(cc)
		}
	}
}
