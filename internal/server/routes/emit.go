package routes

import (
	"net/http"

	"github.com/nodegen/backend/pkg/graph"

	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Emit writes an outcome. Every outcome is sent with status 200: callers tell
// success from failure by the body shape, a bare document or {"error": ...}.
func Emit(c echo.Context, out graph.Outcome) error {
	switch {
	case out.Err != nil:
		return c.JSON(http.StatusOK, errorResponse{Error: "API call failed: " + out.Err.Error()})
	case out.Failure != nil:
		return c.JSON(http.StatusOK, errorResponse{Error: out.Failure.Message})
	default:
		return c.JSON(http.StatusOK, out.Document)
	}
}
