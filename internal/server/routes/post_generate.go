package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/nodegen/backend/internal/server/middleware"
	"github.com/nodegen/backend/internal/storage"
	"github.com/nodegen/backend/pkg/graph"
	"github.com/nodegen/backend/pkg/logger"

	"github.com/labstack/echo/v4"
)

const archiveTimeout = 10 * time.Second

// GenerateHandler turns a prompt into a node graph
func GenerateHandler(c echo.Context) error {
	type generateBody struct {
		Prompt string `json:"prompt"`
	}

	data := new(generateBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{
			Error: "Invalid request body",
		})
	}

	app := c.(*middleware.AppContext).App
	requestID := middleware.RequestID(c)
	ctx := c.Request().Context()

	out := app.Generator.Generate(ctx, data.Prompt)
	switch {
	case out.Err != nil:
		logger.Error("Model call failed", "request_id", requestID, "err", out.Err)
	case out.Failure != nil:
		logger.Warn("Model reply could not be normalized", "request_id", requestID, "err", out.Failure)
		archiveFailure(app, requestID, out.Failure)
	default:
		nodes := -1
		if arr, ok := out.Document.([]any); ok {
			nodes = len(arr)
		}
		logger.Info("Generated graph", "request_id", requestID, "nodes", nodes)
	}

	return Emit(c, out)
}

func archiveFailure(app *middleware.App, requestID string, failure *graph.NormalizationFailure) {
	if app.Archive == nil {
		return
	}

	record := storage.NewFailureRecord(requestID, app.Generator.Client().Name(), failure)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()

		key, err := app.Archive.Store(ctx, record)
		if err != nil {
			logger.Error("Failed to archive model reply", "request_id", requestID, "err", err)
			return
		}
		if key != "" {
			logger.Debug("Archived model reply", "request_id", requestID, "key", key)
		}
	}()
}
