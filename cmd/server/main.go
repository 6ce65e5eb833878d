package main

import (
	"github.com/nodegen/backend/internal/config"
	"github.com/nodegen/backend/internal/server"
	"github.com/nodegen/backend/internal/util"
	"github.com/nodegen/backend/pkg/logger"
	"github.com/nodegen/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	cfg := config.Load()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Format: cfg.LogFormat,
	})
	logger.Init(consoleLogger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}

	server.Init(cfg)
}
