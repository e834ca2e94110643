package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sentra-hq/sentra-cms/internal/config"
	"github.com/sentra-hq/sentra-cms/internal/database"
	sentraHttp "github.com/sentra-hq/sentra-cms/internal/http"
	uploadHandler "github.com/sentra-hq/sentra-cms/internal/http/upload"
	"github.com/sentra-hq/sentra-cms/internal/scripts"
	"github.com/sentra-hq/sentra-cms/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg)
	if err != nil {
		slog.Error("failed to init object storage", "error", err)
		os.Exit(1)
	}

	connStr, err := cfg.ConnectionString()
	if err != nil {
		slog.Error("invalid database config", "error", err)
		os.Exit(1)
	}

	// scripts like check-db need the pool; the upload endpoints do not.
	db, err := database.New(connStr)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	runner := scripts.NewRunner(store, db, cfg.Server.ScriptBudget)
	router := sentraHttp.NewFiles(uploadHandler.NewHandler(store, runner), cfg.Server.CORSOrigins)

	port := fmt.Sprintf(":%d", cfg.App.FilesPort)
	slog.Info("starting files server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
