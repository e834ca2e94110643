package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/sentra-hq/sentra-cms/internal/billing"
	billingStore "github.com/sentra-hq/sentra-cms/internal/billing/store"
	"github.com/sentra-hq/sentra-cms/internal/calendar"
	calendarStore "github.com/sentra-hq/sentra-cms/internal/calendar/store"
	"github.com/sentra-hq/sentra-cms/internal/chat"
	chatStore "github.com/sentra-hq/sentra-cms/internal/chat/store"
	"github.com/sentra-hq/sentra-cms/internal/client"
	clientStore "github.com/sentra-hq/sentra-cms/internal/client/store"
	"github.com/sentra-hq/sentra-cms/internal/config"
	"github.com/sentra-hq/sentra-cms/internal/database"
	"github.com/sentra-hq/sentra-cms/internal/export"
	sentraHttp "github.com/sentra-hq/sentra-cms/internal/http"
	billingHandler "github.com/sentra-hq/sentra-cms/internal/http/billing"
	calendarHandler "github.com/sentra-hq/sentra-cms/internal/http/calendar"
	chatHandler "github.com/sentra-hq/sentra-cms/internal/http/chat"
	clientHandler "github.com/sentra-hq/sentra-cms/internal/http/client"
	exportHandler "github.com/sentra-hq/sentra-cms/internal/http/export"
	linkHandler "github.com/sentra-hq/sentra-cms/internal/http/link"
	progressHandler "github.com/sentra-hq/sentra-cms/internal/http/progress"
	userHandler "github.com/sentra-hq/sentra-cms/internal/http/user"
	webhookHandler "github.com/sentra-hq/sentra-cms/internal/http/webhook"
	"github.com/sentra-hq/sentra-cms/internal/link"
	linkStore "github.com/sentra-hq/sentra-cms/internal/link/store"
	"github.com/sentra-hq/sentra-cms/internal/progress"
	progressStore "github.com/sentra-hq/sentra-cms/internal/progress/store"
	"github.com/sentra-hq/sentra-cms/internal/user"
	userStore "github.com/sentra-hq/sentra-cms/internal/user/store"
	"github.com/sentra-hq/sentra-cms/internal/webhook"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	connStr, err := cfg.ConnectionString()
	if err != nil {
		slog.Error("invalid database config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(connStr)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		clientService   = client.NewService(clientStore.New(db))
		progressService = progress.NewService(progressStore.New(db))
		billingService  = billing.NewService(billingStore.New(db), clientService, progressService)
		calendarService = calendar.NewService(calendarStore.New(db))
		chatService     = chat.NewService(chatStore.New(db))
		linkService     = link.NewService(linkStore.New(db))
		userService     = user.NewService(userStore.New(db), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		webhookService  = webhook.NewService(clientService, calendarService)
		exportService   = export.NewService(clientService, billingService)
	)

	var (
		clientH   = clientHandler.NewHandler(clientService)
		billingH  = billingHandler.NewHandler(billingService)
		calendarH = calendarHandler.NewHandler(calendarService)
		chatH     = chatHandler.NewHandler(chatService)
		progressH = progressHandler.NewHandler(progressService)
		linkH     = linkHandler.NewHandler(linkService)
		userH     = userHandler.NewHandler(userService)
		webhookH  = webhookHandler.NewHandler(webhookService, cfg.Webhook.GHLSecret)
		exportH   = exportHandler.NewHandler(exportService)
	)

	router := sentraHttp.NewAPI(
		clientH, billingH, calendarH, chatH, progressH, linkH, userH, webhookH, exportH,
		userService, cfg.Server.CORSOrigins,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting api server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
