package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	billingHandler "github.com/sentra-hq/sentra-cms/internal/http/billing"
	calendarHandler "github.com/sentra-hq/sentra-cms/internal/http/calendar"
	chatHandler "github.com/sentra-hq/sentra-cms/internal/http/chat"
	clientHandler "github.com/sentra-hq/sentra-cms/internal/http/client"
	exportHandler "github.com/sentra-hq/sentra-cms/internal/http/export"
	linkHandler "github.com/sentra-hq/sentra-cms/internal/http/link"
	sentramw "github.com/sentra-hq/sentra-cms/internal/http/middleware"
	progressHandler "github.com/sentra-hq/sentra-cms/internal/http/progress"
	uploadHandler "github.com/sentra-hq/sentra-cms/internal/http/upload"
	userHandler "github.com/sentra-hq/sentra-cms/internal/http/user"
	webhookHandler "github.com/sentra-hq/sentra-cms/internal/http/webhook"
)

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// NewAPI assembles the main API server: entity CRUD, auth and webhooks.
func NewAPI(
	clientsV1 *clientHandler.Handler,
	billingV1 *billingHandler.Handler,
	calendarV1 *calendarHandler.Handler,
	chatsV1 *chatHandler.Handler,
	progressV1 *progressHandler.Handler,
	linksV1 *linkHandler.Handler,
	usersV1 *userHandler.Handler,
	webhooksV1 *webhookHandler.Handler,
	exportV1 *exportHandler.Handler,
	validator sentramw.TokenValidator,
	corsOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(corsHandler(corsOrigins))

	loginLimiter := sentramw.NewRateLimiter(rate.Every(time.Second), 5)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(loginLimiter.Handler)
			usersV1.AuthRoutes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(sentramw.RequireAuth(validator))

			r.Route("/clients", clientsV1.Routes)
			r.Route("/tags", clientsV1.TagRoutes)
			r.Route("/invoices", billingV1.InvoiceRoutes)
			r.Route("/payments", billingV1.PaymentRoutes)
			r.Route("/calendar-events", calendarV1.Routes)
			r.Route("/chats", chatsV1.Routes)
			r.Route("/progress-steps", progressV1.Routes)
			r.Route("/client-links", linksV1.Routes)
			r.Route("/users", usersV1.Routes)
			r.Route("/export", exportV1.Routes)
		})
	})

	router.Route("/webhook", webhooksV1.Routes)

	return router
}

// NewFiles assembles the upload/ACL server.
func NewFiles(uploadsV1 *uploadHandler.Handler, corsOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(corsHandler(corsOrigins))
	router.Use(middleware.AllowContentType("application/json"))

	router.Route("/api", uploadsV1.Routes)

	return router
}
