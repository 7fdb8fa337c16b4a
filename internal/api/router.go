package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/panel-console/internal/api/handlers"
	"github.com/isdelr/panel-console/internal/formguard"
	"github.com/isdelr/panel-console/internal/notify"
	"github.com/isdelr/panel-console/internal/services"
	"github.com/isdelr/panel-console/internal/ui"
	"github.com/isdelr/panel-console/internal/validate"
	"github.com/isdelr/panel-console/internal/view"
	"github.com/isdelr/panel-console/internal/websocket"
)

// Deps are the components the router exposes.
type Deps struct {
	Hub            *websocket.Hub
	Renderer       *view.Renderer
	Page           handlers.PageConfig
	Backups        services.BackupServiceProvider
	Service        services.ServiceControlProvider
	Events         services.EventServiceProvider
	Notifications  *notify.Center
	Guards         *formguard.Registry
	Validators     map[string]*validate.Validator
	Loading        *ui.Indicator
	Dialog         *ui.Dialog
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(d.Page, d.Renderer, d.Backups, d.Notifications, d.Loading, d.Dialog, d.Guards)
	backupHandler := handlers.NewBackupHandler(d.Backups, d.Dialog, d.Renderer)
	serviceHandler := handlers.NewServiceHandler(d.Service)
	formHandler := handlers.NewFormHandler(d.Guards, d.Validators, d.Notifications)
	notificationHandler := handlers.NewNotificationHandler(d.Notifications)
	eventHandler := handlers.NewEventHandler(d.Events)
	wsHandler := handlers.NewWebSocketHandler(d.Hub, d.AllowedOrigins)

	r.Get("/", pageHandler.Serve)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(view.Static()))))
	r.Get("/ws", wsHandler.Serve)

	r.Route("/ui", func(r chi.Router) {
		r.Route("/backups", func(r chi.Router) {
			r.Get("/", backupHandler.List)
			r.Post("/open", backupHandler.Open)
			r.Post("/close", backupHandler.Close)
			r.Post("/restore", backupHandler.Restore)
		})
		r.Post("/service/restart", serviceHandler.Restart)

		r.Route("/forms/{form}", func(r chi.Router) {
			r.Post("/change", formHandler.Change)
			r.Post("/submit", formHandler.Submit)
			r.Get("/guard", formHandler.Guard)
			r.Post("/close", formHandler.Close)
		})
		r.Post("/validate", formHandler.Validate)

		r.Get("/notifications", notificationHandler.List)
		r.Post("/notifications", notificationHandler.Create)
		r.Delete("/notifications/{id}", notificationHandler.Dismiss)
	})

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/events", eventHandler.GetRecent)
	})

	return r
}
