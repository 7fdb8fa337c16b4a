package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/panel-console/internal/api"
	"github.com/isdelr/panel-console/internal/api/handlers"
	"github.com/isdelr/panel-console/internal/config"
	"github.com/isdelr/panel-console/internal/database"
	"github.com/isdelr/panel-console/internal/formguard"
	"github.com/isdelr/panel-console/internal/logger"
	"github.com/isdelr/panel-console/internal/monitoring"
	"github.com/isdelr/panel-console/internal/notify"
	"github.com/isdelr/panel-console/internal/panelapi"
	"github.com/isdelr/panel-console/internal/services"
	"github.com/isdelr/panel-console/internal/ui"
	"github.com/isdelr/panel-console/internal/validate"
	"github.com/isdelr/panel-console/internal/view"
	"github.com/isdelr/panel-console/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFile)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	renderer, err := view.New(time.Local)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	pub := api.NewPagePublisher(hub, renderer)

	notifications := notify.NewCenter(cfg.NotificationTTL)
	notifications.Subscribe(pub)

	loading := ui.NewIndicator(pub)
	dialog := ui.NewDialog("backupModal", pub)
	reloader := ui.NewReloader(pub)

	// Set up services
	upstream := panelapi.NewClient(cfg.UpstreamURL, cfg.RequestTimeout)
	eventService := services.NewEventService(db)
	backupService := services.NewBackupService(upstream, services.Widgets{
		Notifier: notifications,
		Loading:  loading,
		Dialog:   dialog,
		Reloader: reloader,
	}, eventService, cfg.ReloadDelay)
	backupService.OnListChange(pub.BackupsChanged)
	serviceControl := services.NewServiceControl(upstream, notifications, loading, eventService)

	fields := view.ConfigFields()
	guards := formguard.NewRegistry()
	guards.Watch(view.ConfigFormID, view.FieldNames(fields)...)

	// Set up and run the background scheduler
	scheduler := monitoring.NewScheduler(eventService, cfg.EventRetentionDays)
	if err := scheduler.Every("@hourly", "sweep form guards", func() {
		if n := guards.Sweep(24 * time.Hour); n > 0 {
			log.Debug().Int("removed", n).Msg("Dropped idle form guards")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule guard sweep")
	}
	if err := scheduler.Run(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	// Set up router
	router := api.NewRouter(api.Deps{
		Hub:      hub,
		Renderer: renderer,
		Page: handlers.PageConfig{
			Title:      "Configuration",
			FormID:     view.ConfigFormID,
			FormAction: cfg.UpstreamURL + panelapi.DefaultPaths.Setup,
			Fields:     fields,
		},
		Backups:        backupService,
		Service:        serviceControl,
		Events:         eventService,
		Notifications:  notifications,
		Guards:         guards,
		Validators:     map[string]*validate.Validator{view.ConfigFormID: validate.ConfigForm()},
		Loading:        loading,
		Dialog:         dialog,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("upstream", cfg.UpstreamURL).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	scheduler.Stop()
	reloader.Stop()
	notifications.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("Server exiting")
}
