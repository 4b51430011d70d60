// main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/irwanphan/tunggu.online/config"
	"github.com/irwanphan/tunggu.online/database"
	"github.com/irwanphan/tunggu.online/handlers"
	"github.com/irwanphan/tunggu.online/logger"
	"github.com/irwanphan/tunggu.online/middleware"
	"github.com/irwanphan/tunggu.online/monitoring"
	"github.com/irwanphan/tunggu.online/store"
	"github.com/irwanphan/tunggu.online/utils"
	"github.com/irwanphan/tunggu.online/web"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- PostgreSQL (users and sites) ---
	dbClient, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL database")
	}
	defer dbClient.Close()

	// --- ClickHouse (events) ---
	chClient, err := database.NewClickHouseDB(cfg.ClickHouse)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize ClickHouse database")
	}
	defer chClient.Close()

	// --- Stores ---
	userStore := store.NewUserStore(dbClient.DB)
	siteStore := store.NewSiteStore(dbClient.DB)
	eventStore := store.NewEventStore(chClient)

	// --- Handlers ---
	jwtManager := utils.NewJWTManager(cfg.JWTSecret)
	authHandlers := handlers.NewAuthHandlers(userStore, jwtManager)
	siteHandlers := handlers.NewSiteHandlers(siteStore)
	eventHandlers := handlers.NewEventHandlers(eventStore, siteStore)
	analyticsHandlers := handlers.NewAnalyticsHandlers(eventStore)
	monitoringHandlers := handlers.NewMonitoringHandlers(monitoring.NewChecker(monitoring.DefaultWebsites))

	r := gin.Default()

	r.Use(middleware.CORSMiddleware(cfg.FrontendOrigin))

	r.GET("/tracker.js", web.ServeTracker)

	api := r.Group("/api")
	{
		// The collector posts here cross-origin from tracked pages.
		api.POST("/events", eventHandlers.TrackEvent)

		api.POST("/signup", authHandlers.Signup)
		api.POST("/login", authHandlers.Login)
		api.POST("/logout", authHandlers.Logout)
		api.GET("/monitoring", monitoringHandlers.GetMonitoring)

		protected := api.Group("/")
		protected.Use(middleware.AuthRequired(jwtManager))
		{
			protected.GET("/profile", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"user_id":    c.MustGet("user_id").(int),
					"user_email": c.MustGet("user_email").(string),
				})
			})

			protected.GET("/sites", siteHandlers.ListSites)
			protected.POST("/sites", siteHandlers.CreateSite)

			stats := protected.Group("/stats")
			stats.Use(middleware.RequireSiteOwnership(siteStore))
			{
				stats.GET("/analytics", analyticsHandlers.GetAnalytics)
				stats.GET("/heatmap/clicks", analyticsHandlers.GetHeatmapClicks)
				stats.GET("/heatmap/urls", analyticsHandlers.GetHeatmapURLs)
			}
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("API server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("API server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
