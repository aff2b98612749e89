package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/michaelito80us/lufy/config"
	"github.com/michaelito80us/lufy/db"
	"github.com/michaelito80us/lufy/handler"
	"github.com/michaelito80us/lufy/logger"
	"github.com/michaelito80us/lufy/middleware"
	"github.com/michaelito80us/lufy/repository"
	"github.com/michaelito80us/lufy/service"
	"github.com/michaelito80us/lufy/storage"
)

const maxRequestBodyBytes = 64 << 20

func main() {
	cfg := config.LoadConfig()

	logger.Init(logger.Config{
		ServiceName: "lufy",
		Environment: cfg.Environment,
		LogFilePath: cfg.LogFilePath,
		HMACKey:     cfg.LogHMACKey,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})

	conn, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal(logger.EventDBConnection, "Failed to connect to database", logger.Fields(
			"error", err.Error(),
		))
	}
	defer conn.Close()

	userRepo := repository.NewUserRepository(conn)
	artistRepo := repository.NewArtistRepository(conn)
	trackRepo := repository.NewTrackRepository(conn)
	subRepo := repository.NewSubscriptionRepository(conn)

	store := storage.NewStore(cfg.UploadRoot, cfg.PublicUploadBase)
	evaluator := service.NewEntitlementEvaluator(subRepo)

	userService := service.NewUserService(userRepo)
	artistService := service.NewArtistService(artistRepo)
	trackService := service.NewTrackService(trackRepo, artistRepo, subRepo, evaluator, store)
	subscriptionService := service.NewSubscriptionService(subRepo, artistRepo)
	analyticsService := service.NewAnalyticsService(artistRepo, trackRepo, subRepo, service.NewSyntheticPlaySource())

	userHandler := handler.NewUserHandler(userService, cfg.JWTSecret)
	artistHandler := handler.NewArtistHandler(artistService)
	trackHandler := handler.NewTrackHandler(
		trackService,
		middleware.AudioUploadConfig(cfg.MaxAudioSizeMB),
		middleware.ImageUploadConfig(cfg.MaxImageSizeMB),
	)
	subscriptionHandler := handler.NewSubscriptionHandler(subscriptionService)
	adminHandler := handler.NewAdminHandler(subscriptionService, analyticsService)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestValidation(maxRequestBodyBytes))

	generalLimiter := middleware.NewRateLimiter(100, time.Minute)
	authLimiter := middleware.NewRateLimiter(5, time.Minute)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "lufy"})
	})

	router.Static(cfg.PublicUploadBase, cfg.UploadRoot)

	api := router.Group("/api/v1")
	api.Use(generalLimiter.Middleware())
	{
		auth := api.Group("/auth")
		auth.Use(authLimiter.Middleware())
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			protected.GET("/users/me", userHandler.Me)

			protected.POST("/artists/setup", artistHandler.Setup)
			protected.GET("/artists/me", artistHandler.Me)
			protected.PATCH("/artists/me", artistHandler.UpdateMe)

			protected.GET("/tracks", trackHandler.List)
			protected.POST("/tracks", trackHandler.Upload)
			protected.GET("/tracks/:id", trackHandler.Get)
			protected.PATCH("/tracks/:id", trackHandler.Update)
			protected.DELETE("/tracks/:id", trackHandler.Delete)
			protected.POST("/tracks/cover-art", trackHandler.UploadCoverArt)
			protected.DELETE("/tracks/cover-art", trackHandler.RemoveCoverArt)

			protected.POST("/subscriptions", subscriptionHandler.Create)
			protected.GET("/subscriptions", subscriptionHandler.ListOwn)
			protected.GET("/subscriptions/check", subscriptionHandler.Check)
			protected.GET("/subscriptions/:id", subscriptionHandler.Get)
			protected.PATCH("/subscriptions/:id", subscriptionHandler.Update)
			protected.DELETE("/subscriptions/:id", subscriptionHandler.Cancel)

			admin := protected.Group("/admin")
			{
				admin.GET("/subscribers", adminHandler.ListSubscribers)
				admin.PATCH("/subscribers", adminHandler.BulkUpdateSubscribers)
				admin.GET("/analytics", adminHandler.Analytics)
			}
		}
	}

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info(logger.EventServiceStartup, "Server starting", logger.Fields(
			"port", cfg.ServerPort,
			"environment", cfg.Environment,
		))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(logger.EventServiceStartup, "Server failed", logger.Fields(
				"error", err.Error(),
			))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(logger.EventServiceShutdown, "Server shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error(logger.EventServiceShutdown, "Forced shutdown", logger.Fields(
			"error", err.Error(),
		))
	}
}
