package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/f1stly/call-signaling/config"
	"github.com/f1stly/call-signaling/internal/handlers"
	"github.com/f1stly/call-signaling/internal/middleware"
	"github.com/f1stly/call-signaling/internal/presence"
	"github.com/f1stly/call-signaling/internal/signaling"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfg := config.Load()
	if cfg.Environment != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Presence durability is optional: without Redis the server still
	// relays calls, it just forgets statuses.
	var store presence.Store
	if redisStore, err := presence.NewRedisStore(ctx, cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without presence persistence")
		store = presence.NoopStore{}
	} else {
		log.Info().Msg("Redis connection established")
		store = redisStore
	}
	defer store.Close()

	coord := signaling.NewCoordinator(store, cfg.PresenceTimeout)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(handlers.OriginFilter(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Ops API (authenticated)
	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/auth/login", handlers.Login(cfg.JWTSecret))
		apiGroup.GET("/sessions", middleware.JWTAuth(cfg.JWTSecret), handlers.ListSessions(coord))
	}

	// WebSocket signaling endpoint
	router.GET("/ws", handlers.HandleSignaling(coord))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("signaling server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}
