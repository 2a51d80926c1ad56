package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lovemap/lovemap-api/internal/config"
	"github.com/lovemap/lovemap-api/internal/database"
	"github.com/lovemap/lovemap-api/internal/handlers"
	authmw "github.com/lovemap/lovemap-api/internal/middleware"
	"github.com/lovemap/lovemap-api/internal/services"
	"github.com/lovemap/lovemap-api/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	setupLogger(cfg.LogLevel)

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	userService := services.NewUserService(db)
	tokenService := services.NewTokenService(db)
	pinService := services.NewPinService(db)
	chatService := services.NewChatService(db)
	messageLimiter := services.NewRateLimiter(cfg.MessageRateLimit, cfg.MessageRateWindow)
	defer messageLimiter.Stop()
	messageService := services.NewMessageService(db, chatService, messageLimiter)

	hub := sse.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(cfg, userService, tokenService, jwtService)
	userHandler := handlers.NewUserHandler(userService)
	pinHandler := handlers.NewPinHandler(pinService, hub)
	chatHandler := handlers.NewChatHandler(chatService, messageService, userService, hub)
	sseHandler := handlers.NewSSEHandler(hub, pinService, chatService, messageService)

	ipLimiter := authmw.NewRateLimit(20, 40)
	defer ipLimiter.Stop()

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())
	app.Use(ipLimiter.Handler())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/exchange", authHandler.ExchangeCode)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Post("/auth/logout-all", authHandler.LogoutAll)

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/pins", pinHandler.List)
	protected.Get("/pins/me", pinHandler.GetMine)
	protected.Post("/pins/me", pinHandler.Upsert)
	protected.Delete("/pins/me", pinHandler.Delete)

	protected.Get("/chats", chatHandler.ListActive)
	protected.Get("/chat-requests", chatHandler.ListRequests)
	protected.Get("/chat-with/:userId", chatHandler.GetState)
	protected.Post("/chat-with/:userId/request", chatHandler.Request)
	protected.Post("/chats/:chatKey/accept", chatHandler.Accept)
	protected.Post("/chats/:chatKey/reject", chatHandler.Reject)
	protected.Get("/chats/:chatKey/messages", chatHandler.ListMessages)
	protected.Post("/chats/:chatKey/messages", chatHandler.SendMessage)

	protected.Get("/events", sseHandler.Connect)
	protected.Post("/sse/:clientId/subscribe/:topic", sseHandler.Subscribe)
	protected.Post("/sse/:clientId/unsubscribe/:topic", sseHandler.Unsubscribe)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info().Str("addr", addr).Msg("server starting")
		if err := app.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
