package main

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/genai"

	"github.com/jobreach/jobreach/internal/config"
	"github.com/jobreach/jobreach/internal/database"
	"github.com/jobreach/jobreach/internal/handler"
	"github.com/jobreach/jobreach/internal/logger"
	"github.com/jobreach/jobreach/internal/middleware"
	"github.com/jobreach/jobreach/internal/repository"
	"github.com/jobreach/jobreach/internal/router"
	"github.com/jobreach/jobreach/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Msg("starting JobReach server")

	// Connect to PostgreSQL
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("connected to PostgreSQL")

	// Connect to Redis
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("connected to Redis")

	// Session signing secret
	sessionSecret := []byte(cfg.Session.Secret)
	if len(sessionSecret) == 0 {
		sessionSecret = make([]byte, 32)
		if _, err := rand.Read(sessionSecret); err != nil {
			log.Fatal().Err(err).Msg("failed to generate session secret")
		}
		log.Warn().Msg("no session secret configured, sessions will not survive restarts")
	}

	// Profile storage
	profileStore := repository.NewProfileRepository(db)

	// Google OAuth client
	oauthCfg := service.NewGoogleOAuthConfig(cfg.Google)
	if oauthCfg == nil {
		log.Warn().Msg("Google OAuth client not configured, Gmail connect disabled")
	}

	// Gemini client
	var genaiClient *genai.Client
	if cfg.Gemini.APIKey != "" {
		genaiClient, err = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  cfg.Gemini.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create Gemini client")
		}
		log.Info().Str("model", cfg.Gemini.Model).Msg("Gemini client initialized")
	} else {
		log.Warn().Msg("Gemini API key not configured, generation endpoints disabled")
	}

	// Initialize services
	oauthSvc := service.NewOAuthService(oauthCfg, service.NewRedisStateStore(rdb), profileStore, log)
	credSvc := service.NewCredentialService(oauthCfg, profileStore, log)
	sendSvc := service.NewSendService(credSvc, profileStore, log)
	profileSvc := service.NewProfileService(profileStore, log)
	genSvc := service.NewGenerateService(genaiClient, cfg, log)

	// Initialize handlers
	h := handler.New(db, rdb, log, cfg, oauthSvc, profileSvc, sendSvc, genSvc)

	// Initialize middleware
	mw := middleware.New(rdb, log, cfg, sessionSecret)

	// Set up router
	r := router.New(h, mw, log, cfg.CORS.AllowedOrigins)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
