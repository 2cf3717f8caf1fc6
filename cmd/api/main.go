package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobxnepal/backend/internal/auth"
	"github.com/jobxnepal/backend/internal/database"
	"github.com/jobxnepal/backend/internal/logger"
	"github.com/jobxnepal/backend/internal/router"
	"github.com/jobxnepal/backend/internal/services"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	logger.Init()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, relying on environment")
	}

	if err := auth.InitJWTSecret(); err != nil {
		log.Fatal().Err(err).Msg("auth setup failed")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL environment variable is not set")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}
	log.Info().Msg("database connection established")

	storage, err := services.NewCloudinaryStorage(
		os.Getenv("CLOUDINARY_CLOUD_NAME"),
		os.Getenv("CLOUDINARY_API_KEY"),
		os.Getenv("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cloudinary setup failed")
	}

	mailer := services.NewSMTPMailer(services.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Mail:     os.Getenv("SMTP_MAIL"),
		Password: os.Getenv("SMTP_PASSWORD"),
	})

	notifier := services.NewNotifierService(db, mailer)
	notifier.Start()

	r := router.NewRouter(db, storage, os.Getenv("FRONTEND_URL"))

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
		log.Info().Msg("PORT not set, defaulting to 4000")
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	notifier.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	if err := database.Close(db); err != nil {
		log.Error().Err(err).Msg("closing database failed")
	}
}
