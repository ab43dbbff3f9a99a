package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mernventory/inventory-api/internal/auth"
	"github.com/mernventory/inventory-api/internal/config"
	"github.com/mernventory/inventory-api/internal/handler"
	"github.com/mernventory/inventory-api/internal/mailer"
	"github.com/mernventory/inventory-api/internal/repository"
	"github.com/mernventory/inventory-api/internal/usecase"
	"github.com/mernventory/inventory-api/internal/validation"
)

const (
	mongoPingTimeout = 5 * time.Second
	shutdownTimeout  = 15 * time.Second
)

func main() {
	logger := newLogger()
	cfg := config.New(&logger)

	client, db := connectMongo(&logger, cfg)
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), mongoPingTimeout)
	defer cancel()

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	tokenRepo := repository.NewPasswordResetTokenMongoRepository(ctx, &logger, db)
	productRepo := repository.NewProductMongoRepository(db)

	jwtAuth := auth.NewJWTAuthenticator(
		cfg.Token.Secret,
		cfg.Token.Issuer,
		cfg.Token.SessionTokenExpiresIn,
	)

	appMailer := mailer.NewMailer(&logger)

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth)
	userUsecase := usecase.NewUserUsecase(userRepo)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, tokenRepo, appMailer, usecase.PasswordResetConfig{
		FrontendURL: cfg.FrontendURL,
		ExpiresIn:   cfg.Token.PasswordResetTokenExpiresIn,
	})
	productUsecase := usecase.NewProductUsecase(productRepo)

	userHandler := handler.NewUserHandler(
		authUsecase,
		userUsecase,
		passwordResetUsecase,
		jwtAuth,
		validator,
		&logger,
		cfg.Token.SessionTokenExpiresIn,
	)
	productHandler := handler.NewProductHandler(productUsecase, validator, &logger)

	router := handler.NewRouter(userHandler, productHandler, jwtAuth, userRepo, &logger)

	runServer(&logger, cfg.Port, router)
}

func newLogger() zerolog.Logger {
	if os.Getenv("APP_ENV") == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func connectMongo(logger *zerolog.Logger, cfg *config.Config) (*mongo.Client, *mongo.Database) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoPingTimeout)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}

	logger.Info().Msg("connected to MongoDB")

	return client, client.Database(cfg.MongoDB)
}

func runServer(logger *zerolog.Logger, port string, router http.Handler) {
	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-shutdownSignal
	logger.Info().Msg("shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
