package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gustavo-laureano/checkers-backpropagation/internal/config"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/repository"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/repository/storage"
	"github.com/gustavo-laureano/checkers-backpropagation/internal/usecase"
	"github.com/gustavo-laureano/checkers-backpropagation/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application until SIGINT or SIGTERM.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.GameTTL)
	gameUseCase := usecase.NewGameUseCase(logger, gameRepo)
	router := rest.NewRouter(logger, rest.NewGameHandler(logger, gameUseCase))

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "redis", redisAddrString)

	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
