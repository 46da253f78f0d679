// Package elearning собирает и запускает основное HTTP-приложение платформы.
package elearning

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/bsanthoshbsr/elearning-platform/internal/cache"
	"github.com/bsanthoshbsr/elearning-platform/internal/config"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/jwt"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/password"
	"github.com/bsanthoshbsr/elearning-platform/internal/lib/rabbitmq"
	"github.com/bsanthoshbsr/elearning-platform/internal/migrations"
	authservice "github.com/bsanthoshbsr/elearning-platform/internal/services/auth"
	courseservice "github.com/bsanthoshbsr/elearning-platform/internal/services/course"
	enrollmentservice "github.com/bsanthoshbsr/elearning-platform/internal/services/enrollment"
	notifierservice "github.com/bsanthoshbsr/elearning-platform/internal/services/notifier"
	"github.com/bsanthoshbsr/elearning-platform/internal/storage/repository"
)

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	hasher := password.NewHasher(cfg.BcryptCost)
	notifier := notifierservice.NewNotifierService(ch, logger)

	authService := authservice.NewAuthService(db, hasher, jwtMaker, notifier, logger)
	courseService := courseservice.NewCourseService(db, cacheRedis, logger)
	enrollmentService := enrollmentservice.NewEnrollmentService(db, db, db, notifier, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, authService, courseService, enrollmentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.conn.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
