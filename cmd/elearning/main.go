// Package main содержит точку входа для основного сервиса платформы.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bsanthoshbsr/elearning-platform/internal/app/elearning"
	"github.com/bsanthoshbsr/elearning-platform/internal/config"
)

// @title E-Learning Platform API
// @version 1.0
// @description Сервис управления пользователями, курсами и зачислениями.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting elearning-service", slog.String("env", cfg.Env))
	logger.Debug("debug messages are enabled")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := elearning.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize elearning app", slog.Any("err", err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil {
		logger.Error("elearning app stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("elearning app stopped gracefully")
}
