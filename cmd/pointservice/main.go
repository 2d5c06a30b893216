// Package main запускает HTTP-сервер сервиса баллов.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/point-service/internal/config"
	"github.com/mmeshcher/point-service/internal/handler"
	"github.com/mmeshcher/point-service/internal/keylock"
	"github.com/mmeshcher/point-service/internal/policy"
	"github.com/mmeshcher/point-service/internal/repository"
	"github.com/mmeshcher/point-service/internal/service"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	points := repository.NewPointTable(
		time.Duration(cfg.ReadLatencyMS)*time.Millisecond,
		time.Duration(cfg.WriteLatencyMS)*time.Millisecond,
	)
	history := repository.NewHistoryTable()

	svc := service.NewService(points, history, keylock.New(), policy.Rules{CapTotal: cfg.CapTotal})

	// Стартовый баланс задаётся явно при запуске, а не в пути чтения хранилища.
	if id, point, ok, err := cfg.Seed(); err != nil {
		sugar.Fatalw("seed error", "error", err.Error())
	} else if ok {
		seedCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if _, err := points.Upsert(seedCtx, id, point); err != nil {
			cancel()
			sugar.Fatalw("seed error", "error", err.Error())
		}
		cancel()
		sugar.Infow("seeded initial balance", "userID", id, "point", point)
	}

	h := handler.NewHandler(svc, logger)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting point server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
