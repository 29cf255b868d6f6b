package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v6"
	"github.com/samber/do"
	"github.com/serroba/recipe-links/internal/container"
	"github.com/serroba/recipe-links/internal/messaging"
	"go.uber.org/zap"
)

func main() {
	cfg := &container.ConsumerConfig{}
	if err := env.Parse(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse config: %v\n", err)
		os.Exit(1)
	}

	injector := do.New()
	do.ProvideValue(injector, cfg)
	container.LoggerPackage(injector, cfg.LogFormat, cfg.LogLevel)
	container.RedisPackage(injector, cfg.RedisAddr)
	container.PostgresPackage(injector, cfg.DatabaseURL)
	container.AnalyticsStorePackage(injector)
	container.ConsumerGroupPackage(injector)

	logger, err := do.Invoke[*zap.Logger](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create logger: %v\n", err)
		os.Exit(1)
	}

	group, err := do.Invoke[*messaging.ConsumerGroup](injector)
	if err != nil {
		logger.Fatal("failed to build consumer group", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = group.Start(ctx); err != nil {
		logger.Fatal("failed to start consumer group", zap.Error(err))
	}

	logger.Info("consumer started",
		zap.String("group", cfg.ConsumerGroup),
		zap.String("store", cfg.AnalyticsStore),
	)

	<-ctx.Done()

	logger.Info("shutting down")

	if err = injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}
