package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adam/api"
	"adam/catalog"
	"adam/config"
	"adam/logging"
	"adam/shared/kafka"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	settings := config.Load()

	port := flag.String("port", settings.Port, "HTTP API port")
	debug := flag.Bool("debug", settings.Debug, "Enable debug logging")
	flag.Parse()

	logger, err := logging.New(*debug)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if !*debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := catalog.NewSource(ctx, settings, logger)
	if err != nil {
		logger.Fatal("Failed to configure catalog source", zap.Error(err))
	}
	defer source.Close()

	// Cache invalidation is only useful when there is a cache to invalidate
	var consumer *kafka.Consumer
	if len(settings.KafkaBrokers) > 0 && source.Cache != nil {
		consumer, err = kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: settings.KafkaBrokers,
			Topic:   settings.KafkaTopic,
			GroupID: settings.KafkaGroupID,
			Handler: catalog.NewInvalidationHandler(source.Cache, logger),
			Logger:  logger,
		})
		if err != nil {
			logger.Warn("Failed to create Kafka consumer", zap.Error(err))
		} else {
			// Start waits for the first session; keep serving while it connects
			go func() {
				if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
					logger.Warn("Failed to start Kafka consumer", zap.Error(err))
				}
			}()
		}
	}

	srv := &http.Server{
		Addr:              ":" + *port,
		Handler:           api.NewRouter(source, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting catalog server",
			zap.String("addr", srv.Addr),
			zap.String("source", source.Name),
			zap.Bool("cached", source.Cache != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("Kafka consumer close error", zap.Error(err))
		}
	}
	logger.Info("Server stopped")
}
