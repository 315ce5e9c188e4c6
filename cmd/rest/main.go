package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"content-platform-be/internal/bootstrap"
	"content-platform-be/internal/config"
	"content-platform-be/internal/server"
	"content-platform-be/internal/tracer"
	"content-platform-be/pkg/database"

	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	logLevel := gormlogger.Info
	if cfg.IsProduction() {
		logLevel = gormlogger.Warn
	}
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.WithLogLevel(logLevel))
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	shutdownTracer := tracer.InitTracer(cfg.Tracing, container.Logger)
	defer shutdownTracer(context.Background())

	// 4. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Panicf("Unable to start index consumer: %v", err)
	}

	// Content edited while the consumer was down still needs descriptors.
	go func() {
		if _, err := container.ContentService.Reindex(ctx); err != nil {
			container.Logger.Warn("Main", "Startup reindex failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		container.Logger.Info("Main", "Shutting down", nil)
		if err := srv.Shutdown(); err != nil {
			container.Logger.Error("Main", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		container.Logger.Error("Main", "Server stopped", map[string]interface{}{"error": err.Error()})
	}

	if err := container.Close(); err != nil {
		container.Logger.Warn("Main", "Errors while releasing resources", map[string]interface{}{"error": err.Error()})
	}
}
