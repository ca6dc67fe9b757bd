package main

import (
	"context"
	"log"
	"os"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/tasklist-service/config"
	"github.com/example/tasklist-service/modules/api"
	"github.com/example/tasklist-service/modules/notification"
	"github.com/example/tasklist-service/modules/task"
	"github.com/example/tasklist-service/modules/user"
	"github.com/example/tasklist-service/storage"
)

func main() {
	log.Println("=== Task List Service - Fiber + MongoDB ===")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logLevel := mono.LogLevelInfo
	if cfg.LogLevel == "error" {
		logLevel = mono.LogLevelError
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	connectCtx, cancel := context.WithTimeout(context.Background(), cfg.MongoOpTimeout)
	gateway, err := storage.Connect(connectCtx, storage.Config{
		URI:        cfg.MongoURI,
		Database:   cfg.MongoDatabase,
		Collection: cfg.MongoCollection,
		OpTimeout:  cfg.MongoOpTimeout,
	})
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	logger.Info("Connected to MongoDB", "database", cfg.MongoDatabase, "collection", cfg.MongoCollection)

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - notification: Event consumer (activity log in SQLite)
	// - user: User documents
	// - task: Core domain (task lifecycle, emits events)
	// - api: Driving adapter (Fiber HTTP server, depends on task, user, notification)
	app.Register(notification.NewModule(cfg.ActivityDBPath, logger.WithModule("notification")))
	app.Register(user.NewModule(gateway, logger.WithModule("user")))
	app.Register(task.NewModule(gateway, logger.WithModule("task")))
	app.Register(api.NewModule(cfg.HTTPAddr, cfg.CORSAllowedOrigins, logger.WithModule("api")))

	// Start application
	if err := app.Start(context.Background()); err != nil {
		_ = gateway.Close(context.Background())
		log.Fatalf("Failed to start application: %v", err)
	}

	logger.Info("Task List Service started", "addr", cfg.HTTPAddr)
	logger.Info("Press Ctrl+C to shutdown gracefully")

	// Graceful shutdown: stop the modules before the Mongo client they use
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				if err := app.Stop(ctx); err != nil {
					return err
				}
				return gateway.Close(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}
