package main

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/senpai80085/sevasetu/cmd"
	"github.com/senpai80085/sevasetu/internal/audit"
	"github.com/senpai80085/sevasetu/internal/data/memstore"
	"github.com/senpai80085/sevasetu/internal/data/repository"
	"github.com/senpai80085/sevasetu/internal/events"
	"github.com/senpai80085/sevasetu/internal/ledger"
	"github.com/senpai80085/sevasetu/internal/payment"
	"github.com/senpai80085/sevasetu/internal/trust"
	"github.com/senpai80085/sevasetu/internal/usecase"
	"github.com/senpai80085/sevasetu/internal/wire"
	"github.com/senpai80085/sevasetu/pkg/database"
	"github.com/senpai80085/sevasetu/pkg/mq"
	"github.com/senpai80085/sevasetu/pkg/utils"
)

const (
	shutdownTimeout   = 15 * time.Second
	ledgerResultQueue = "sevasetu.ledger.results"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("store", config.App.StoreDriver),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store driver
	repo, closeStore := openStore(ctx, config, logger)
	defer closeStore()

	// Message bus
	var publisher mq.JSONPublisher = mq.NopPublisher{}
	if config.Messaging.AMQPURL != "" {
		pub, err := mq.NewPublisher(config.Messaging.AMQPURL, config.Messaging.Exchange)
		if err != nil {
			logger.Fatal("Failed to connect to message broker", zap.Error(err))
		}
		publisher = pub
		logger.Info("Message broker connected", zap.String("exchange", config.Messaging.Exchange))
	}
	defer publisher.Close()

	// Out-of-request collaborators
	recorder := audit.NewAsyncRecorder(repo.Audit, config.Audit.Buffer, logger)
	emitter := events.NewBusEmitter(publisher, logger)
	submitter := ledger.NewBusSubmitter(publisher, repo.Rating, logger)
	recomputer := trust.NewRecomputer(repo, logger)
	scheduler, stopTrust := startTrust(config, recomputer, logger)

	collab := usecase.Collaborators{
		Payment: newGateway(config, logger),
		Audit:   recorder,
		Trust:   scheduler,
		Events:  emitter,
		Ledger:  submitter,
	}

	// Wire all dependencies
	app := wire.Wiring(repo, collab, config, logger)

	// Ledger results arrive on the bus when a broker is configured.
	var consumer *mq.Consumer
	if config.Messaging.AMQPURL != "" {
		consumer, err = mq.NewConsumer(config.Messaging.AMQPURL, config.Messaging.Exchange,
			ledgerResultQueue, []string{ledger.RoutingKeyResult})
		if err != nil {
			logger.Fatal("Failed to start ledger consumer", zap.Error(err))
		}
		deliveries, err := consumer.Deliveries(ctx)
		if err != nil {
			logger.Fatal("Failed to consume ledger results", zap.Error(err))
		}
		go ledger.NewListener(app.Service.Rating, logger).Run(ctx, deliveries)
	}

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, shutdownTimeout, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}

	// Drain background work
	cancel()
	if consumer != nil {
		_ = consumer.Close()
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer drainCancel()

	stopTrust(drainCtx)
	if err := emitter.Close(drainCtx); err != nil {
		logger.Warn("Event emitter did not drain", zap.Error(err))
	}
	if err := submitter.Close(drainCtx); err != nil {
		logger.Warn("Ledger submitter did not drain", zap.Error(err))
	}
	if err := recorder.Close(drainCtx); err != nil {
		logger.Warn("Audit recorder did not drain", zap.Error(err))
	}

	logger.Info("Shutdown complete")
}

func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (*repository.Repository, func()) {
	if config.App.StoreDriver == "memory" {
		store := memstore.New(config.Database.LockTimeout, logger)
		if err := store.SeedDemo(ctx, time.Now().UTC()); err != nil {
			logger.Fatal("Failed to seed demo caregivers", zap.Error(err))
		}
		logger.Warn("Using in-memory store, data is lost on exit")
		return store.Repository(), func() {}
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, db); err != nil {
			logger.Fatal("Failed to apply schema", zap.Error(err))
		}
		logger.Info("Database schema applied")
	}

	repo := repository.NewRepository(db, database.TxOptions{
		LockTimeout:      config.Database.LockTimeout,
		StatementTimeout: config.Database.StatementTimeout,
	}, logger)
	return repo, db.Close
}

func newGateway(config *utils.Config, logger *zap.Logger) payment.Gateway {
	if config.Payment.Provider == "stripe" {
		if config.Payment.SecretKey == "" {
			logger.Fatal("STRIPE_SECRET_KEY is required for the stripe payment provider")
		}
		return payment.NewStripeGateway(config.Payment.SecretKey, config.Payment.Method, logger)
	}
	logger.Warn("Using mock payment gateway")
	return payment.NewMockGateway(logger)
}

// startTrust returns the recompute scheduler and a function that stops it.
func startTrust(config *utils.Config, recomputer *trust.Recomputer, logger *zap.Logger) (trust.Scheduler, func(context.Context)) {
	if config.Trust.Queue == "asynq" {
		opt := asynq.RedisClientOpt{
			Addr:     config.Trust.RedisAddr,
			Password: config.Trust.RedisPassword,
			DB:       config.Trust.RedisDB,
		}
		scheduler := trust.NewQueueScheduler(opt, logger)
		srv, mux := trust.NewWorker(opt, recomputer, config.Trust.Workers, logger)
		if err := srv.Start(mux); err != nil {
			logger.Fatal("Failed to start trust worker", zap.Error(err))
		}
		logger.Info("Trust recompute queue started", zap.String("redis", config.Trust.RedisAddr))
		return scheduler, func(context.Context) {
			srv.Shutdown()
			if err := scheduler.Close(); err != nil {
				logger.Warn("Failed to close trust queue client", zap.Error(err))
			}
		}
	}

	pool := trust.NewPool(recomputer, config.Trust.Workers, config.Trust.QueueSize, logger)
	return pool, func(ctx context.Context) {
		if err := pool.Close(ctx); err != nil {
			logger.Warn("Trust pool did not drain", zap.Error(err))
		}
	}
}
