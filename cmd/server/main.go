package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/simaogato/invoicedesk-backend/internal/adapter/events"
	grpcadapter "github.com/simaogato/invoicedesk-backend/internal/adapter/grpc"
	"github.com/simaogato/invoicedesk-backend/internal/adapter/queue"
	"github.com/simaogato/invoicedesk-backend/internal/adapter/repository/memory"
	"github.com/simaogato/invoicedesk-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/invoicedesk-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/invoicedesk-backend/internal/adapter/web"
	"github.com/simaogato/invoicedesk-backend/internal/config"
	"github.com/simaogato/invoicedesk-backend/internal/domain"
	"github.com/simaogato/invoicedesk-backend/internal/logger"
	"github.com/simaogato/invoicedesk-backend/internal/scheduler"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/chartfeed"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/deposit"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/invoice"
	"github.com/simaogato/invoicedesk-backend/internal/usecase/seeder"
)

const shutdownTimeout = 10 * time.Second

// repositories groups the storage backends chosen by config
type repositories struct {
	customers domain.CustomerRepository
	invoices  domain.InvoiceRepository
	deposits  domain.DepositRepository
	closer    io.Closer
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := logger.InitLogger(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Setup storage
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	if repos.closer != nil {
		defer repos.closer.Close()
	}
	logger.Info("Storage ready", zap.String("driver", cfg.Database.Driver))

	// 2. Deposit events: in-process broker, plus SQS when configured
	broker := events.NewBroker(events.DefaultBuffer)
	publishers := events.Fanout{broker}
	if cfg.Queue.SQSQueueURL != "" {
		sqsPublisher, err := queue.NewSQSPublisherFromConfig(ctx, cfg.Queue.AWSRegion, cfg.Queue.SQSQueueURL)
		if err != nil {
			logger.Fatal("Failed to create SQS publisher", zap.Error(err))
		}
		publishers = append(publishers, sqsPublisher)
		logger.Info("Publishing deposit events to SQS", zap.String("queue_url", cfg.Queue.SQSQueueURL))
	}

	// 3. Initialize Services (Use Cases)
	invoiceService := invoice.NewInvoiceService(repos.invoices, repos.customers, repos.deposits)
	depositService := deposit.NewDepositService(repos.invoices, repos.deposits, publishers)
	chartService := chartfeed.NewChartService(repos.invoices, repos.deposits)
	session := chartfeed.SessionConfig{
		FrameInterval: cfg.Chart.FrameInterval,
		AnimationRate: cfg.Chart.AnimationRate,
	}

	if cfg.SeedDemo {
		if err := seeder.NewDemoSeeder(repos.customers, repos.invoices, repos.deposits).Seed(ctx); err != nil {
			logger.Fatal("Failed to seed demo data", zap.Error(err))
		}
		logger.Info("Demo data seeded successfully")
	}

	// 4. Scheduled jobs
	sched := scheduler.NewScheduler(ctx, invoiceService)
	if err := sched.RegisterAll(cfg.Schedule.OverdueCron); err != nil {
		logger.Fatal("Failed to register scheduled jobs", zap.Error(err))
	}
	sched.Start()

	// 5. Start HTTP server
	limiter := web.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	handler := web.NewHandler(invoiceService, depositService, chartService, broker, session)
	router, err := web.NewRouter(handler, web.RouterConfig{
		AuthToken:      cfg.Auth.Token,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RateLimiter:    limiter,
	})
	if err != nil {
		logger.Fatal("Failed to build router", zap.Error(err))
	}
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// chart streams end when ctx is cancelled at shutdown
		BaseContext: func(net.Listener) context.Context { return ctx },
	}
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	// 6. Start gRPC Server
	grpcAdapter := grpcadapter.NewServer(invoiceService, depositService, chartService, broker, session)
	grpcServer := grpcadapter.NewGRPCServer(grpcAdapter, cfg.Auth.Token)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.String("addr", cfg.GRPC.Addr), zap.Error(err))
	}
	go func() {
		logger.Info("gRPC server listening", zap.String("addr", cfg.GRPC.Addr))
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatal("Failed to serve gRPC", zap.Error(err))
		}
	}()

	// Graceful shutdown
	waitForShutdown()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
	logger.Info("HTTP server stopped")

	grpcAdapter.Shutdown(shutdownCtx, grpcServer)
	logger.Info("gRPC server stopped")

	sched.Stop()
	limiter.Stop()
}

// openRepositories connects to the configured database driver
func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &repositories{
			customers: postgres.NewCustomerRepository(db),
			invoices:  postgres.NewInvoiceRepository(db),
			deposits:  postgres.NewDepositRepository(db),
			closer:    db,
		}, nil
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &repositories{
			customers: sqlite.NewCustomerRepository(db),
			invoices:  sqlite.NewInvoiceRepository(db),
			deposits:  sqlite.NewDepositRepository(db),
			closer:    db,
		}, nil
	case config.DriverMemory:
		store := memory.NewStore()
		return &repositories{
			customers: memory.NewCustomerRepository(store),
			invoices:  memory.NewInvoiceRepository(store),
			deposits:  memory.NewDepositRepository(store),
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// waitForShutdown blocks until SIGTERM or SIGINT
func waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("Shutting down gracefully", zap.String("signal", sig.String()))
}
