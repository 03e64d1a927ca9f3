package main

import (
	"context"
	"flag"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	grpcadapter "github.com/simaogato/wealthtrack-backend/internal/adapter/grpc"
	"github.com/simaogato/wealthtrack-backend/internal/adapter/quote"
	"github.com/simaogato/wealthtrack-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/wealthtrack-backend/internal/config"
	"github.com/simaogato/wealthtrack-backend/internal/domain"
	"github.com/simaogato/wealthtrack-backend/internal/scheduler"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/dashboard"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/goal"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/investment"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/ledger"
	"github.com/simaogato/wealthtrack-backend/internal/usecase/portfolio"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	owners, err := cfg.OwnerIDs()
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// 2. Setup Database
	// Add 2-second delay to ensure Postgres is up (Simple retry)
	time.Sleep(2 * time.Second)

	db, err := postgres.NewDB(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.Migrate {
		if err := db.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		log.Println("[INFO] database schema ready")
	}

	// 3. Initialize Repositories (Postgres) and the price feed
	positionRepo := postgres.NewPositionRepository(db)
	transactionRepo := postgres.NewTransactionRepository(db)
	goalRepo := postgres.NewGoalRepository(db)

	var priceFeed domain.PriceFeed
	if cfg.Quote.APIKey != "" {
		priceFeed = quote.NewAlphaVantage(cfg.Quote.BaseURL, cfg.Quote.APIKey, time.Duration(cfg.Quote.TimeoutSeconds)*time.Second)
	} else {
		log.Println("[WARN] no quote api key configured, price refresh disabled")
	}

	// 4. Initialize Services (Use Cases)
	portfolioService := portfolio.NewPortfolioService(positionRepo)
	ledgerService := ledger.NewLedgerService(positionRepo, transactionRepo)
	goalService := goal.NewGoalService(goalRepo, ledgerService, cfg.AnnualReturn())
	goalService.SampleEveryMonths = cfg.Projection.SampleEveryMonths
	dashboardService := dashboard.NewDashboardService(portfolioService, goalRepo)
	investmentService := investment.NewInvestmentService(positionRepo, priceFeed)

	// 5. Schedule price refreshes
	var sched *scheduler.Scheduler
	if priceFeed != nil && len(owners) > 0 {
		sched = scheduler.NewScheduler(ctx, investmentService, owners)
		if err := sched.Register(cfg.Schedule.PriceRefreshCron); err != nil {
			log.Fatalf("Failed to register scheduler: %v", err)
		}
		sched.Start()
	}

	// 6. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(),
			grpcadapter.AuthInterceptor(cfg.GRPC.APIToken),
		),
	)

	grpcAdapter := grpcadapter.NewServer(portfolioService, goalService, dashboardService, ledgerService, investmentService)
	grpcadapter.RegisterEngineServiceServer(grpcServer, grpcAdapter)

	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GRPC.Addr, err)
	}

	// Start server in a goroutine
	go func() {
		log.Printf("[INFO] gRPC server listening on %s", cfg.GRPC.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(grpcServer, sched, cancel)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(grpcServer *grpclib.Server, sched *scheduler.Scheduler, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	cancel()
	if sched != nil {
		sched.Stop()
	}

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")
}
