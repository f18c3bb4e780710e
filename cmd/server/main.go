package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"borderlesspay.backend/internal/config"
	"borderlesspay.backend/internal/infrastructure/jobs"
	"borderlesspay.backend/internal/infrastructure/ledger"
	"borderlesspay.backend/internal/infrastructure/repositories"
	"borderlesspay.backend/internal/interfaces/http/handlers"
	"borderlesspay.backend/internal/interfaces/http/middleware"
	"borderlesspay.backend/internal/usecases"
	"borderlesspay.backend/pkg/jwt"
	"borderlesspay.backend/pkg/logger"
	"borderlesspay.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt:    false,
			TranslateError: true,
		})
	}
	newSessionStore = redis.NewSessionStore
	newLedgerClient = ledger.NewClient
	runServer       = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB        = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	rateRepo := repositories.NewExchangeRateRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize Session Store
	sessionStore, err := newSessionStore(cfg.Security.SessionEncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}

	// Initialize ledger clients
	ledgerClient, err := newLedgerClient(cfg.Hedera)
	if err != nil {
		return fmt.Errorf("failed to initialize ledger client: %w", err)
	}
	defer ledgerClient.Close()
	mirrorClient := ledger.NewMirrorClient(cfg.Hedera.MirrorBaseURL)
	priceClient := ledger.NewPriceClient(cfg.Hedera.PriceURL)

	// Initialize usecases
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService, sessionStore, cfg.JWT.RefreshExpiry)
	walletUsecase := usecases.NewWalletUsecase(walletRepo)
	txUsecase := usecases.NewTransactionUsecase(txRepo, walletRepo, rateRepo, uow)
	invoiceUsecase := usecases.NewInvoiceUsecase(invoiceRepo)
	employeeUsecase := usecases.NewEmployeeUsecase(employeeRepo, walletRepo, txRepo, uow)
	analyticsUsecase := usecases.NewAnalyticsUsecase(walletRepo, txRepo, employeeRepo, invoiceUsecase)
	transferUsecase := usecases.NewTransferUsecase(ledgerClient, txRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	walletHandler := handlers.NewWalletHandler(walletUsecase)
	txHandler := handlers.NewTransactionHandler(txUsecase)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceUsecase)
	employeeHandler := handlers.NewEmployeeHandler(employeeUsecase)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsUsecase)
	hederaHandler := handlers.NewHederaHandler(transferUsecase, mirrorClient, priceClient)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	overdueJob := jobs.NewInvoiceOverdueJob(invoiceRepo)
	go overdueJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:      authHandler,
		walletHandler:    walletHandler,
		txHandler:        txHandler,
		invoiceHandler:   invoiceHandler,
		employeeHandler:  employeeHandler,
		analyticsHandler: analyticsHandler,
		hederaHandler:    hederaHandler,
		authMiddleware:   authMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		overdueJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 BorderlessPay Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
