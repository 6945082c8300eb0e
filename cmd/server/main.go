package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	identityapp "github.com/hostelms/backend/internal/application/identity"
	ledgerapp "github.com/hostelms/backend/internal/application/ledger"
	studentapp "github.com/hostelms/backend/internal/application/student"
	"github.com/hostelms/backend/internal/infrastructure/auth"
	"github.com/hostelms/backend/internal/infrastructure/config"
	"github.com/hostelms/backend/internal/infrastructure/logger"
	"github.com/hostelms/backend/internal/infrastructure/persistence"
	"github.com/hostelms/backend/internal/interfaces/http/handler"
	"github.com/hostelms/backend/internal/interfaces/http/middleware"
	"github.com/hostelms/backend/internal/interfaces/http/router"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Hostel Fee Ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	studentRepo := persistence.NewGormStudentRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	accountRepo := persistence.NewGormFeeAccountRepository(db.DB)
	receiptRepo := persistence.NewGormInstallmentReceiptRepository(db.DB)
	pendingRepo := persistence.NewGormPendingPaymentRepository(db.DB)
	renewalRepo := persistence.NewGormRenewalHistoryRepository(db.DB)
	revisionRepo := persistence.NewGormFeeRevisionRepository(db.DB)

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	studentService := studentapp.NewStudentService(studentRepo)
	installmentService := ledgerapp.NewInstallmentService(studentRepo, accountRepo, receiptRepo)
	pendingService := ledgerapp.NewPendingPaymentService(studentRepo, accountRepo, receiptRepo, pendingRepo)
	renewalService := ledgerapp.NewRenewalService(studentRepo, accountRepo, renewalRepo)
	queryService := ledgerapp.NewQueryService(accountRepo, receiptRepo, revisionRepo)

	// Seed the bootstrap admin account when configured
	if cfg.App.AdminPassword != "" {
		if err := authService.EnsureAdminUser(context.Background(), "admin", cfg.App.AdminPassword); err != nil {
			log.Fatal("Failed to ensure admin user", zap.Error(err))
		}
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(authService)
	studentHandler := handler.NewStudentHandler(studentService, renewalService)
	ledgerHandler := handler.NewLedgerHandler(installmentService, pendingService, queryService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// JWT authentication for API routes, with public endpoints skipped
	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/health",
			"/api/v1/ready",
			"/api/v1/system/info",
		},
		Logger: log,
	}
	r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r.Register(authHandler).
		Register(studentHandler).
		Register(ledgerHandler).
		Register(systemHandler)

	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
