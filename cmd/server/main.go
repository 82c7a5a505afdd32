package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"logichain.backend/internal/config"
	"logichain.backend/internal/infrastructure/db"
	"logichain.backend/internal/infrastructure/repositories"
	"logichain.backend/internal/interfaces/http/handlers"
	"logichain.backend/internal/interfaces/http/middleware"
	"logichain.backend/internal/usecases"
	"logichain.backend/pkg/logger"
	"logichain.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = db.Open
	migrateDB  = db.Migrate
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB   = func(gdb *gorm.DB) (*sql.DB, error) { return gdb.DB() }
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
	gdb, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(gdb)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := migrateDB(gdb); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info(context.Background(), "Database ready", zap.String("driver", cfg.Database.Driver))

	// Initialize repositories
	contractRepo := repositories.NewContractRepository(gdb)
	eventRepo := repositories.NewContractEventRepository(gdb)
	additiveRepo := repositories.NewContractAdditiveRepository(gdb)
	complianceRepo := repositories.NewComplianceRepository(gdb)
	supplierRepo := repositories.NewSupplierPerformanceRepository(gdb)
	uow := repositories.NewUnitOfWork(gdb)

	// Initialize conversation store
	conversationStore := redis.NewConversationStore(24 * time.Hour)

	// Initialize usecases
	contractUsecase := usecases.NewContractUsecase(contractRepo, eventRepo, additiveRepo, complianceRepo, supplierRepo, uow)
	kpiUsecase := usecases.NewKPIUsecase(contractRepo, additiveRepo, complianceRepo, supplierRepo, eventRepo)
	assistantUsecase := usecases.NewAssistantUsecase(contractRepo, complianceRepo, conversationStore)
	documentUsecase := usecases.NewDocumentUsecase(contractRepo, eventRepo, uow, cfg.Storage.PDFDir)
	exportUsecase := usecases.NewExportUsecase(contractRepo, cfg.Storage.ExportDir)

	// Initialize handlers
	contractHandler := handlers.NewContractHandler(contractUsecase)
	activityHandler := handlers.NewActivityHandler(contractUsecase)
	kpiHandler := handlers.NewKPIHandler(kpiUsecase)
	assistantHandler := handlers.NewAssistantHandler(assistantUsecase)
	documentHandler := handlers.NewDocumentHandler(documentUsecase)
	exportHandler := handlers.NewExportHandler(exportUsecase)

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
		contractHandler:  contractHandler,
		activityHandler:  activityHandler,
		kpiHandler:       kpiHandler,
		assistantHandler: assistantHandler,
		documentHandler:  documentHandler,
		exportHandler:    exportHandler,
	})

	log.Printf("LogiChain backend starting on port %s", cfg.Server.Port)
	log.Printf("API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
