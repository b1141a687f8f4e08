// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"bayanihan/internal/domain/beneficiary"
	"bayanihan/internal/domain/calamity"
	"bayanihan/internal/domain/distribution"
	"bayanihan/internal/domain/inventory"
	"bayanihan/internal/domain/reports"
	"bayanihan/internal/infrastructure/http/v1/handlers"
	"bayanihan/internal/infrastructure/http/v1/middleware"
	"bayanihan/internal/infrastructure/storage/postgres"
	"bayanihan/internal/infrastructure/storage/postgres/calamity_repo"
	"bayanihan/internal/infrastructure/storage/postgres/catalog_repo"
	"bayanihan/internal/infrastructure/storage/postgres/distribution_repo"
	"bayanihan/internal/infrastructure/storage/postgres/inventory_repo"
	"bayanihan/internal/infrastructure/storage/postgres/ledger_repo"
	"bayanihan/internal/infrastructure/storage/postgres/report_repo"
	"bayanihan/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool
	Pool *postgres.Pool

	// Logger for request logging
	Logger *logger.Logger

	// ArchiveVoids enables snapshotting of voided distributions
	ArchiveVoids bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Actor())

	txManager := postgres.NewTxManager(cfg.Pool)

	// Repositories
	itemRepo := inventory_repo.NewInventoryRepo(txManager)
	ledgerRepo := ledger_repo.NewLedgerRepo(txManager)
	distRepo := distribution_repo.NewDistributionRepo(txManager)
	calRepo := calamity_repo.NewCalamityRepo(txManager)
	benRepo := catalog_repo.NewBeneficiaryRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	var archiver distribution.Archiver
	if cfg.ArchiveVoids {
		archive, err := postgres.NewVoidArchive(txManager)
		if err != nil {
			return nil, err
		}
		archiver = archive
	}

	// Services
	itemService := inventory.NewService(itemRepo, ledgerRepo, txManager)
	benService := beneficiary.NewService(benRepo, txManager)
	distService := distribution.NewService(distRepo, itemRepo, ledgerRepo, benService, archiver, txManager)
	calService := calamity.NewService(calRepo, itemRepo, txManager)
	reportService := reports.NewService(reportRepo)

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool.Unwrap())
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	base := handlers.NewBaseHandler()
	api := router.Group("/api/v1")
	{
		handlers.NewInventoryHandler(base, itemService).
			RegisterRoutes(api.Group("/inventory"))
		handlers.NewLedgerHandler(base, ledgerRepo).
			RegisterRoutes(api.Group("/ledger"))
		handlers.NewBeneficiaryHandler(base, benService).
			RegisterRoutes(api.Group("/beneficiaries"))
		handlers.NewDistributionHandler(base, distService).
			RegisterRoutes(api.Group("/distributions"))
		handlers.NewCalamityHandler(base, calService).
			RegisterRoutes(api.Group("/calamities"))
		handlers.NewReportsHandler(base, reportService).
			RegisterRoutes(api.Group("/reports"))
	}

	return router, nil
}
