package app

import (
	"fmt"

	"github.com/cperes/tickerpulse/config"
	"github.com/cperes/tickerpulse/internal/api"
	"github.com/cperes/tickerpulse/internal/metrics"
	"github.com/cperes/tickerpulse/internal/service"
	"github.com/cperes/tickerpulse/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// InitializeApp sets up all application dependencies and returns a fully
// configured Gin router, a cleanup function for graceful shutdown, and any
// error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Initializes the repository layer (CompanyRepository).
//   - Creates the ticker service and the HTTP handler layer.
//   - Registers the metrics recorder on the default Prometheus registry.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources (e.g., DB connection).
func InitializeApp() (*gin.Engine, func(), error) {
	// Load global configuration
	cfg := config.AppConfig

	// Connect to PostgreSQL
	// indirection for unit testing
	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	// Repository layer (DB access)
	repo := storage.NewCompanyRepository(db)

	// Service layer (aggregation pipeline)
	svc := service.NewTickerService(repo, cfg.Query)

	// HTTP handler layer
	handler := api.NewHandler(svc, cfg.Query)

	// Metrics collaborator, fed request-scoped measurements by middleware
	rec := metricsRecorder()

	// Router with routes and middleware
	router := api.NewRouter(handler, rec)

	// Health and readiness probes
	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// metricsRecorder is an indirection so repeated InitializeApp calls in tests
// can swap in a fresh registry instead of colliding on the default one.
var metricsRecorder = func() *metrics.Recorder {
	return metrics.New(prometheus.DefaultRegisterer)
}
