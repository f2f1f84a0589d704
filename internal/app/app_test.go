package app

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cperes/tickerpulse/config"
	"github.com/cperes/tickerpulse/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func testAppConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: "8080"},
		Postgres: config.PostgresConfig{
			Host: "127.0.0.1", Port: 54329, User: "x", Password: "y", DBName: "z", SSLMode: "disable",
		},
		Query: config.QueryConfig{
			ChartingIntervalDays: 90,
			ListPerPage:          15,
			AsOf:                 time.Date(2020, 5, 22, 0, 0, 0, 0, time.UTC),
		},
	}
}

// TestInitializeApp_DBFailure ensures InitializeApp returns error when DB cannot connect.
func TestInitializeApp_DBFailure(t *testing.T) {
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = testAppConfig()

	r, cleanup, err := InitializeApp()
	if err == nil || r != nil || cleanup != nil {
		if cleanup != nil {
			cleanup()
		}
		t.Fatalf("expected error from InitializeApp with invalid DB config")
	}
}

func TestInitializeApp_HappyPath(t *testing.T) {
	oldCfg := config.AppConfig
	config.AppConfig = testAppConfig()
	t.Cleanup(func() { config.AppConfig = oldCfg })

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	// readyz probes the database once
	mock.ExpectPing()

	oldOpener := postgresOpener
	postgresOpener = func(cfg config.Config) (*sql.DB, error) { return db, nil }
	t.Cleanup(func() { postgresOpener = oldOpener })

	// fresh registry so repeated InitializeApp calls do not collide
	oldRec := metricsRecorder
	metricsRecorder = func() *metrics.Recorder { return metrics.New(prometheus.NewRegistry()) }
	t.Cleanup(func() { metricsRecorder = oldRec })

	router, cleanup, err := InitializeApp()
	if err != nil || router == nil || cleanup == nil {
		t.Fatalf("InitializeApp failed: err=%v", err)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", w.Code)
	}

	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", w2.Code)
	}

	cleanup()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
