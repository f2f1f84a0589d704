package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment
// variables or a .env file.
//
// It is composed of smaller structs that represent different concerns of the
// system: HTTP server settings, Postgres connection details, and the query
// defaults applied by the ticker endpoints.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=tickerpulse
//	POSTGRES_SSLMODE=disable
//	CHARTING_INTERVAL_DAYS=90
//	LIST_PER_PAGE=15
//	PRICE_AS_OF=2020-05-22
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Query    QueryConfig    // Defaults for the ticker query endpoints
}

// ServerConfig holds HTTP server settings such as the port to listen on.
type ServerConfig struct {
	Port string // The TCP port the HTTP server will listen on (e.g., "8080")
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN used by database/sql to connect
}

// QueryConfig holds the defaults applied when a request does not pin them
// down explicitly.
//
// Fields:
//   - ChartingIntervalDays: length of the trailing close-price window, in days.
//   - ListPerPage: number of companies per page on the list endpoint.
//   - AsOf: reference end date of the price window. Zero means "today (UTC)";
//     setting PRICE_AS_OF is intended for demo datasets whose prices end on a
//     fixed historical date.
type QueryConfig struct {
	ChartingIntervalDays int
	ListPerPage          int
	AsOf                 time.Time
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and read throughout the application
// instead of re-reading environment variables.
var AppConfig Config

// LoadConfig initializes the global AppConfig.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit: if required variables are missing or PRICE_AS_OF is set but is
// not a YYYY-MM-DD date, the app terminates with a descriptive log message.
func LoadConfig() {
	// Default values
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "tickerpulse")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("CHARTING_INTERVAL_DAYS", 90)
	viper.SetDefault("LIST_PER_PAGE", 15)
	viper.SetDefault("PRICE_AS_OF", "")

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	// Read environment variables automatically
	viper.AutomaticEnv()

	// Populate global config instance
	AppConfig = Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Query: QueryConfig{
			ChartingIntervalDays: viper.GetInt("CHARTING_INTERVAL_DAYS"),
			ListPerPage:          viper.GetInt("LIST_PER_PAGE"),
		},
	}

	if s := viper.GetString("PRICE_AS_OF"); s != "" {
		asOf, err := time.Parse("2006-01-02", s)
		if err != nil {
			log.Fatalf("invalid PRICE_AS_OF %q: expected YYYY-MM-DD", s)
		}
		AppConfig.Query.AsOf = asOf
	}

	// Construct Postgres DSN (used by database/sql)
	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	// Validate critical fields
	validateConfig()
}

// validateConfig ensures required variables are present and terminates the
// application if they are missing or out of range.
func validateConfig() {
	var missing []string

	if AppConfig.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	if AppConfig.Postgres.Host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}
	if AppConfig.Postgres.Port == 0 {
		missing = append(missing, "POSTGRES_PORT")
	}
	if AppConfig.Postgres.User == "" {
		missing = append(missing, "POSTGRES_USER")
	}
	if AppConfig.Postgres.Password == "" {
		missing = append(missing, "POSTGRES_PASSWORD")
	}
	if AppConfig.Postgres.DBName == "" {
		missing = append(missing, "POSTGRES_DB")
	}
	if AppConfig.Query.ChartingIntervalDays < 1 {
		missing = append(missing, "CHARTING_INTERVAL_DAYS")
	}
	if AppConfig.Query.ListPerPage < 1 {
		missing = append(missing, "LIST_PER_PAGE")
	}

	if len(missing) > 0 {
		log.Fatalf("missing or invalid required environment variables: %v\n", missing)
	}
}

// Window returns the inclusive [start, end] date range of price observations
// to include, derived from the configured charting interval and as-of date.
//
// The end date is AsOf (or today UTC when AsOf is zero), the start date is
// ChartingIntervalDays before it. Both are normalized to date-only UTC.
func (q QueryConfig) Window() (start, end time.Time) {
	return q.WindowFor(q.ChartingIntervalDays)
}

// WindowFor is Window with a caller-chosen interval length in days.
func (q QueryConfig) WindowFor(days int) (start, end time.Time) {
	end = q.AsOf
	if end.IsZero() {
		end = time.Now().UTC()
	}
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	start = end.AddDate(0, 0, -days)
	return start, end
}
