package seed

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cperes/tickerpulse/internal/logger"
	"github.com/cperes/tickerpulse/internal/storage"
)

// Seed dataset file names expected inside the input directory.
const (
	CompaniesFile = "companies.csv"
	ScoresFile    = "scores.csv"
	PricesFile    = "prices.csv"
)

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.CompanyRepository {
	return storage.NewCompanyRepository(db)
}

// ProcessDirectory loads the seed dataset from dir into the database.
//
// Behavior:
//   - Expects companies.csv, scores.csv and prices.csv in dir; missing
//     files fail upfront before anything is written.
//   - Loads the three files concurrently with an errgroup; the first
//     failure cancels the siblings.
//   - Each file is idempotent: a file already recorded in the seed log is
//     skipped unless force is set, in which case its table is cleared and
//     reloaded.
//   - The tables come from the migrations in db/migrations; they carry no
//     cross-table constraints, so load order between the files is free.
//
// Returns the first error encountered, if any.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, force bool) error {
	repo := repoCtor(db)

	files := []string{CompaniesFile, ScoresFile, PricesFile}

	var missing []string
	for _, name := range files {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			if os.IsNotExist(err) {
				missing = append(missing, name)
				continue
			}
			return fmt.Errorf("stat failed for %s: %w", name, err)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required files: %s", strings.Join(missing, ", "))
	}

	logger.L().Info().Int("files", len(files)).Str("dir", dir).Msg("seed start")

	g, gctx := errgroup.WithContext(ctx)

	for _, file := range files {
		name := file
		g.Go(func() error {
			start := time.Now()

			exists, err := repo.HasSeedForFile(gctx, name)
			if err != nil {
				return fmt.Errorf("file %s: check seed log: %w", name, err)
			}
			if exists && !force {
				logger.L().Info().Str("file", name).Msg("already seeded, skipping")
				return nil
			}

			rows, err := loadFile(gctx, repo, filepath.Join(dir, name), name, force)
			if err != nil {
				logger.L().Error().Str("file", name).Err(err).Msg("seed file failed")
				return fmt.Errorf("file %s: %w", name, err)
			}

			if err := repo.UpsertSeedLog(gctx, name, rows); err != nil {
				return fmt.Errorf("file %s: record seed log: %w", name, err)
			}

			logger.L().Info().
				Str("file", name).
				Int("rows", rows).
				Int64("elapsed_ms", time.Since(start).Milliseconds()).
				Msg("seed file done")
			return nil
		})
	}

	return g.Wait()
}

// loadFile parses one dataset file and bulk-inserts its rows, clearing the
// target table first on a forced reload. Returns the row count inserted.
func loadFile(ctx context.Context, repo storage.CompanyRepository, path, name string, force bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch name {
	case CompaniesFile:
		companies, err := ParseCompanies(f)
		if err != nil {
			return 0, err
		}
		if force {
			if err := repo.DeleteAllCompanies(ctx); err != nil {
				return 0, err
			}
		}
		return len(companies), repo.InsertCompanies(ctx, companies)

	case ScoresFile:
		scores, err := ParseScores(f)
		if err != nil {
			return 0, err
		}
		if force {
			if err := repo.DeleteAllScores(ctx); err != nil {
				return 0, err
			}
		}
		return len(scores), repo.InsertScores(ctx, scores)

	case PricesFile:
		prices, err := ParsePrices(f)
		if err != nil {
			return 0, err
		}
		if force {
			if err := repo.DeleteAllClosePrices(ctx); err != nil {
				return 0, err
			}
		}
		return len(prices), repo.InsertClosePrices(ctx, prices)
	}

	return 0, fmt.Errorf("unknown seed file %q", name)
}
