package db

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/messhub/ledger/internal/config"
)

// NewTestDB opens a migrated SQLite database in a per-test temporary
// directory with a no-op logger. The database is closed when the test ends.
// This is only for use in tests.
func NewTestDB(t testing.TB) *DB {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Default().Database
	cfg.Dialect = config.DialectSQLite
	cfg.Path = filepath.Join(t.TempDir(), "ledger.db")
	cfg.BusyTimeout = 10 * time.Second

	database, err := Connect(context.Background(), &cfg, logger)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return database
}

// PostgresTestDSNEnv names the environment variable that enables tests
// against a real PostgreSQL server
const PostgresTestDSNEnv = "LEDGER_TEST_POSTGRES_DSN"

// NewPostgresTestDB connects to the server named by LEDGER_TEST_POSTGRES_DSN
// and migrates it. The test is skipped when the variable is unset.
func NewPostgresTestDB(t testing.TB) *DB {
	t.Helper()

	dsn := os.Getenv(PostgresTestDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", PostgresTestDSNEnv)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Default().Database
	cfg.Dialect = config.DialectPostgres
	cfg.URL = dsn

	database, err := Connect(context.Background(), &cfg, logger)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate postgres: %v", err)
	}

	return database
}
