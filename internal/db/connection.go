// Package db provides database connection and management utilities.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/messhub/ledger/internal/config"

	// Register the postgres and sqlite drivers with database/sql
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Executor is satisfied by both *DB and *Tx so repositories can run
// inside or outside a unit of work.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Dialect() Dialect
}

// DB wraps the database connection pool
type DB struct {
	*sql.DB
	logger  *slog.Logger
	dialect Dialect

	// writers admits one SQLite write transaction at a time. Waiting here
	// honours ctx, unlike the busy handler behind BEGIN IMMEDIATE.
	writers chan struct{}
}

// Tx is a database transaction bound to the dialect of the pool it came from
type Tx struct {
	*sql.Tx
	dialect Dialect
	release func()
}

// Connect establishes a connection to the database
func Connect(ctx context.Context, cfg *config.DatabaseConfig, logger *slog.Logger) (*DB, error) {
	dialect, err := ParseDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	logger.Info("connecting to database",
		"dialect", dialect,
		"host", cfg.Host,
		"port", cfg.Port,
		"database", cfg.DBName,
		"path", cfg.Path,
	)

	db, err := sql.Open(dialect.DriverName(), cfg.DSN())
	if err != nil {
		logger.Error("failed to open database connection", "error", err)
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		logger.Error("failed to ping database", "error", err)
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("successfully connected to database",
		"max_open_conns", cfg.MaxOpenConns,
		"max_idle_conns", cfg.MaxIdleConns,
		"conn_max_lifetime", cfg.ConnMaxLifetime,
	)

	database := &DB{
		DB:      db,
		logger:  logger,
		dialect: dialect,
	}
	if dialect == SQLite {
		database.writers = make(chan struct{}, 1)
	}

	return database, nil
}

// Dialect reports which SQL dialect the pool speaks
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// BeginTx starts a transaction with the isolation level appropriate for the
// dialect. PostgreSQL runs at READ COMMITTED and relies on row locks; SQLite
// transactions are opened with BEGIN IMMEDIATE through the DSN, after
// waiting for the writer slot until ctx is done.
//
// The transaction must be finished with Commit or Rollback.
func (db *DB) BeginTx(ctx context.Context) (*Tx, error) {
	release, err := db.acquireWriter(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := db.DB.BeginTx(ctx, db.dialect.txOptions())
	if err != nil {
		release()
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.dialect, release: release}, nil
}

func (db *DB) acquireWriter(ctx context.Context) (func(), error) {
	if db.writers == nil {
		return func() {}, nil
	}

	select {
	case db.writers <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-db.writers })
	}, nil
}

// Close closes the database connection and logs the closure.
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// Dialect reports which SQL dialect the transaction speaks
func (tx *Tx) Dialect() Dialect {
	return tx.dialect
}

// Commit commits the transaction and frees the writer slot
func (tx *Tx) Commit() error {
	defer tx.release()
	return tx.Tx.Commit()
}

// Rollback aborts the transaction and frees the writer slot. It also frees
// the slot when database/sql already rolled back on ctx cancellation.
func (tx *Tx) Rollback() error {
	defer tx.release()
	return tx.Tx.Rollback()
}

var (
	_ Executor = (*DB)(nil)
	_ Executor = (*Tx)(nil)
)
