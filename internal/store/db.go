// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-blog-api/internal/config"
	"github.com/MKhiriev/go-blog-api/internal/logger"
	"github.com/MKhiriev/go-blog-api/migrations"
)

// ErrorClassificator inspects driver errors.
type ErrorClassificator interface {
	// Classify reports whether the failed operation could succeed if
	// attempted again.
	Classify(err error) ErrorClassification

	// Violation reports which constraint, if any, err violated, together
	// with the constraint (or column) name given by the driver.
	Violation(err error) (ConstraintViolation, string)
}

// ConstraintViolation is the kind of integrity constraint a write violated.
type ConstraintViolation int

const (
	NoViolation ConstraintViolation = iota
	UniqueViolation
	ForeignKeyViolation
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// DB wraps the connection pool together with the driver-specific query
// placeholder format and error classification.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB wraps an already opened connection. driver selects placeholders and
// error classification ("pgx" or "sqlite3").
func NewDB(conn *sql.DB, driver string, log *logger.Logger) *DB {
	db := &DB{
		DB:     conn,
		driver: driver,
		logger: log,
	}

	if driver == config.DriverSQLite {
		db.errorClassificator = NewSQLiteErrorClassifier()
	} else {
		db.errorClassificator = NewPostgresErrorClassifier()
	}

	return db
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate applies the embedded schema migrations for the connection driver.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

// builder returns a squirrel statement builder using the driver's
// placeholder format.
func (db *DB) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(db.placeholder())
}

// rebind converts a query written with '?' placeholders to the driver's
// placeholder format.
func (db *DB) rebind(query string) string {
	if db.placeholder() == sq.Question {
		return query
	}

	rebound, err := db.placeholder().ReplacePlaceholders(query)
	if err != nil {
		return query
	}
	return rebound
}

func (db *DB) placeholder() sq.PlaceholderFormat {
	if db.driver == config.DriverSQLite {
		return sq.Question
	}
	return sq.Dollar
}

func (db *DB) retryable(err error) bool {
	return db.errorClassificator.Classify(err) == Retryable
}

func (db *DB) violation(err error) (ConstraintViolation, string) {
	return db.errorClassificator.Violation(err)
}

// inTx runs fn inside a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise. Errors returned by fn are passed
// through unchanged.
func (db *DB) inTx(ctx context.Context, funcName string, fn func(tx *sql.Tx) error) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Bool("retryable", db.retryable(err)).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", funcName).
			Bool("retryable", db.retryable(err)).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}
