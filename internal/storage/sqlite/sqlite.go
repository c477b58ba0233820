package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/opsdd/ddx/internal/log"
	"github.com/opsdd/ddx/internal/model"
	"github.com/opsdd/ddx/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository for the local
// operation history.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// DB returns the underlying database handle.
func (r *Repository) DB() *sql.DB { return r.db }

// RecordOperation stores one finished long-running operation.
func (r *Repository) RecordOperation(ctx context.Context, op model.OperationRecord) error {
	query := `
		INSERT INTO operations (id, kind, subject, status, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		op.ID,
		string(op.Kind),
		op.Subject,
		string(op.Status),
		op.Error,
		op.StartedAt.Unix(),
		op.FinishedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: operations.") {
			return fmt.Errorf("operation already recorded: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert operation: %w", err)
	}

	r.logger.Debugf("Recorded operation in repository: %s", op.ID)
	return nil
}

// ListOperations returns all recorded operations, newest first.
func (r *Repository) ListOperations(ctx context.Context) ([]model.OperationRecord, error) {
	query := `
		SELECT id, kind, subject, status, error, started_at, finished_at
		FROM operations
		ORDER BY started_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query operations: %w", err)
	}
	defer rows.Close()

	var ops []model.OperationRecord
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan operation: %w", err)
		}
		ops = append(ops, *op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate operations: %w", err)
	}

	return ops, nil
}

// GetOperation retrieves one operation by ID.
func (r *Repository) GetOperation(ctx context.Context, id string) (*model.OperationRecord, error) {
	query := `
		SELECT id, kind, subject, status, error, started_at, finished_at
		FROM operations
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	op, err := scanOperation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("operation %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query operation: %w", err)
	}

	return op, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOperation(row rowScanner) (*model.OperationRecord, error) {
	var (
		op                   model.OperationRecord
		kind, status         string
		startedAt, finishedAt int64
	)

	err := row.Scan(&op.ID, &kind, &op.Subject, &status, &op.Error, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}

	op.Kind = model.OperationKind(kind)
	op.Status = model.OperationStatus(status)
	op.StartedAt = time.Unix(startedAt, 0).UTC()
	op.FinishedAt = time.Unix(finishedAt, 0).UTC()

	return &op, nil
}
