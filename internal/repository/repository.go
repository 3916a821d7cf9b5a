package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nursultantorobaev/selfhub-services/internal/models"
)

// Database is the subset of pgxpool.Pool used by the repository, extracted
// so tests can substitute a pgxmock pool.
type Database interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("record not found")

// Repository provides data access for appointments and the business
// coordinate backfill.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface lists the repository operations consumed by the service and
// HTTP layers.
type Interface interface {
	FetchAppointment(ctx context.Context, id int64) (models.Appointment, error)
	FetchBusinessesMissingCoordinates(ctx context.Context, limit int) ([]models.Business, error)
	UpdateBusinessCoordinates(ctx context.Context, businessID int, point models.GeoPoint) error
	IncrementGeocodeFailure(ctx context.Context, businessID int, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided
// Database. It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// NewDatabase opens a pgx connection pool against the given PostgreSQL
// instance and verifies connectivity with a ping.
func NewDatabase(host, port, user, password, name string) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	const pingTimeout = 5 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
