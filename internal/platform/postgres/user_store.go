package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgresUserStore implements store.UserStore.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a user store.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*PostgresUserStore)(nil)

// GetProfile implements store.UserStore.
func (s *PostgresUserStore) GetProfile(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var (
		p     domain.Profile
		photo sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, display_name, photo_url FROM users WHERE id = $1`, id).
		Scan(&p.ID, &p.DisplayName, &photo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrUserNotFound
	}
	if err != nil {
		return nil, MapError(err)
	}
	p.PhotoURL = stringPtr(photo)
	return &p, nil
}
