package postgres

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// PostgresPushTokenStore implements store.PushTokenStore.
type PostgresPushTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPushTokenStore creates a push token store.
func NewPostgresPushTokenStore(db store.DBTX, logger *slog.Logger) *PostgresPushTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresPushTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "push_token_store")),
	}
}

var _ store.PushTokenStore = (*PostgresPushTokenStore)(nil)

// TokensForUsers implements store.PushTokenStore.
func (s *PostgresPushTokenStore) TokensForUsers(
	ctx context.Context,
	userIDs []uuid.UUID,
) ([]domain.PushToken, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	ids := make([]string, len(userIDs))
	for i, id := range userIDs {
		ids[i] = id.String()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, token, last_updated FROM push_tokens WHERE user_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tokens []domain.PushToken
	for rows.Next() {
		var t domain.PushToken
		if err := rows.Scan(&t.UserID, &t.Token, &t.LastUpdated); err != nil {
			return nil, MapError(err)
		}
		tokens = append(tokens, t)
	}
	return tokens, MapError(rows.Err())
}

// Upsert implements store.PushTokenStore.
func (s *PostgresPushTokenStore) Upsert(ctx context.Context, t *domain.PushToken) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO push_tokens (token, user_id, last_updated)
		VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE
		SET user_id = EXCLUDED.user_id, last_updated = EXCLUDED.last_updated`,
		t.Token, t.UserID, t.LastUpdated.UTC())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to link push token",
			slog.String("error", err.Error()),
			slog.String("user_id", t.UserID.String()))
		return MapError(err)
	}
	return nil
}

// Delete implements store.PushTokenStore.
func (s *PostgresPushTokenStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM push_tokens WHERE token = $1`, token)
	return MapError(err)
}
