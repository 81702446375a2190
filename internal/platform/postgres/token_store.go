package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// tokenTables maps each token kind to its table. Table names are never
// taken from input.
var tokenTables = map[domain.TokenKind]string{
	domain.TokenEmailVerification: "email_verification_tokens",
	domain.TokenPasswordReset:     "password_reset_tokens",
	domain.TokenListInvite:        "list_invite_tokens",
}

// PostgresTokenStore implements store.TokenStore.
type PostgresTokenStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTokenStore creates a token store.
func NewPostgresTokenStore(db store.DBTX, logger *slog.Logger) *PostgresTokenStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresTokenStore{
		db:     db,
		logger: logger.With(slog.String("component", "token_store")),
	}
}

var _ store.TokenStore = (*PostgresTokenStore)(nil)

// WithTxTokenStore implements store.TokenStore.
func (s *PostgresTokenStore) WithTxTokenStore(tx *sql.Tx) store.TokenStore {
	return &PostgresTokenStore{db: tx, logger: s.logger}
}

func tableFor(kind domain.TokenKind) (string, error) {
	table, ok := tokenTables[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", store.ErrUnknownTokenKind, kind)
	}
	return table, nil
}

// ExpirableTokens implements store.TokenStore.
func (s *PostgresTokenStore) ExpirableTokens(
	ctx context.Context,
	kind domain.TokenKind,
) ([]domain.ExpirableToken, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT token, expiry_time FROM `+table)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tokens []domain.ExpirableToken
	for rows.Next() {
		t := domain.ExpirableToken{Kind: kind}
		if err := rows.Scan(&t.Token, &t.ExpiryTime); err != nil {
			return nil, MapError(err)
		}
		tokens = append(tokens, t)
	}
	return tokens, MapError(rows.Err())
}

// InvalidateToken implements store.TokenStore.
func (s *PostgresTokenStore) InvalidateToken(ctx context.Context, kind domain.TokenKind, token string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE token = $1`, token); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to invalidate token",
			slog.String("error", err.Error()),
			slog.String("kind", string(kind)))
		return MapError(err)
	}
	return nil
}

// CreateInvite implements store.TokenStore.
func (s *PostgresTokenStore) CreateInvite(ctx context.Context, invite *domain.InviteToken) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO list_invite_tokens (token, list_id, expiry_time) VALUES ($1, $2, $3)`,
		invite.Token, invite.ListID, invite.ExpiryTime.UTC())
	return MapError(err)
}

// GetInvite implements store.TokenStore.
func (s *PostgresTokenStore) GetInvite(ctx context.Context, token string) (*domain.InviteToken, error) {
	var invite domain.InviteToken
	err := s.db.QueryRowContext(ctx,
		`SELECT token, list_id, expiry_time FROM list_invite_tokens WHERE token = $1`, token).
		Scan(&invite.Token, &invite.ListID, &invite.ExpiryTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTokenNotFound
	}
	if err != nil {
		return nil, MapError(err)
	}
	return &invite, nil
}

// ConsumeInvite implements store.TokenStore.
func (s *PostgresTokenStore) ConsumeInvite(ctx context.Context, token string) (*domain.InviteToken, error) {
	var invite domain.InviteToken
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM list_invite_tokens WHERE token = $1 RETURNING token, list_id, expiry_time`, token).
		Scan(&invite.Token, &invite.ListID, &invite.ExpiryTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTokenNotFound
	}
	if err != nil {
		return nil, MapError(err)
	}
	return &invite, nil
}
