package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/domain/ordinal"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const listColumns = `l.id, l.owner_id, l.title, l.color, l.icon, l.classifier_type,
	l.date_created, l.last_modified`

const prefsColumns = `m.list_id, m.user_id, m.sort_type, m.sort_direction,
	m.show_index_numbers, m.ordinal, m.last_modified`

// PostgresListStore implements store.ListStore.
type PostgresListStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresListStore creates a list store on db, which may be a pool or a
// transaction. If logger is nil, the default logger is used.
func NewPostgresListStore(db store.DBTX, logger *slog.Logger) *PostgresListStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresListStore{
		db:     db,
		logger: logger.With(slog.String("component", "list_store")),
	}
}

var _ store.ListStore = (*PostgresListStore)(nil)

// WithTxListStore implements store.ListStore.
func (s *PostgresListStore) WithTxListStore(tx *sql.Tx) store.ListStore {
	return &PostgresListStore{db: tx, logger: s.logger}
}

// LockCollection locks one user's list-of-lists.
func (s *PostgresListStore) LockCollection(ctx context.Context, userID uuid.UUID) error {
	return lockCollection(ctx, s.db, "lists", userID)
}

// MaxOrdinal implements store.OrdinalStore over a user's list-of-lists.
func (s *PostgresListStore) MaxOrdinal(ctx context.Context, userID uuid.UUID) (int, bool, error) {
	var highest sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(ordinal) FROM list_members WHERE user_id = $1`, userID).Scan(&highest)
	if err != nil {
		return 0, false, MapError(err)
	}
	return int(highest.Int64), highest.Valid, nil
}

// ApplyOrdinalShift moves listID within userID's list-of-lists. Returns
// store.ErrListNotFound when the user has no prefs row for the list.
func (s *PostgresListStore) ApplyOrdinalShift(
	ctx context.Context,
	userID uuid.UUID,
	listID uuid.UUID,
	shift ordinal.Shift,
	lastModified time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		UPDATE list_members
		SET ordinal = CASE WHEN list_id = $2 THEN $3 ELSE ordinal + $4 END,
		    last_modified = $5
		WHERE user_id = $1
		  AND EXISTS (SELECT 1 FROM list_members WHERE list_id = $2 AND user_id = $1)
		  AND (list_id = $2 OR ordinal BETWEEN $6 AND $7)`,
		userID, listID, shift.To, shift.Sign, lastModified.UTC(), shift.Lower, shift.Upper)
	if err != nil {
		log.Error("failed to apply list ordinal shift",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("list_id", listID.String()))
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrListNotFound)
}

// Create implements store.ListStore.
func (s *PostgresListStore) Create(ctx context.Context, l *domain.TaskList) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO lists (id, owner_id, title, color, icon, classifier_type, date_created, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.OwnerID, l.Title, nullableName(l.ColorName()), nullableName(l.IconName()),
		nullString(l.ClassifierType), l.DateCreated.UTC(), l.LastModified.UTC())
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to create list",
			slog.String("error", err.Error()),
			slog.String("list_id", l.ID.String()))
		return MapError(err)
	}
	return nil
}

// GetByID implements store.ListStore.
func (s *PostgresListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TaskList, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+listColumns+` FROM lists l WHERE l.id = $1`, id)
	l, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrListNotFound
	}
	if err != nil {
		return nil, MapError(err)
	}
	return l, nil
}

// ListForUser implements store.ListStore.
func (s *PostgresListStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]domain.ListWithPrefs, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+listColumns+`, `+prefsColumns+`
		FROM list_members m
		JOIN lists l ON l.id = m.list_id
		WHERE m.user_id = $1
		ORDER BY m.ordinal, l.date_created`, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	result := []domain.ListWithPrefs{}
	for rows.Next() {
		var (
			item                       domain.ListWithPrefs
			color, icon, classifierTyp sql.NullString
		)
		err := rows.Scan(
			&item.List.ID, &item.List.OwnerID, &item.List.Title, &color, &icon, &classifierTyp,
			&item.List.DateCreated, &item.List.LastModified,
			&item.Prefs.ListID, &item.Prefs.UserID, &item.Prefs.SortType, &item.Prefs.SortDirection,
			&item.Prefs.ShowIndexNumbers, &item.Prefs.Ordinal, &item.Prefs.LastModified,
		)
		if err != nil {
			return nil, MapError(err)
		}
		applyListNulls(&item.List, color, icon, classifierTyp)
		result = append(result, item)
	}
	return result, MapError(rows.Err())
}

// Update implements store.ListStore.
func (s *PostgresListStore) Update(ctx context.Context, l *domain.TaskList) error {
	if err := l.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE lists
		SET title = $2, color = $3, icon = $4, classifier_type = $5, last_modified = $6
		WHERE id = $1`,
		l.ID, l.Title, nullableName(l.ColorName()), nullableName(l.IconName()),
		nullString(l.ClassifierType), l.LastModified.UTC())
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrListNotFound)
}

// Delete implements store.ListStore. Tasks, prefs and invites cascade.
func (s *PostgresListStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrListNotFound)
}

// IsOwner implements store.ListStore.
func (s *PostgresListStore) IsOwner(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM lists WHERE id = $1 AND owner_id = $2)`,
		listID, userID).Scan(&ok)
	if err != nil {
		return false, MapError(err)
	}
	return ok, nil
}

// HasAccess implements store.ListStore.
func (s *PostgresListStore) HasAccess(ctx context.Context, listID, userID uuid.UUID) (bool, error) {
	var ok bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM lists WHERE id = $1 AND owner_id = $2)
		    OR EXISTS (SELECT 1 FROM list_members WHERE list_id = $1 AND user_id = $2)`,
		listID, userID).Scan(&ok)
	if err != nil {
		return false, MapError(err)
	}
	return ok, nil
}

// AddMember implements store.ListStore.
func (s *PostgresListStore) AddMember(ctx context.Context, p *domain.ListPrefs) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO list_members (list_id, user_id, sort_type, sort_direction,
		                          show_index_numbers, ordinal, last_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ListID, p.UserID, p.SortType, p.SortDirection, p.ShowIndexNumbers, p.Ordinal,
		p.LastModified.UTC())
	if err != nil {
		if IsUniqueViolation(err) {
			return store.ErrAlreadyMember
		}
		return MapError(err)
	}
	return nil
}

// RemoveMember implements store.ListStore.
func (s *PostgresListStore) RemoveMember(ctx context.Context, listID, userID uuid.UUID) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM list_members WHERE list_id = $1 AND user_id = $2`, listID, userID)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPrefsNotFound)
}

// GetPrefs implements store.ListStore.
func (s *PostgresListStore) GetPrefs(ctx context.Context, listID, userID uuid.UUID) (*domain.ListPrefs, error) {
	var p domain.ListPrefs
	err := s.db.QueryRowContext(ctx,
		`SELECT `+prefsColumns+` FROM list_members m WHERE m.list_id = $1 AND m.user_id = $2`,
		listID, userID).Scan(&p.ListID, &p.UserID, &p.SortType, &p.SortDirection,
		&p.ShowIndexNumbers, &p.Ordinal, &p.LastModified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrPrefsNotFound
	}
	if err != nil {
		return nil, MapError(err)
	}
	return &p, nil
}

// UpdatePrefs implements store.ListStore.
func (s *PostgresListStore) UpdatePrefs(ctx context.Context, p *domain.ListPrefs) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE list_members
		SET sort_type = $3, sort_direction = $4, show_index_numbers = $5, last_modified = $6
		WHERE list_id = $1 AND user_id = $2`,
		p.ListID, p.UserID, p.SortType, p.SortDirection, p.ShowIndexNumbers, p.LastModified.UTC())
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrPrefsNotFound)
}

// MemberIDs implements store.ListStore.
func (s *PostgresListStore) MemberIDs(ctx context.Context, listID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT owner_id FROM lists WHERE id = $1
		UNION
		SELECT user_id FROM list_members WHERE list_id = $1`, listID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	return ids, MapError(rows.Err())
}

// Members implements store.ListStore.
func (s *PostgresListStore) Members(ctx context.Context, listID uuid.UUID) ([]domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT u.id, u.display_name, u.photo_url
		FROM users u
		WHERE u.id IN (
		    SELECT owner_id FROM lists WHERE id = $1
		    UNION
		    SELECT user_id FROM list_members WHERE list_id = $1
		)
		ORDER BY u.display_name`, listID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	profiles := []domain.Profile{}
	for rows.Next() {
		var (
			p     domain.Profile
			photo sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.DisplayName, &photo); err != nil {
			return nil, MapError(err)
		}
		p.PhotoURL = stringPtr(photo)
		profiles = append(profiles, p)
	}
	return profiles, MapError(rows.Err())
}

func scanList(row rowScanner) (*domain.TaskList, error) {
	var (
		l                          domain.TaskList
		color, icon, classifierTyp sql.NullString
	)
	err := row.Scan(&l.ID, &l.OwnerID, &l.Title, &color, &icon, &classifierTyp,
		&l.DateCreated, &l.LastModified)
	if err != nil {
		return nil, err
	}
	applyListNulls(&l, color, icon, classifierTyp)
	return &l, nil
}

func applyListNulls(l *domain.TaskList, color, icon, classifierType sql.NullString) {
	if color.Valid {
		c := domain.Color(color.String)
		l.Color = &c
	}
	if icon.Valid {
		i := domain.Icon(icon.String)
		l.Icon = &i
	}
	l.ClassifierType = stringPtr(classifierType)
}

func nullableName(name string) sql.NullString {
	return sql.NullString{String: name, Valid: name != ""}
}
