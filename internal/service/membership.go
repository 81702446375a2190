package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

const (
	// InviteTokenLength is the length of generated invite tokens.
	InviteTokenLength = 36

	// DefaultInviteTTL is how long an invite stays redeemable.
	DefaultInviteTTL = 4 * time.Hour

	inviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// MembershipGate authorizes list operations and runs the invite flow.
type MembershipGate struct {
	lists     store.ListStore
	tokens    store.TokenStore
	tx        store.Transactor
	sequencer *OrdinalSequencer
	emitter   events.EventEmitter
	inviteTTL time.Duration
	now       func() time.Time
	newToken  func() (string, error)
	logger    *slog.Logger
}

// NewMembershipGate creates a gate. A non-positive inviteTTL means DefaultInviteTTL.
func NewMembershipGate(
	lists store.ListStore,
	tokens store.TokenStore,
	tx store.Transactor,
	sequencer *OrdinalSequencer,
	emitter events.EventEmitter,
	inviteTTL time.Duration,
	logger *slog.Logger,
) *MembershipGate {
	if logger == nil {
		logger = slog.Default()
	}
	if inviteTTL <= 0 {
		inviteTTL = DefaultInviteTTL
	}
	return &MembershipGate{
		lists:     lists,
		tokens:    tokens,
		tx:        tx,
		sequencer: sequencer,
		emitter:   emitter,
		inviteTTL: inviteTTL,
		now:       time.Now,
		newToken:  newInviteToken,
		logger:    logger.With("component", "membership_gate"),
	}
}

// EnsureAccess succeeds when userID owns or is a member of listID.
func (g *MembershipGate) EnsureAccess(ctx context.Context, userID, listID uuid.UUID) error {
	ok, err := g.lists.HasAccess(ctx, listID, userID)
	if err != nil {
		return NewServiceError("ensure_access", "failed to check list access", err)
	}
	if !ok {
		return domain.ErrListAccessDenied
	}
	return nil
}

// EnsureOwnership succeeds when userID owns listID.
func (g *MembershipGate) EnsureOwnership(ctx context.Context, userID, listID uuid.UUID) error {
	ok, err := g.lists.IsOwner(ctx, listID, userID)
	if err != nil {
		return NewServiceError("ensure_ownership", "failed to check list ownership", err)
	}
	if !ok {
		return domain.ErrListOwnershipDenied
	}
	return nil
}

// EnsureNotOwner succeeds when userID has access to listID without owning it.
func (g *MembershipGate) EnsureNotOwner(ctx context.Context, userID, listID uuid.UUID) error {
	if err := g.EnsureAccess(ctx, userID, listID); err != nil {
		return err
	}
	owner, err := g.lists.IsOwner(ctx, listID, userID)
	if err != nil {
		return NewServiceError("ensure_not_owner", "failed to check list ownership", err)
	}
	if owner {
		return domain.ErrUserIsListOwner
	}
	return nil
}

// RequestInvite issues a single-use invite token for listID. Only the owner
// may invite.
func (g *MembershipGate) RequestInvite(ctx context.Context, userID, listID uuid.UUID) (*domain.InviteToken, error) {
	if err := g.EnsureOwnership(ctx, userID, listID); err != nil {
		return nil, err
	}

	token, err := g.newToken()
	if err != nil {
		return nil, NewServiceError("request_invite", "failed to generate invite token", err)
	}
	invite := &domain.InviteToken{
		Token:      token,
		ListID:     listID,
		ExpiryTime: g.now().UTC().Add(g.inviteTTL),
	}
	if err := g.tokens.CreateInvite(ctx, invite); err != nil {
		return nil, NewServiceError("request_invite", "failed to store invite token", err)
	}

	logger.FromContextOrDefault(ctx, g.logger).Info("issued list invite",
		slog.String("list_id", listID.String()),
		slog.Time("expires", invite.ExpiryTime))
	return invite, nil
}

// GetListByInvite returns the list an unexpired invite token points at.
func (g *MembershipGate) GetListByInvite(ctx context.Context, token string) (*domain.TaskList, error) {
	invite, err := g.tokens.GetInvite(ctx, token)
	if err != nil {
		return nil, inviteError("get_invite", err)
	}
	if invite.Expired(g.now()) {
		return nil, domain.ErrInviteTokenExpired
	}

	list, err := g.lists.GetByID(ctx, invite.ListID)
	if err != nil {
		return nil, NewServiceError("get_invite", "failed to load invited list", err)
	}
	return list, nil
}

// AcceptInvite redeems token for userID: the token is consumed and the user
// becomes a member, with the list appended to their list-of-lists, in one
// transaction. A token can be redeemed once; an expired token is rejected
// even if the expiry sweep has not removed it yet.
func (g *MembershipGate) AcceptInvite(ctx context.Context, userID uuid.UUID, token string) (*domain.ListWithPrefs, error) {
	now := g.now().UTC()
	var result domain.ListWithPrefs

	err := g.tx.RunInTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tokens := g.tokens.WithTxTokenStore(tx)
		lists := g.lists.WithTxListStore(tx)

		invite, err := tokens.ConsumeInvite(ctx, token)
		if err != nil {
			return inviteError("accept_invite", err)
		}
		if invite.Expired(now) {
			return domain.ErrInviteTokenExpired
		}

		list, err := lists.GetByID(ctx, invite.ListID)
		if err != nil {
			return NewServiceError("accept_invite", "failed to load invited list", err)
		}
		member, err := lists.HasAccess(ctx, list.ID, userID)
		if err != nil {
			return NewServiceError("accept_invite", "failed to check membership", err)
		}
		if member {
			return domain.ErrAlreadyMember
		}

		next, err := g.sequencer.Append(ctx, lists, userID)
		if err != nil {
			return NewServiceError("accept_invite", "failed to position list", err)
		}
		prefs := domain.DefaultListPrefs(list.ID, userID, next, now)
		if err := lists.AddMember(ctx, prefs); err != nil {
			return NewServiceError("accept_invite", "failed to add member", err)
		}

		result = domain.ListWithPrefs{List: *list, Prefs: *prefs}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContextOrDefault(ctx, g.logger).Info("user joined list",
		slog.String("list_id", result.List.ID.String()),
		slog.String("user_id", userID.String()))
	emit(ctx, g.emitter, g.logger, events.NewActionEvent(result.List.ID, nil, userID, domain.ActionJoinList))
	return &result, nil
}

// Leave removes userID from listID. The owner cannot leave their own list.
func (g *MembershipGate) Leave(ctx context.Context, userID, listID uuid.UUID) error {
	if err := g.EnsureNotOwner(ctx, userID, listID); err != nil {
		return err
	}
	if err := g.lists.RemoveMember(ctx, listID, userID); err != nil {
		return NewServiceError("leave_list", "failed to remove member", err)
	}
	return nil
}

func inviteError(operation string, err error) error {
	if errors.Is(err, store.ErrTokenNotFound) {
		return domain.ErrInviteTokenNotFound
	}
	return NewServiceError(operation, "failed to load invite token", err)
}

// newInviteToken returns InviteTokenLength characters drawn uniformly from
// inviteAlphabet using crypto/rand.
func newInviteToken() (string, error) {
	limit := big.NewInt(int64(len(inviteAlphabet)))
	b := make([]byte, InviteTokenLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		b[i] = inviteAlphabet[n.Int64()]
	}
	return string(b), nil
}
