package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/facilityops/access-system/internal/api/metrics"
	"github.com/facilityops/access-system/internal/core/domain"
	"github.com/facilityops/access-system/internal/core/ports"
)

// RoleService is the single authority for role mutations across the profile
// and claim stores. The two stores are not updated transactionally as a
// unit: a failure mid-sequence can leave the claim behind the profile, and
// SelfSyncRoleClaim is the repair path for exactly that divergence.
type RoleService struct {
	profiles        ports.ProfileRepository
	claims          ports.ClaimStore
	audit           ports.AuditLog
	bootstrapSecret string
	log             zerolog.Logger
	now             func() time.Time
}

// NewRoleService returns a RoleService. bootstrapSecret may be empty, in
// which case BootstrapFirstAdmin fails closed.
func NewRoleService(
	profiles ports.ProfileRepository,
	claims ports.ClaimStore,
	audit ports.AuditLog,
	bootstrapSecret string,
	log zerolog.Logger,
) *RoleService {
	return &RoleService{
		profiles:        profiles,
		claims:          claims,
		audit:           audit,
		bootstrapSecret: bootstrapSecret,
		log:             log,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// ChangeRole sets the target's role in both stores. Only admins may call
// it. Write order: profile, then claim, then audit. A failure before the
// audit write aborts and surfaces; an audit-only failure is logged and
// counted but the call still reports success, since authorization state is
// already correct in both stores.
func (s *RoleService) ChangeRole(ctx context.Context, in ports.ChangeRoleInput) (*ports.RoleResult, error) {
	// 1. Authentication and authorization, fail-fast.
	if in.Caller.UID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if domain.Role(in.Caller.ClaimRole) != domain.RoleAdmin {
		return nil, domain.ErrPermissionDenied
	}

	// 2. Normalize and validate the requested role.
	newRole, err := domain.NormalizeRole(in.NewRole)
	if err != nil {
		return nil, err
	}
	if in.TargetUID == "" {
		return nil, domain.ErrProfileNotFound
	}

	// 3. Target profile must exist before anything is written.
	if _, err := s.profiles.Get(ctx, in.TargetUID); err != nil {
		return nil, err
	}

	// 4. Durable store first.
	fields := map[string]any{"role": newRole, "updated_at": s.now()}
	if err := s.profiles.Update(ctx, in.TargetUID, fields); err != nil {
		return nil, fmt.Errorf("change role: update profile: %w", err)
	}

	// 5. Project into the claim store.
	if err := s.claims.SetRoleClaim(ctx, in.TargetUID, newRole); err != nil {
		s.log.Error().Err(err).Str("target_uid", in.TargetUID).
			Msg("claim write failed after profile update; claim is stale until self-sync")
		return nil, fmt.Errorf("change role: set claim: %w", err)
	}

	// 6. Audit trail.
	s.appendAudit(ctx, &domain.AuditEntry{
		Type:      domain.AuditRoleChange,
		TargetUID: in.TargetUID,
		NewRole:   newRole,
		ChangedBy: in.Caller.UID,
		Timestamp: s.now(),
	})

	metrics.RoleChangesTotal.WithLabelValues(string(domain.AuditRoleChange), string(newRole)).Inc()
	s.log.Info().
		Str("target_uid", in.TargetUID).
		Str("new_role", string(newRole)).
		Str("changed_by", in.Caller.UID).
		Msg("role changed")

	return &ports.RoleResult{Status: ports.RoleStatusOK, Role: newRole}, nil
}

// BootstrapFirstAdmin elevates the caller to admin, gated by an out-of-band
// secret rather than in-band authorization. It is the recovery path for
// establishing the first privileged account and is idempotent.
func (s *RoleService) BootstrapFirstAdmin(ctx context.Context, caller ports.Caller, suppliedSecret string) (*ports.RoleResult, error) {
	// Secret checks come first and stay generic: a caller must not be able
	// to tell an unset secret apart from a wrong one beyond the error kind.
	if s.bootstrapSecret == "" {
		return nil, domain.ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(suppliedSecret), []byte(s.bootstrapSecret)) != 1 {
		return nil, domain.ErrPermissionDenied
	}
	if caller.UID == "" {
		return nil, domain.ErrUnauthenticated
	}

	// Idempotency: read the live claim, not the caller's token, so a repeat
	// call before token refresh still short-circuits.
	current, ok, err := s.claims.RoleClaim(ctx, caller.UID)
	if err != nil {
		return nil, fmt.Errorf("bootstrap admin: read claim: %w", err)
	}
	if ok && current == domain.RoleAdmin {
		return &ports.RoleResult{Status: ports.RoleStatusAlreadyAdmin, Role: domain.RoleAdmin}, nil
	}

	if err := s.claims.SetRoleClaim(ctx, caller.UID, domain.RoleAdmin); err != nil {
		return nil, fmt.Errorf("bootstrap admin: set claim: %w", err)
	}

	// Merge semantics: the caller's profile may not exist yet, and unrelated
	// fields on an existing one must survive.
	fields := map[string]any{"role": domain.RoleAdmin, "elevated_at": s.now()}
	if err := s.profiles.Set(ctx, caller.UID, fields, true); err != nil {
		return nil, fmt.Errorf("bootstrap admin: upsert profile: %w", err)
	}

	s.appendAudit(ctx, &domain.AuditEntry{
		Type:      domain.AuditBootstrapAdmin,
		TargetUID: caller.UID,
		NewRole:   domain.RoleAdmin,
		Timestamp: s.now(),
	})

	metrics.RoleChangesTotal.WithLabelValues(string(domain.AuditBootstrapAdmin), string(domain.RoleAdmin)).Inc()
	s.log.Info().Str("uid", caller.UID).Msg("first admin bootstrapped")

	return &ports.RoleResult{Status: ports.RoleStatusOK, Role: domain.RoleAdmin}, nil
}

// SelfSyncRoleClaim pulls the caller's own profile role into their claim.
// It never lets a caller pull an arbitrary role, only the value already
// recorded in their own profile, and refuses to propagate a value outside
// the role set into the claim layer.
func (s *RoleService) SelfSyncRoleClaim(ctx context.Context, caller ports.Caller) (*ports.RoleResult, error) {
	if caller.UID == "" {
		return nil, domain.ErrUnauthenticated
	}

	profile, err := s.profiles.Get(ctx, caller.UID)
	if err != nil {
		return nil, err
	}
	if !profile.Role.Valid() {
		return nil, domain.ErrCorruptStoredRole
	}

	if domain.Role(caller.ClaimRole) == profile.Role {
		return &ports.RoleResult{Status: ports.RoleStatusNoop, Role: profile.Role}, nil
	}

	if err := s.claims.SetRoleClaim(ctx, caller.UID, profile.Role); err != nil {
		return nil, fmt.Errorf("self sync: set claim: %w", err)
	}

	s.appendAudit(ctx, &domain.AuditEntry{
		Type:          domain.AuditSelfSyncRoleClaim,
		TargetUID:     caller.UID,
		NewRole:       profile.Role,
		PreviousClaim: domain.Role(caller.ClaimRole),
		Timestamp:     s.now(),
	})

	metrics.RoleChangesTotal.WithLabelValues(string(domain.AuditSelfSyncRoleClaim), string(profile.Role)).Inc()
	s.log.Info().
		Str("uid", caller.UID).
		Str("previous_claim", caller.ClaimRole).
		Str("new_role", string(profile.Role)).
		Msg("role claim synced from profile")

	return &ports.RoleResult{Status: ports.RoleStatusUpdated, Role: profile.Role}, nil
}

// appendAudit writes the audit entry, treating failure as a monitoring gap
// rather than an operation failure: the stores are already mutated.
func (s *RoleService) appendAudit(ctx context.Context, entry *domain.AuditEntry) {
	if err := s.audit.Append(ctx, entry); err != nil {
		metrics.AuditWriteFailuresTotal.Inc()
		s.log.Error().Err(err).
			Str("type", string(entry.Type)).
			Str("target_uid", entry.TargetUID).
			Msg("audit append failed after mutation")
	}
}
