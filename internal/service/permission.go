package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"access-service/internal/auth"
	"access-service/internal/messaging/notifier"
	"access-service/internal/repository"
	"access-service/internal/repository/model"
)

const defaultSyncWorkers = 8

type permissionService struct {
	logger *zap.SugaredLogger

	repo  repository.Repository
	notif notifier.Notifier

	syncWorkers int
}

func NewPermissionService(logger *zap.SugaredLogger, repo repository.Repository, notif notifier.Notifier,
	syncWorkers int) Service {

	if syncWorkers <= 0 {
		syncWorkers = defaultSyncWorkers
	}

	return &permissionService{
		logger: logger,

		repo:  repo,
		notif: notif,

		syncWorkers: syncWorkers,
	}
}

// HasPermission makes the precedence explicit as a three-way check: an
// explicit revocation denies, an explicit grant allows, otherwise the role
// baseline decides (Owner implies everything). Every failure path resolves
// to false: a permission check must never fail open.
func (s *permissionService) HasPermission(ctx context.Context, userId uuid.UUID, permission model.Permission) bool {
	override, err := s.repo.GetOverride(ctx, userId, permission)
	switch {
	case err == nil:
		return !override.IsRevoked
	case errors.Is(err, repository.OverrideNotFoundError):
		// no override, defer to the role baseline
	default:
		s.logger.Errorw("permission check failed, denying", "userId", userId, "permission", permission, "error", err)
		return false
	}

	role, err := s.repo.GetUserRole(ctx, userId)
	if err != nil {
		if !errors.Is(err, repository.UserNotFoundError) {
			s.logger.Errorw("permission check failed, denying", "userId", userId, "permission", permission, "error", err)
		}
		return false
	}

	if role == model.RoleOwner {
		return true
	}

	for _, p := range model.BaselinePermissions(role) {
		if p == permission {
			return true
		}
	}

	return false
}

func (s *permissionService) ComputeEffectivePermissions(ctx context.Context, userId uuid.UUID) (*EffectivePermissions, error) {
	user, err := s.repo.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	overrides, err := s.repo.GetOverrides(ctx, userId)
	if err != nil {
		return nil, err
	}

	return computeView(user, overrides), nil
}

func computeView(user *model.User, overrides []*model.UserPermission) *EffectivePermissions {
	rolePermissions := model.BaselinePermissions(user.Role)

	individual := make([]model.Permission, 0)
	revoked := make([]model.Permission, 0)
	for _, override := range overrides {
		if override.IsRevoked {
			revoked = append(revoked, override.Permission)
		} else {
			individual = append(individual, override.Permission)
		}
	}

	revokedSet := make(map[model.Permission]struct{}, len(revoked))
	for _, p := range revoked {
		revokedSet[p] = struct{}{}
	}

	all := make([]model.Permission, 0, len(rolePermissions)+len(individual))
	seen := make(map[model.Permission]struct{})
	for _, p := range append(append([]model.Permission{}, rolePermissions...), individual...) {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		if _, isRevoked := revokedSet[p]; isRevoked {
			continue
		}
		all = append(all, p)
	}

	return &EffectivePermissions{
		UserId: user.Id,
		Role:   user.Role,

		RolePermissions:       rolePermissions,
		IndividualPermissions: individual,
		RevokedPermissions:    revoked,
		AllPermissions:        all,
	}
}

func (s *permissionService) GetUserWithPermissions(ctx context.Context, userId uuid.UUID) (*UserWithPermissions, error) {
	user, err := s.repo.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	return &UserWithPermissions{
		User:        user,
		Permissions: model.BaselinePermissions(user.Role),
	}, nil
}

func (s *permissionService) GrantPermission(ctx context.Context, userId uuid.UUID, permission model.Permission) (*GrantResult, error) {
	if err := s.requireOwner(ctx); err != nil {
		return nil, err
	}
	if !permission.Valid() {
		return nil, InvalidPermissionError
	}
	if _, err := s.repo.GetUser(ctx, userId); err != nil {
		return nil, err
	}

	result := &GrantResult{UserId: userId, Permission: permission}

	existing, err := s.repo.GetOverride(ctx, userId, permission)
	if err != nil && !errors.Is(err, repository.OverrideNotFoundError) {
		return nil, err
	}
	if existing != nil && !existing.IsRevoked {
		result.AlreadyGranted = true
		return result, nil
	}

	if err := s.repo.UpsertOverride(ctx, userId, permission, false); err != nil {
		return nil, fmt.Errorf("failed to grant permission: %w", err)
	}
	result.Unrevoked = existing != nil

	if err := s.notif.PermissionUpdate(ctx, userId, permission, notifier.PermissionActionGranted); err != nil {
		s.logger.Errorw("error sending permission update", "error", err)
	}

	return result, nil
}

// GrantMultiplePermissions grants the whole batch in one transaction. An
// existing revocation is flipped back to a grant, not skipped, and a failure
// part way through leaves no permission applied.
func (s *permissionService) GrantMultiplePermissions(ctx context.Context, userId uuid.UUID, permissions []model.Permission) error {
	if err := s.requireOwner(ctx); err != nil {
		return err
	}
	for _, permission := range permissions {
		if !permission.Valid() {
			return InvalidPermissionError
		}
	}
	if _, err := s.repo.GetUser(ctx, userId); err != nil {
		return err
	}

	if err := s.repo.BulkUpsertOverrides(ctx, userId, permissions, false); err != nil {
		return fmt.Errorf("failed to grant permissions: %w", err)
	}

	for _, permission := range permissions {
		if err := s.notif.PermissionUpdate(ctx, userId, permission, notifier.PermissionActionGranted); err != nil {
			s.logger.Errorw("error sending permission update", "error", err)
		}
	}

	return nil
}

func (s *permissionService) RevokePermission(ctx context.Context, userId uuid.UUID, permission model.Permission) (*RevokeResult, error) {
	if err := s.requireOwner(ctx); err != nil {
		return nil, err
	}
	if !permission.Valid() {
		return nil, InvalidPermissionError
	}
	if _, err := s.repo.GetUser(ctx, userId); err != nil {
		return nil, err
	}

	result := &RevokeResult{UserId: userId, Permission: permission}

	existing, err := s.repo.GetOverride(ctx, userId, permission)
	if err != nil && !errors.Is(err, repository.OverrideNotFoundError) {
		return nil, err
	}
	if existing != nil && existing.IsRevoked {
		result.AlreadyRevoked = true
		return result, nil
	}

	if err := s.repo.UpsertOverride(ctx, userId, permission, true); err != nil {
		return nil, fmt.Errorf("failed to revoke permission: %w", err)
	}

	if err := s.notif.PermissionUpdate(ctx, userId, permission, notifier.PermissionActionRevoked); err != nil {
		s.logger.Errorw("error sending permission update", "error", err)
	}

	return result, nil
}

// RemovePermissionOverride deletes the override row entirely, returning the
// decision for that permission to the role baseline.
func (s *permissionService) RemovePermissionOverride(ctx context.Context, userId uuid.UUID, permission model.Permission) error {
	if err := s.requireOwner(ctx); err != nil {
		return err
	}
	if !permission.Valid() {
		return InvalidPermissionError
	}
	if _, err := s.repo.GetUser(ctx, userId); err != nil {
		return err
	}

	if err := s.repo.DeleteOverride(ctx, userId, permission); err != nil {
		return err
	}

	if err := s.notif.PermissionUpdate(ctx, userId, permission, notifier.PermissionActionCleared); err != nil {
		s.logger.Errorw("error sending permission update", "error", err)
	}

	return nil
}

/// TransitionRole resets the slate: every override from the old role is
// cleared and the new role's baseline is re-seeded, atomically. A demoted
// user must not retain elevated individual grants.
func (s *permissionService) TransitionRole(ctx context.Context, userId uuid.UUID, newRole model.Role) error {
	if err := s.requireOwner(ctx); err != nil {
		return err
	}
	if !newRole.Valid() {
		return InvalidRoleError
	}

	user, err := s.repo.GetUser(ctx, userId)
	if err != nil {
		return err
	}
	oldRole := user.Role

	err = s.repo.TransitionUserRole(ctx, userId, newRole, model.BaselinePermissions(newRole))
	if err != nil {
		return fmt.Errorf("failed to transition role: %w", err)
	}

	if err := s.notif.RoleUpdate(ctx, userId, oldRole, newRole); err != nil {
		s.logger.Errorw("error sending role update", "error", err)
	}

	return nil
}

func (s *permissionService) SyncUserWithRole(ctx context.Context, userId uuid.UUID, removeExtra bool) (*SyncResult, error) {
	if err := s.requireOwner(ctx); err != nil {
		return nil, err
	}

	return s.syncUser(ctx, userId, removeExtra)
}

func (s *permissionService) syncUser(ctx context.Context, userId uuid.UUID, removeExtra bool) (*SyncResult, error) {
	view, err := s.ComputeEffectivePermissions(ctx, userId)
	if err != nil {
		return nil, err
	}

	expected := model.BaselinePermissions(view.Role)

	expectedSet := make(map[model.Permission]struct{}, len(expected))
	for _, p := range expected {
		expectedSet[p] = struct{}{}
	}

	result := &SyncResult{
		UserId:  userId,
		Role:    view.Role,
		Granted: make([]model.Permission, 0),
		Revoked: make([]model.Permission, 0),
		Errors:  make([]string, 0),
	}

	// Grant (or un-revoke) everything the baseline expects but the user
	// does not effectively have.
	for _, permission := range expected {
		if view.Has(permission) {
			continue
		}
		if err := s.repo.UpsertOverride(ctx, userId, permission, false); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("failed to grant %s: %s", permission, err))
			continue
		}
		result.Granted = append(result.Granted, permission)

		if err := s.notif.PermissionUpdate(ctx, userId, permission, notifier.PermissionActionGranted); err != nil {
			s.logger.Errorw("error sending permission update", "error", err)
		}
	}

	// Extras are only stripped on explicit request: reconciliation is
	// additive-safe by default.
	if removeExtra {
		for _, permission := range view.AllPermissions {
			if _, ok := expectedSet[permission]; ok {
				continue
			}
			if err := s.repo.UpsertOverride(ctx, userId, permission, true); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("failed to revoke %s: %s", permission, err))
				continue
			}
			result.Revoked = append(result.Revoked, permission)

			if err := s.notif.PermissionUpdate(ctx, userId, permission, notifier.PermissionActionRevoked); err != nil {
				s.logger.Errorw("error sending permission update", "error", err)
			}
		}
	}

	return result, nil
}

// SyncAllUsers reconciles every user independently; one user's failure is
// recorded in their result and never aborts the batch.
func (s *permissionService) SyncAllUsers(ctx context.Context, removeExtra bool) (*BatchSyncResult, error) {
	if err := s.requireOwner(ctx); err != nil {
		return nil, err
	}

	users, err := s.repo.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	results := make([]UserSyncResult, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.syncWorkers)
	for i, user := range users {
		i, user := i, user
		g.Go(func() error {
			result := UserSyncResult{
				UserId: user.Id,
				Email:  user.Email,
				Role:   user.Role,
			}

			sync, err := s.syncUser(gctx, user.Id, removeExtra)
			if err != nil {
				result.Error = err.Error()
			} else {
				result.Sync = sync
			}

			results[i] = result
			return nil
		})
	}

	// Workers never return errors, but Wait still bounds the pool.
	_ = g.Wait()

	return &BatchSyncResult{Results: results}, nil
}

// InitializeUserPermissions seeds the ledger with the role baseline using
// skip-on-duplicate inserts, so calling it twice is a no-op.
func (s *permissionService) InitializeUserPermissions(ctx context.Context, userId uuid.UUID, role model.Role) error {
	if !role.Valid() {
		return InvalidRoleError
	}

	baseline := model.BaselinePermissions(role)
	rows := make([]model.UserPermission, len(baseline))
	for i, permission := range baseline {
		rows[i] = model.UserPermission{UserId: userId, Permission: permission, IsRevoked: false}
	}

	if err := s.repo.BulkInsertOverrides(ctx, rows); err != nil {
		return fmt.Errorf("failed to initialize permissions: %w", err)
	}

	s.logger.Infow("initialized user permissions", "userId", userId, "role", role, "permissions", len(rows))
	return nil
}

// HasInitializedPermissions is a first-touch signal only: it says whether
// any ledger row exists, not anything about effective permissions.
func (s *permissionService) HasInitializedPermissions(ctx context.Context, userId uuid.UUID) (bool, error) {
	count, err := s.repo.CountOverrides(ctx, userId)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// requireOwner checks the authorization evidence on the context. Missing
// evidence or a non-Owner actor both fail closed as Unauthorized.
func (s *permissionService) requireOwner(ctx context.Context) error {
	if auth.IsSystemActor(ctx) {
		return nil
	}

	actor, ok := auth.ActorFromContext(ctx)
	if !ok {
		return UnauthorizedError
	}

	role, err := s.repo.GetUserRole(ctx, actor)
	if err != nil {
		if errors.Is(err, repository.UserNotFoundError) {
			return UnauthorizedError
		}
		return fmt.Errorf("failed to resolve actor role: %w", err)
	}

	if role != model.RoleOwner {
		return UnauthorizedError
	}

	return nil
}
