package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"access-service/internal/repository/model"
)

var (
	UnauthorizedError      = errors.New("caller is not authorized")
	InvalidRoleError       = errors.New("unknown role")
	InvalidPermissionError = errors.New("unknown permission")
)

// EffectivePermissions is a derived snapshot, never persisted.
// AllPermissions is the role baseline plus individual grants, deduplicated,
// minus every revoked permission.
type EffectivePermissions struct {
	UserId uuid.UUID
	Role   model.Role

	RolePermissions       []model.Permission
	IndividualPermissions []model.Permission
	RevokedPermissions    []model.Permission
	AllPermissions        []model.Permission
}

func (e *EffectivePermissions) Has(permission model.Permission) bool {
	for _, p := range e.AllPermissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GrantResult reports what a grant actually did. AlreadyGranted means the
// permission was already active and nothing was written.
type GrantResult struct {
	UserId     uuid.UUID
	Permission model.Permission

	AlreadyGranted bool
	Unrevoked      bool
}

type RevokeResult struct {
	UserId     uuid.UUID
	Permission model.Permission

	AlreadyRevoked bool
}

// SyncResult itemizes one user's reconciliation. Per-permission failures
// land in Errors without aborting the rest of the sync.
type SyncResult struct {
	UserId uuid.UUID
	Role   model.Role

	Granted []model.Permission
	Revoked []model.Permission
	Errors  []string
}

type UserSyncResult struct {
	UserId uuid.UUID
	Email  string
	Role   model.Role

	Sync  *SyncResult
	Error string
}

func (r *UserSyncResult) Succeeded() bool {
	return r.Error == ""
}

type BatchSyncResult struct {
	Results []UserSyncResult
}

type UserWithPermissions struct {
	User        *model.User
	Permissions []model.Permission
}

type Service interface {
	// HasPermission is fail-closed: any store error, missing user or
	// canceled context resolves to false.
	HasPermission(ctx context.Context, userId uuid.UUID, permission model.Permission) bool
	ComputeEffectivePermissions(ctx context.Context, userId uuid.UUID) (*EffectivePermissions, error)
	GetUserWithPermissions(ctx context.Context, userId uuid.UUID) (*UserWithPermissions, error)

	GrantPermission(ctx context.Context, userId uuid.UUID, permission model.Permission) (*GrantResult, error)
	GrantMultiplePermissions(ctx context.Context, userId uuid.UUID, permissions []model.Permission) error
	RevokePermission(ctx context.Context, userId uuid.UUID, permission model.Permission) (*RevokeResult, error)
	RemovePermissionOverride(ctx context.Context, userId uuid.UUID, permission model.Permission) error

	TransitionRole(ctx context.Context, userId uuid.UUID, newRole model.Role) error

	SyncUserWithRole(ctx context.Context, userId uuid.UUID, removeExtra bool) (*SyncResult, error)
	SyncAllUsers(ctx context.Context, removeExtra bool) (*BatchSyncResult, error)

	InitializeUserPermissions(ctx context.Context, userId uuid.UUID, role model.Role) error
	HasInitializedPermissions(ctx context.Context, userId uuid.UUID) (bool, error)
}
