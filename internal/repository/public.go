package repository

import (
	"context"

	"github.com/google/uuid"

	"access-service/internal/repository/model"
)

type Repository interface {
	GetUser(ctx context.Context, userId uuid.UUID) (*model.User, error)
	GetUserRole(ctx context.Context, userId uuid.UUID) (model.Role, error)
	GetAllUsers(ctx context.Context) ([]*model.User, error)

	GetOverride(ctx context.Context, userId uuid.UUID, permission model.Permission) (*model.UserPermission, error)
	GetOverrides(ctx context.Context, userId uuid.UUID) ([]*model.UserPermission, error)
	UpsertOverride(ctx context.Context, userId uuid.UUID, permission model.Permission, isRevoked bool) error
	// BulkUpsertOverrides applies every upsert in one transaction, so a
	// grant batch is never left partially applied.
	BulkUpsertOverrides(ctx context.Context, userId uuid.UUID, permissions []model.Permission, isRevoked bool) error
	DeleteOverride(ctx context.Context, userId uuid.UUID, permission model.Permission) error
	DeleteAllOverrides(ctx context.Context, userId uuid.UUID) error
	BulkInsertOverrides(ctx context.Context, overrides []model.UserPermission) error
	CountOverrides(ctx context.Context, userId uuid.UUID) (int64, error)

	// TransitionUserRole updates the user's role, clears every override row
	// and re-seeds the baseline as unrevoked grants, all in one transaction.
	TransitionUserRole(ctx context.Context, userId uuid.UUID, newRole model.Role, baseline []model.Permission) error
}
