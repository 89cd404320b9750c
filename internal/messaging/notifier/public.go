package notifier

import (
	"context"

	"github.com/google/uuid"

	"access-service/internal/repository/model"
)

type PermissionAction string

const (
	PermissionActionGranted PermissionAction = "GRANTED"
	PermissionActionRevoked PermissionAction = "REVOKED"
	// PermissionActionCleared means the override row was removed and the
	// decision defers to the role baseline again.
	PermissionActionCleared PermissionAction = "CLEARED"
)

type Notifier interface {
	PermissionUpdate(ctx context.Context, userId uuid.UUID, permission model.Permission, action PermissionAction) error
	RoleUpdate(ctx context.Context, userId uuid.UUID, oldRole model.Role, newRole model.Role) error
}
