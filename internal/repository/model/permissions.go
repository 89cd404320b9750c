package model

type Role string

const (
	RoleOwner     Role = "Owner"
	RoleAdmin     Role = "Admin"
	RoleDeveloper Role = "Developer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleDeveloper:
		return true
	}
	return false
}

type Permission string

const (
	PermissionViewPrompts   Permission = "VIEW_PROMPTS"
	PermissionCreatePrompts Permission = "CREATE_PROMPTS"
	PermissionEditPrompts   Permission = "EDIT_PROMPTS"
	PermissionDeletePrompts Permission = "DELETE_PROMPTS"
	PermissionManageUsers   Permission = "MANAGE_USERS"
)

// AllPermissions returns the closed permission set. Owners are granted
// everything in this set, so a newly added permission reaches Owners
// without a table edit.
func AllPermissions() []Permission {
	return []Permission{
		PermissionViewPrompts,
		PermissionCreatePrompts,
		PermissionEditPrompts,
		PermissionDeletePrompts,
		PermissionManageUsers,
	}
}

func (p Permission) Valid() bool {
	for _, known := range AllPermissions() {
		if p == known {
			return true
		}
	}
	return false
}

// RolePermissions maps each non-Owner role to its baseline permission set.
// Owner is deliberately absent: its baseline is AllPermissions().
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewPrompts,
	},
	RoleDeveloper: {
		PermissionViewPrompts,
		PermissionCreatePrompts,
		PermissionEditPrompts,
		PermissionDeletePrompts,
	},
}

// BaselinePermissions resolves the role baseline. An unknown role resolves
// to the empty set, never to the Owner set.
func BaselinePermissions(role Role) []Permission {
	if role == RoleOwner {
		return AllPermissions()
	}

	perms, ok := RolePermissions[role]
	if !ok {
		return []Permission{}
	}

	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}
