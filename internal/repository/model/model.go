package model

import (
	"github.com/google/uuid"
)

type User struct {
	Id             uuid.UUID `bson:"_id" ,json:"id"`
	Email          string    `bson:"email" ,json:"email"`
	Name           *string   `bson:"name,omitempty" ,json:"name"`
	Role           Role      `bson:"role" ,json:"role"`
	EmailConfirmed bool      `bson:"emailConfirmed" ,json:"emailConfirmed"`
}

// UserPermission is one override row per (userId, permission) pair.
// Presence with IsRevoked=false means explicitly granted, presence with
// IsRevoked=true means explicitly revoked, absence means the decision
// defers to the role baseline.
type UserPermission struct {
	UserId     uuid.UUID  `bson:"userId" ,json:"userId"`
	Permission Permission `bson:"permission" ,json:"permission"`
	IsRevoked  bool       `bson:"isRevoked" ,json:"isRevoked"`
}
