package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of authorization roles.
type Role uint8

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

// String returns the stored representation of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// ParseRole converts a stored role name into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "USER", "ROLE_USER":
		return RoleUser, nil
	case "ADMIN", "ROLE_ADMIN":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}

// FederatedPasswordHash marks accounts created through federated login.
// It is not a valid encoded hash, so password verification always fails.
const FederatedPasswordHash = "!federated"

// User is a local account. Username is the natural key.
type User struct {
	Username     string
	PasswordHash string
	DisplayName  string
	Role         Role
	CreatedAt    time.Time
}

// UserInfo is the "who am I" view of a user.
type UserInfo struct {
	Username    string
	DisplayName string
	Role        Role
}
