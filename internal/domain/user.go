package domain

import "strings"

// Role is a closed set; there is no role-change operation.
type Role string

const (
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.TrimSpace(s)) {
	case RoleMerchant:
		return RoleMerchant, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
	Role         Role   `json:"role"`
}

// Session is the resolved identity behind a bearer token. Process-lifetime
// only; no expiry is enforced.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}
