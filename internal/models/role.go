package models

type UserRole string

const (
	RoleViewer UserRole = "viewer"
	RoleAdmin  UserRole = "admin"
)

// roleTier orders roles from least to most privileged.
var roleTier = map[UserRole]int{
	RoleViewer: 1,
	RoleAdmin:  2,
}

func IsValidRole(role UserRole) bool {
	_, ok := roleTier[role]
	return ok
}

func IsValidRoleList(roles []UserRole) bool {
	if len(roles) == 0 {
		return false
	}
	for _, role := range roles {
		if !IsValidRole(role) {
			return false
		}
	}
	return true
}

// NormalizeRoles drops duplicates and unknown entries, preserving order.
func NormalizeRoles(roles []UserRole) []UserRole {
	seen := make(map[UserRole]bool, len(roles))
	normalized := make([]UserRole, 0, len(roles))
	for _, role := range roles {
		if !IsValidRole(role) || seen[role] {
			continue
		}
		seen[role] = true
		normalized = append(normalized, role)
	}
	return normalized
}

// EnsureDefaultRole guarantees every user carries at least the viewer role.
func EnsureDefaultRole(roles []UserRole) []UserRole {
	for _, role := range roles {
		if role == RoleViewer {
			return roles
		}
	}
	return append(roles, RoleViewer)
}

func HasAtLeast(roles []UserRole, required UserRole) bool {
	requiredTier := roleTier[required]
	for _, role := range roles {
		if roleTier[role] >= requiredTier {
			return true
		}
	}
	return false
}

func HighestRole(roles []UserRole) UserRole {
	highest := RoleViewer
	for _, role := range roles {
		if roleTier[role] > roleTier[highest] {
			highest = role
		}
	}
	return highest
}
