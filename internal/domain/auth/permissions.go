package auth

import "context"

const (
	RoleAdmin  = "admin"
	RoleHR     = "hr"
	RoleViewer = "viewer"
)

const (
	PermRead         = "hr.read"
	PermWrite        = "hr.write"
	PermApprove      = "hr.approve"
	PermCompensation = "hr.compensation"
)

var Roles = []string{RoleAdmin, RoleHR, RoleViewer}

var RolePermissions = map[string][]string{
	RoleAdmin:  {PermRead, PermWrite, PermApprove, PermCompensation},
	RoleHR:     {PermRead, PermWrite, PermApprove, PermCompensation},
	RoleViewer: {PermRead},
}

func HasPermission(role, permission string) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// StaticPermissions resolves permissions from RolePermissions.
type StaticPermissions struct{}

func (StaticPermissions) HasPermission(_ context.Context, role, permission string) (bool, error) {
	return HasPermission(role, permission), nil
}
