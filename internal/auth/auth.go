// Package auth is the single place that maps hub roles to dashboard
// capabilities. Views ask for a capability instead of comparing role
// strings themselves.
package auth

import (
	"github.com/lomoval/famboard/internal/model"
)

// CanManageEvents reports whether the viewer may create, update or delete
// events in a family. Owners and admins can; plain members cannot.
func CanManageEvents(role model.Role) bool {
	switch role {
	case model.RoleOwner, model.RoleAdmin:
		return true
	default:
		return false
	}
}

// CanViewPrivate reports whether the viewer may see events marked private
// by other members.
func CanViewPrivate(role model.Role) bool {
	return role == model.RoleOwner
}
