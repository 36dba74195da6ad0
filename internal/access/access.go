// Package access holds the authorization policy: pure predicates over an
// authenticated identity, kept free of HTTP so the rules can be tested
// on their own. Anonymous requests never reach these checks; the auth
// middleware rejects unauthenticated writes with 401 first.
package access

import (
	"review-catalog/internal/data/entity"

	"github.com/google/uuid"
)

// Identity describes an authenticated requester.
type Identity struct {
	UserID      uuid.UUID
	Role        entity.UserRole
	IsSuperuser bool
}

// IsAdmin reports whether the identity has the admin role or the
// superuser flag. Superusers are admins regardless of role.
func (i Identity) IsAdmin() bool {
	return i.Role == entity.RoleAdmin || i.IsSuperuser
}

// CanMutateCatalog allows creating, updating and deleting titles,
// genres and categories. Reads are public and never consult policy.
func CanMutateCatalog(ident Identity) bool {
	return ident.IsAdmin()
}

// CanManageUsers allows listing, creating and deleting arbitrary users
// and changing arbitrary roles.
func CanManageUsers(ident Identity) bool {
	return ident.IsAdmin()
}

// CanModifyContent allows mutating a review or comment: its author, a
// moderator, an admin, or a superuser.
func CanModifyContent(ident Identity, authorID uuid.UUID) bool {
	if ident.UserID == authorID {
		return true
	}
	return ident.Role == entity.RoleModerator || ident.IsAdmin()
}
