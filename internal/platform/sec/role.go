// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level carried in an access token.
type UserRole string

const (
	// Superuser: sees unpublished entries in public lists, publishes and unpublishes.
	RoleAdmin UserRole = "admin"

	// Staff: uses the admin pages, previews and deletes entries.
	RoleEditor UserRole = "editor"

	// Writes entries but cannot reach the admin pages.
	RoleAuthor UserRole = "author"

	// Default role for signed-in readers
	RoleReader UserRole = "reader"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level() && r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {
	switch r {
	case RoleAdmin:
		return 40
	case RoleEditor:
		return 30
	case RoleAuthor:
		return 20
	case RoleReader:
		return 10
	default:
		return 0
	}
}
