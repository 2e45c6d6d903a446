// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including user roles, content section names, and configuration groups.
package model

// User roles. Roles are stored in the user_roles table; a user may hold
// several, and access checks always go through the HasRole query.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

// ValidRoles contains all assignable roles.
var ValidRoles = []string{RoleAdmin, RoleEditor}

// IsValidRole checks if a role value is assignable.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// MinPasswordLength is the minimum accepted password length for
// sign-in credentials and provisioned accounts.
const MinPasswordLength = 6
