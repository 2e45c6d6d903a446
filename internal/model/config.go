// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Site configuration groups. Each group is a set of key/value rows in the
// site_config table, served to the frontend through the config cache.
const (
	ConfigGroupHeader   = "header"
	ConfigGroupFooter   = "footer"
	ConfigGroupContact  = "contact"
	ConfigGroupSocial   = "social"
	ConfigGroupSettings = "settings"
)

// ValidConfigGroups contains all configuration groups.
var ValidConfigGroups = []string{
	ConfigGroupHeader,
	ConfigGroupFooter,
	ConfigGroupContact,
	ConfigGroupSocial,
	ConfigGroupSettings,
}

// IsValidConfigGroup checks if a config group is known.
func IsValidConfigGroup(group string) bool {
	for _, g := range ValidConfigGroups {
		if g == group {
			return true
		}
	}
	return false
}
