package session

import (
	"strings"

	"gymtrack/internal/client/models"
)

// adminEmails is a stopgap for deployments whose auth endpoint omits the
// role field entirely. It is a display-level workaround so those accounts
// can reach the admin screens, NOT an authorization mechanism: the backend
// enforces access on every /admin endpoint regardless of what this returns.
// TODO: remove once all deployments return role on login.
var adminEmails = map[string]struct{}{
	"admin@gym.com": {},
}

// IsAdmin reports whether the identity should see admin-gated views.
// The role is compared case-insensitively.
func IsAdmin(u *models.User) bool {
	if u == nil {
		return false
	}
	if strings.EqualFold(u.Role, models.RoleAdmin) {
		return true
	}
	_, ok := adminEmails[strings.ToLower(u.Email)]
	return ok
}
