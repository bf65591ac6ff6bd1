// Package models defines the normalized domain shapes used by the client.
// Resource clients translate backend wire formats into these types at the
// API boundary; nothing above that layer sees snake_case payloads.
package models

// Role is the authenticated identity kind. At most one role is active
// at a time; its profile blob is stored under the matching storage key.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Profile describes the logged-in user as reported by the backend.
// The JSON tags match the on-disk profile blob layout.
type Profile struct {
	ID         int64  `json:"id"`
	University string `json:"university"`
	RollNo     string `json:"roll_no"`
	FullName   string `json:"full_name"`
	IsActive   bool   `json:"is_active"`
	IsAdmin    bool   `json:"is_admin"`
}

// Role derives the identity kind from the profile flags.
func (p Profile) Role() Role {
	if p.IsAdmin {
		return RoleAdmin
	}
	return RoleStudent
}

// Session is the authenticated state handed out by the session store.
// A zero-token session means Anonymous; callers must treat the value as
// immutable.
type Session struct {
	Token   string
	Profile Profile
}

// Authenticated reports whether the session carries a usable token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Identity returns the active role, or "" when anonymous.
func (s Session) Identity() Role {
	if !s.Authenticated() {
		return ""
	}
	return s.Profile.Role()
}

// Preferences is the UI-preferences blob persisted alongside the session.
// It is per-user state and is purged on identity switch.
type Preferences struct {
	DisplayName   string `json:"display_name"`
	DisplayRole   string `json:"display_role"`
	Notifications bool   `json:"notifications"`
}
