// Package guard contains the navigation-time access checks. Guards are pure
// and synchronous: every navigation re-evaluates against the live session
// store, no decision is ever cached.
package guard

import "github.com/smartcampus/assistant-cli/internal/client/models"

// Well-known routes used as redirect targets.
const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
	AdminRoute     = "/admin"
)

// Route describes the access requirements of one view.
type Route struct {
	Path        string
	RequireAuth bool
	AdminOnly   bool
}

// Decision is the outcome of a guard check. When Allowed is false,
// RedirectTo names the role-appropriate fallback route.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Evaluate gates a route against the active identity. An anonymous visitor
// is always sent to the login route; an authenticated non-admin hitting an
// admin-only route is sent to the dashboard.
func Evaluate(r Route, identity models.Role) Decision {
	if (r.RequireAuth || r.AdminOnly) && identity == "" {
		return Decision{RedirectTo: LoginRoute}
	}
	if r.AdminOnly && identity != models.RoleAdmin {
		return Decision{RedirectTo: DashboardRoute}
	}
	return Decision{Allowed: true}
}
