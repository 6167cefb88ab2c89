// Package routeguard decides which dashboard views a client should render
// for a given role. It is advisory only: the server-side auth and RBAC
// middleware remain the sole enforcement point, and bypassing this table
// grants nothing — a forbidden view would just render against endpoints that
// answer 401/403. The table exists so the client never flashes UI the server
// will refuse anyway.
package routeguard

import "github.com/billtrack/billing-system/internal/core/domain"

// LoginPath is where Redirect sends unauthenticated or unauthorized clients.
const LoginPath = "/login"

// Route is one guarded client view. An empty AllowedRoles slice means any
// authenticated user may render it.
type Route struct {
	Path         string   `json:"path"`
	AllowedRoles []string `json:"allowed_roles,omitempty"`
}

// Table mirrors the dashboard's route tree and its role requirements.
var Table = []Route{
	{Path: "/dashboard"},
	{Path: "/dashboard/manage-users", AllowedRoles: []string{domain.RoleAdmin}},
	{Path: "/dashboard/manage-bills", AllowedRoles: []string{domain.RoleAdmin}},
	{Path: "/dashboard/add-bill", AllowedRoles: []string{domain.RoleBillingOfficer}},
	{Path: "/dashboard/unpaid-bills", AllowedRoles: []string{domain.RoleAccountant}},
	{Path: "/dashboard/profile"},
	{Path: "/dashboard/settings"},
}

// Allowed reports whether a client holding role may render the view at path.
// An empty role means not logged in. Unknown paths are allowed: only routes
// present in the table are guarded.
func Allowed(role, path string) bool {
	for _, r := range Table {
		if r.Path != path {
			continue
		}
		if role == "" {
			return false
		}
		if len(r.AllowedRoles) == 0 {
			return true
		}
		for _, allowed := range r.AllowedRoles {
			if allowed == role {
				return true
			}
		}
		return false
	}
	return true
}

// Redirect returns the path to navigate to instead of path, or "" when the
// view may render.
func Redirect(role, path string) string {
	if Allowed(role, path) {
		return ""
	}
	return LoginPath
}
