package guard

import (
	"testing"

	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	protected := Route{Path: DashboardRoute, RequireAuth: true}
	adminOnly := Route{Path: AdminRoute, RequireAuth: true, AdminOnly: true}
	public := Route{Path: LoginRoute}

	tests := []struct {
		name     string
		route    Route
		identity models.Role
		want     Decision
	}{
		{
			name:     "anonymous on protected route redirects to login",
			route:    protected,
			identity: "",
			want:     Decision{RedirectTo: LoginRoute},
		},
		{
			name:     "anonymous on admin route redirects to login",
			route:    adminOnly,
			identity: "",
			want:     Decision{RedirectTo: LoginRoute},
		},
		{
			name:     "student on admin route redirects to dashboard",
			route:    adminOnly,
			identity: models.RoleStudent,
			want:     Decision{RedirectTo: DashboardRoute},
		},
		{
			name:     "student on protected route allowed",
			route:    protected,
			identity: models.RoleStudent,
			want:     Decision{Allowed: true},
		},
		{
			name:     "admin on admin route allowed",
			route:    adminOnly,
			identity: models.RoleAdmin,
			want:     Decision{Allowed: true},
		},
		{
			name:     "admin on protected route allowed",
			route:    protected,
			identity: models.RoleAdmin,
			want:     Decision{Allowed: true},
		},
		{
			name:     "anonymous on public route allowed",
			route:    public,
			identity: "",
			want:     Decision{Allowed: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Evaluate(tc.route, tc.identity))
		})
	}
}
