package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/visahq/visadesk/internal/client/models"
)

func authedAs(role models.Role) Session {
	return Session{
		User:            &models.User{ID: "1", Role: role},
		Token:           "tok",
		IsAuthenticated: true,
	}
}

func TestEvaluate_DecisionTable(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		allowed []models.Role
		want    Action
	}{
		{
			name:    "loading defers everything",
			session: Session{Loading: true},
			want:    ActionPending,
		},
		{
			name:    "loading wins even when authenticated",
			session: Session{User: &models.User{Role: models.RoleAdmin}, Token: "t", IsAuthenticated: true, Loading: true},
			allowed: []models.Role{models.RoleAdmin},
			want:    ActionPending,
		},
		{
			name:    "unauthenticated is sent to login",
			session: Session{},
			want:    ActionRedirectLogin,
		},
		{
			name:    "unauthenticated with allow-list still goes to login first",
			session: Session{},
			allowed: []models.Role{models.RoleOfficer},
			want:    ActionRedirectLogin,
		},
		{
			name:    "authenticated, no restriction",
			session: authedAs(models.RoleApplicant),
			want:    ActionRender,
		},
		{
			name:    "authenticated, role allowed",
			session: authedAs(models.RoleOfficer),
			allowed: []models.Role{models.RoleOfficer, models.RoleAdmin},
			want:    ActionRender,
		},
		{
			name:    "authenticated, role disallowed",
			session: authedAs(models.RoleApplicant),
			allowed: []models.Role{models.RoleOfficer, models.RoleAdmin},
			want:    ActionRedirectHome,
		},
		{
			name:    "admin passes an officer-or-admin gate",
			session: authedAs(models.RoleAdmin),
			allowed: []models.Role{models.RoleOfficer, models.RoleAdmin},
			want:    ActionRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.session, RouteReview, tt.allowed...)
			assert.Equal(t, tt.want, got.Action, "want %s, got %s", tt.want, got.Action)
		})
	}
}

func TestEvaluate_LoginRedirectCarriesReturnTo(t *testing.T) {
	d := Evaluate(Session{}, RouteStats)

	require.Equal(t, ActionRedirectLogin, d.Action)
	require.Equal(t, RouteLogin, d.Redirect)
	require.Equal(t, RouteStats, d.ReturnTo, "caller returns here after login")
}

func TestEvaluate_ApplicantBlockedFromReview(t *testing.T) {
	d := Evaluate(authedAs(models.RoleApplicant), RouteReview, models.RoleOfficer, models.RoleAdmin)

	require.Equal(t, ActionRedirectHome, d.Action)
	require.Equal(t, RouteHome, d.Redirect)
	require.Empty(t, d.ReturnTo)
}

func TestEvaluate_HasNoSideEffects(t *testing.T) {
	s := authedAs(models.RoleOfficer)
	before := *s.User

	_ = Evaluate(s, RouteApplications, models.RoleOfficer)
	_ = Evaluate(s, RouteApplications)

	require.Equal(t, before, *s.User)
	require.True(t, s.IsAuthenticated)
}
