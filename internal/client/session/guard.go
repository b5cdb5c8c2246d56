package session

import "github.com/visahq/visadesk/internal/client/models"

// Action is the guard's verdict on a navigation attempt.
type Action int

const (
	// ActionPending defers the decision: render a neutral indicator and
	// nothing else while the session is still loading.
	ActionPending Action = iota
	// ActionRedirectLogin sends an unauthenticated visitor to the login
	// route, carrying the originally requested route as ReturnTo.
	ActionRedirectLogin
	// ActionRedirectHome sends an authenticated but unauthorized visitor to
	// the public entry point.
	ActionRedirectHome
	// ActionRender allows the requested view.
	ActionRender
)

func (a Action) String() string {
	switch a {
	case ActionPending:
		return "pending"
	case ActionRedirectLogin:
		return "redirect-login"
	case ActionRedirectHome:
		return "redirect-home"
	case ActionRender:
		return "render"
	}
	return "unknown"
}

// Decision is the guard's output. Redirect is set for the two redirect
// actions; ReturnTo is set on login redirects so the caller can come back
// after a successful login.
type Decision struct {
	Action   Action
	Redirect Route
	ReturnTo Route
}

// Evaluate decides whether the requested route may render given the current
// session. An empty allow-list admits any authenticated role. Pure function;
// callers re-evaluate it with a fresh snapshot on every render.
//
// The branches are checked in order: loading, authentication, authorization.
func Evaluate(s Session, requested Route, allowed ...models.Role) Decision {
	if s.Loading {
		return Decision{Action: ActionPending}
	}
	if !s.IsAuthenticated {
		return Decision{Action: ActionRedirectLogin, Redirect: RouteLogin, ReturnTo: requested}
	}
	if len(allowed) > 0 && !roleAllowed(s.User, allowed) {
		return Decision{Action: ActionRedirectHome, Redirect: RouteHome}
	}
	return Decision{Action: ActionRender}
}

func roleAllowed(u *models.User, allowed []models.Role) bool {
	if u == nil {
		return false
	}
	for _, r := range allowed {
		if u.Role == r {
			return true
		}
	}
	return false
}
