// Package session owns the client's authentication state: the session
// entity, its lifecycle transitions, and the navigation guard consulted
// before rendering protected views.
package session

import "github.com/visahq/visadesk/internal/client/models"

// Route names a navigable destination in the front end.
type Route string

const (
	RouteHome         Route = "/"
	RouteLogin        Route = "/login"
	RouteApplications Route = "/applications"
	RouteSubmit       Route = "/applications/new"
	RouteReview       Route = "/review"
	RouteStats        Route = "/stats"
)

// Navigator is the router abstraction the store issues redirect commands
// through. Navigate is unconditional and caller-independent: the target is
// expected to discard any in-flight view state, the way a full page
// navigation would.
type Navigator interface {
	Navigate(to Route)
}

// Session is a point-in-time snapshot of the authentication state handed to
// the view layer. IsAuthenticated holds exactly when both User and Token are
// set. Loading is true during the initial restore-from-storage check and
// for the duration of any login/register call.
type Session struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	Loading         bool
}
