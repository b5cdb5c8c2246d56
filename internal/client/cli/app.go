// Package cli is the terminal front end of the visadesk client. It consumes
// session snapshots to decide what to offer, invokes session operations in
// response to user commands, and implements the Navigator the session store
// issues redirects through.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/visahq/visadesk/internal/client/api"
	"github.com/visahq/visadesk/internal/client/config"
	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/client/repositories/credentials"
	"github.com/visahq/visadesk/internal/client/services"
	"github.com/visahq/visadesk/internal/client/session"
	"github.com/visahq/visadesk/internal/logging"

	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	log    logging.Logger

	db        *sql.DB
	apiClient *api.HTTPClient
	store     *session.Store
	apps      *services.ApplicationService

	reader *bufio.Reader
	out    io.Writer

	screen   session.Route
	returnTo session.Route
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := credentials.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	creds := credentials.NewSQLiteRepository(db)
	apiClient := api.NewHTTPClient(c.BaseURL, c.RequestTimeout, creds, log)

	a := &App{
		config:    c,
		log:       log,
		db:        db,
		apiClient: apiClient,
		apps:      services.NewApplicationService(apiClient),
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
		screen:    session.RouteHome,
	}

	a.store = session.NewStore(apiClient, creds, a, log)
	// the one place transport and session are tied together
	apiClient.SetUnauthorizedHandler(a.store.Invalidate)

	return a, nil
}

// Navigate implements session.Navigator. The command is unconditional:
// whatever the user was doing is discarded and the prompt moves to the
// target route.
func (a *App) Navigate(to session.Route) {
	a.screen = to
	fmt.Fprintf(a.out, "-> %s\n", to)
}

func (a *App) Close(ctx context.Context) error {
	if err := a.apiClient.Close(); err != nil {
		return err
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated
}

// guardTo consults the route guard for a protected screen. It reports
// whether the view may render, performing the redirect side effects here so
// the guard itself stays pure.
func (a *App) guardTo(route session.Route, allowed ...models.Role) bool {
	d := session.Evaluate(a.store.Snapshot(), route, allowed...)
	switch d.Action {
	case session.ActionPending:
		fmt.Fprintln(a.out, "Still checking your session, try again in a moment.")
		return false
	case session.ActionRedirectLogin:
		fmt.Fprintln(a.out, "Please log in first.")
		a.returnTo = d.ReturnTo
		a.Navigate(d.Redirect)
		return false
	case session.ActionRedirectHome:
		fmt.Fprintln(a.out, "Your role does not have access to this view.")
		a.Navigate(d.Redirect)
		return false
	}
	a.screen = route
	return true
}

func (a *App) getStatus() string {
	snap := a.store.Snapshot()
	if snap.Loading {
		return "(checking session)"
	}
	if snap.User != nil {
		return fmt.Sprintf("(%s %s)", snap.User.Email, snap.User.Role)
	}
	return ""
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to visadesk (type 'help' for commands)")
	a.store.Initialize(ctx)
	if snap := a.store.Snapshot(); snap.IsAuthenticated {
		fmt.Fprintf(a.out, "Welcome back, %s\n", snap.User.Username)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner, a.out)
}
