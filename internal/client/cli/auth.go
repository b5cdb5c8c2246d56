package cli

import (
	"context"
	"fmt"

	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates through the session
// store. On success the store has already persisted the session; the
// returned user record is used to route by role right away.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	user, err := a.store.Login(ctx, models.LoginInput{Email: email, Password: password})
	if err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.Username, user.Role)
	a.afterAuth(user)
	return nil
}

// Register prompts for the registration fields. Officer and admin accounts
// additionally require the role's secret key, forwarded to the backend
// unchecked.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	roleRaw, err := getSimpleText(a.reader, "Role (applicant/officer/admin)", a.out)
	if err != nil {
		return err
	}
	role, err := models.ParseRole(roleRaw)
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %s\n", err.Error())
		return err
	}

	in := models.RegisterInput{Username: username, Email: email, Password: password, Role: role}
	if role == models.RoleOfficer || role == models.RoleAdmin {
		in.SecretKey, err = getSimpleText(a.reader, "Secret key for "+string(role), a.out)
		if err != nil {
			return err
		}
	}

	user, err := a.store.Register(ctx, in)
	if err != nil {
		fmt.Fprintf(a.out, "Registration failed: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (%s)\n", user.Username, user.Role)
	a.afterAuth(user)
	return nil
}

// afterAuth routes the fresh session: back to where an earlier redirect came
// from when there is a pending return, otherwise to the role's landing view.
func (a *App) afterAuth(user *models.User) {
	if a.returnTo != "" {
		to := a.returnTo
		a.returnTo = ""
		a.Navigate(to)
		return
	}
	switch user.Role {
	case models.RoleOfficer, models.RoleAdmin:
		a.Navigate(session.RouteReview)
	default:
		a.Navigate(session.RouteApplications)
	}
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err.Error())
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	a.Navigate(session.RouteHome)
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if !a.guardTo(session.RouteHome) {
		return nil
	}
	snap := a.store.Snapshot()
	fmt.Fprintf(a.out, "%s <%s> role=%s\n", snap.User.Username, snap.User.Email, snap.User.Role)
	return nil
}
