package cli

import (
	"context"
	"fmt"

	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/client/services"
	"github.com/visahq/visadesk/internal/client/session"
)

// List shows the applications visible to the current user, optionally
// narrowed by status or a free-text query. Any authenticated role.
func (a *App) List(ctx context.Context) error {
	if !a.guardTo(session.RouteApplications) {
		return nil
	}

	filter, err := getSimpleText(a.reader, "Status filter (pending/approved/rejected, empty for all)", a.out)
	if err != nil {
		return err
	}
	query, err := getSimpleText(a.reader, "Search (destination/passport/email, empty for none)", a.out)
	if err != nil {
		return err
	}

	apps, err := a.apps.List(ctx, services.ListOptions{
		Status: models.ApplicationStatus(filter),
		Query:  query,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Could not list applications: %s\n", err.Error())
		return err
	}

	if len(apps) == 0 {
		fmt.Fprintln(a.out, "No applications.")
		return nil
	}
	for _, app := range apps {
		fmt.Fprintf(a.out, "%s  %-8s  %-3s %-8s  %s\n",
			app.ID, app.Status, app.Destination, app.VisaType, app.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	if !a.guardTo(session.RouteApplications) {
		return nil
	}

	id, err := getSimpleText(a.reader, "Application id", a.out)
	if err != nil {
		return err
	}

	app, err := a.apps.Get(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Could not fetch application: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "id:          %s\n", app.ID)
	fmt.Fprintf(a.out, "applicant:   %s\n", app.ApplicantEmail)
	fmt.Fprintf(a.out, "passport:    %s\n", app.PassportNumber)
	fmt.Fprintf(a.out, "destination: %s\n", app.Destination)
	fmt.Fprintf(a.out, "visa type:   %s\n", app.VisaType)
	fmt.Fprintf(a.out, "status:      %s\n", app.Status)
	if app.DecisionNote != "" {
		fmt.Fprintf(a.out, "note:        %s\n", app.DecisionNote)
	}
	return nil
}

// Submit files a new application. Applicants only.
func (a *App) Submit(ctx context.Context) error {
	if !a.guardTo(session.RouteSubmit, models.RoleApplicant) {
		return nil
	}

	passport, err := getSimpleText(a.reader, "Passport number", a.out)
	if err != nil {
		return err
	}
	destination, err := getSimpleText(a.reader, "Destination country", a.out)
	if err != nil {
		return err
	}
	visaType, err := getSimpleText(a.reader, "Visa type (tourist/student/work)", a.out)
	if err != nil {
		return err
	}
	purpose, err := getSimpleText(a.reader, "Purpose of travel", a.out)
	if err != nil {
		return err
	}

	app, err := a.apps.Submit(ctx, models.ApplicationInput{
		PassportNumber: passport,
		Destination:    destination,
		VisaType:       visaType,
		Purpose:        purpose,
	})
	if err != nil {
		fmt.Fprintf(a.out, "Submission failed: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Submitted application %s (status %s)\n", app.ID, app.Status)
	return nil
}

// Decide records an approval or rejection. Officers and admins only.
func (a *App) Decide(ctx context.Context) error {
	if !a.guardTo(session.RouteReview, models.RoleOfficer, models.RoleAdmin) {
		return nil
	}

	id, err := getSimpleText(a.reader, "Application id", a.out)
	if err != nil {
		return err
	}
	verdict, err := getSimpleText(a.reader, "Decision (approved/rejected)", a.out)
	if err != nil {
		return err
	}
	note, err := getSimpleText(a.reader, "Note (optional)", a.out)
	if err != nil {
		return err
	}

	app, err := a.apps.Decide(ctx, id, models.ApplicationStatus(verdict), note)
	if err != nil {
		fmt.Fprintf(a.out, "Decision failed: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Application %s is now %s\n", app.ID, app.Status)
	return nil
}

// Stats prints the platform totals. Officers and admins only.
func (a *App) Stats(ctx context.Context) error {
	if !a.guardTo(session.RouteStats, models.RoleOfficer, models.RoleAdmin) {
		return nil
	}

	stats, err := a.apps.Stats(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Could not fetch stats: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "total: %d  pending: %d  approved: %d  rejected: %d\n",
		stats.Total, stats.Pending, stats.Approved, stats.Rejected)
	return nil
}
