// Package services contains application services for the visadesk client:
// the operations the view layer invokes against the backend, plus the
// client-side list shaping (filter, search, sort) the dashboards use.
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/visahq/visadesk/internal/client/api"
	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/common"
)

// ListOptions shape the fetched application list in memory. Zero value
// means no filtering; results are always newest first.
type ListOptions struct {
	Status models.ApplicationStatus
	Query  string
}

// ApplicationService exposes the visa-application operations to the view
// layer. Authorization is the backend's call; the service only does cheap
// client-side validation to save a round trip on obviously bad input.
type ApplicationService struct {
	client api.Client
}

func NewApplicationService(client api.Client) *ApplicationService {
	return &ApplicationService{client: client}
}

// List fetches the applications visible to the current user and applies the
// requested shaping locally.
func (s *ApplicationService) List(ctx context.Context, opts ListOptions) ([]models.Application, error) {
	apps, err := s.client.ListApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing applications: %w", err)
	}
	return Shape(apps, opts), nil
}

func (s *ApplicationService) Get(ctx context.Context, id string) (*models.Application, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: empty application id", common.ErrorValidation)
	}
	return s.client.GetApplication(ctx, id)
}

func (s *ApplicationService) Submit(ctx context.Context, in models.ApplicationInput) (*models.Application, error) {
	if in.PassportNumber == "" || in.Destination == "" || in.VisaType == "" {
		return nil, fmt.Errorf("%w: passport number, destination and visa type are required", common.ErrorValidation)
	}
	return s.client.SubmitApplication(ctx, in)
}

func (s *ApplicationService) Decide(ctx context.Context, id string, status models.ApplicationStatus, note string) (*models.Application, error) {
	if status != models.StatusApproved && status != models.StatusRejected {
		return nil, fmt.Errorf("%w: decision must be approved or rejected", common.ErrorValidation)
	}
	return s.client.DecideApplication(ctx, id, models.DecisionInput{Status: status, Note: note})
}

func (s *ApplicationService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.client.Stats(ctx)
}

// Shape filters and sorts a fetched list in memory: status filter, free-text
// match on destination, passport number and applicant email, newest first.
func Shape(apps []models.Application, opts ListOptions) []models.Application {
	query := strings.ToLower(strings.TrimSpace(opts.Query))

	out := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if opts.Status != "" && app.Status != opts.Status {
			continue
		}
		if query != "" && !matches(app, query) {
			continue
		}
		out = append(out, app)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matches(app models.Application, query string) bool {
	for _, field := range []string{app.Destination, app.PassportNumber, app.ApplicantEmail} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
