package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/visahq/visadesk/internal/client/api"
	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/common"
)

// fakeClient implements api.Client for service unit tests.
type fakeClient struct {
	ListRet []models.Application
	ListErr error

	LastDecideID string
	LastDecide   models.DecisionInput
	DecideRet    *models.Application

	LastSubmit models.ApplicationInput
	SubmitRet  *models.Application
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, in models.LoginInput) (*api.AuthResponse, error) {
	return nil, nil
}

func (f *fakeClient) Register(ctx context.Context, in models.RegisterInput) (*api.AuthResponse, error) {
	return nil, nil
}

func (f *fakeClient) VerifyToken(ctx context.Context) (*models.User, error) { return nil, nil }

func (f *fakeClient) ListApplications(ctx context.Context) ([]models.Application, error) {
	return f.ListRet, f.ListErr
}

func (f *fakeClient) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	return nil, nil
}

func (f *fakeClient) SubmitApplication(ctx context.Context, in models.ApplicationInput) (*models.Application, error) {
	f.LastSubmit = in
	return f.SubmitRet, nil
}

func (f *fakeClient) DecideApplication(ctx context.Context, id string, in models.DecisionInput) (*models.Application, error) {
	f.LastDecideID = id
	f.LastDecide = in
	return f.DecideRet, nil
}

func (f *fakeClient) Stats(ctx context.Context) (*models.Stats, error) { return nil, nil }

func (f *fakeClient) Ping(ctx context.Context) error { return nil }

func app(id, destination string, status models.ApplicationStatus, age time.Duration) models.Application {
	return models.Application{
		ID:             id,
		PassportNumber: "P-" + id,
		Destination:    destination,
		VisaType:       "tourist",
		Status:         status,
		CreatedAt:      time.Now().Add(-age),
	}
}

func TestList_NewestFirst(t *testing.T) {
	fc := &fakeClient{ListRet: []models.Application{
		app("old", "DE", models.StatusPending, 48*time.Hour),
		app("new", "DE", models.StatusPending, time.Hour),
		app("mid", "DE", models.StatusPending, 24*time.Hour),
	}}

	got, err := NewApplicationService(fc).List(context.Background(), ListOptions{})
	require.NoError(t, err)

	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	require.Equal(t, []string{"new", "mid", "old"}, ids)
}

func TestList_StatusFilter(t *testing.T) {
	fc := &fakeClient{ListRet: []models.Application{
		app("a", "DE", models.StatusPending, time.Hour),
		app("b", "DE", models.StatusApproved, time.Hour),
		app("c", "DE", models.StatusRejected, time.Hour),
	}}

	got, err := NewApplicationService(fc).List(context.Background(), ListOptions{Status: models.StatusApproved})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0].ID)
}

func TestShape_QueryMatchesSeveralFields(t *testing.T) {
	apps := []models.Application{
		app("a", "Germany", models.StatusPending, time.Hour),
		app("b", "Japan", models.StatusPending, time.Hour),
	}
	apps[1].ApplicantEmail = "ana@b.com"

	require.Len(t, Shape(apps, ListOptions{Query: "germ"}), 1)
	require.Len(t, Shape(apps, ListOptions{Query: "P-b"}), 1)
	require.Len(t, Shape(apps, ListOptions{Query: "ana@"}), 1)
	require.Len(t, Shape(apps, ListOptions{Query: "zzz"}), 0)
}

func TestSubmit_ValidatesRequiredFields(t *testing.T) {
	svc := NewApplicationService(&fakeClient{})

	_, err := svc.Submit(context.Background(), models.ApplicationInput{Destination: "DE"})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestSubmit_ForwardsInput(t *testing.T) {
	fc := &fakeClient{SubmitRet: &models.Application{ID: "x"}}
	svc := NewApplicationService(fc)

	in := models.ApplicationInput{PassportNumber: "P1", Destination: "DE", VisaType: "work"}
	got, err := svc.Submit(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "x", got.ID)
	require.Equal(t, in, fc.LastSubmit)
}

func TestDecide_RejectsUnknownStatus(t *testing.T) {
	svc := NewApplicationService(&fakeClient{})

	_, err := svc.Decide(context.Background(), "id", models.StatusPending, "")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestDecide_ForwardsDecision(t *testing.T) {
	fc := &fakeClient{DecideRet: &models.Application{ID: "id", Status: models.StatusRejected}}
	svc := NewApplicationService(fc)

	got, err := svc.Decide(context.Background(), "id", models.StatusRejected, "missing passport scan")
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, got.Status)
	require.Equal(t, "id", fc.LastDecideID)
	require.Equal(t, models.DecisionInput{Status: models.StatusRejected, Note: "missing passport scan"}, fc.LastDecide)
}

func TestGet_EmptyID(t *testing.T) {
	_, err := NewApplicationService(&fakeClient{}).Get(context.Background(), "  ")
	require.ErrorIs(t, err, common.ErrorValidation)
}
