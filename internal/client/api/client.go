// Package api is the single point of egress to the visadesk backend.
// It owns outbound credential attachment, response error mapping, and the
// central reaction to session expiry (401) on any call.
package api

import (
	"context"

	"github.com/visahq/visadesk/internal/client/models"
)

// AuthResponse is what the backend returns from login and registration.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Client defines the backend operations the rest of the client consumes.
type Client interface {
	Close() error
	Login(ctx context.Context, in models.LoginInput) (*AuthResponse, error)
	Register(ctx context.Context, in models.RegisterInput) (*AuthResponse, error)
	VerifyToken(ctx context.Context) (*models.User, error)
	ListApplications(ctx context.Context) ([]models.Application, error)
	GetApplication(ctx context.Context, id string) (*models.Application, error)
	SubmitApplication(ctx context.Context, in models.ApplicationInput) (*models.Application, error)
	DecideApplication(ctx context.Context, id string, in models.DecisionInput) (*models.Application, error)
	Stats(ctx context.Context) (*models.Stats, error)
	Ping(ctx context.Context) error
}

// TokenReader is the narrow read-only view of the credential store the
// transport needs to attach the bearer token to outbound requests.
type TokenReader interface {
	Token(ctx context.Context) (string, error)
}
