// Package credentials is the durable local store for the authenticated
// session: the opaque bearer token and a serialized copy of the user record.
// The two entries are always written together and cleared together; the
// session store is the sole writer.
package credentials

import (
	"context"

	"github.com/visahq/visadesk/internal/client/models"
)

// Repository persists the token/user pair.
//
// Contract:
//   - Save: write both entries atomically.
//   - Load: return both entries; a state where only one is present reads as
//     not found (errors.Is(err, common.ErrorNotFound)).
//   - Token: cheap read of the token alone, used on every outbound request.
//     Returns "" without error when absent.
//   - Clear: remove both entries atomically. Idempotent.
type Repository interface {
	Save(ctx context.Context, token string, user *models.User) error
	Load(ctx context.Context) (string, *models.User, error)
	Token(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}
