package session

import (
	"context"
	"errors"
	"sync"

	"github.com/visahq/visadesk/internal/client/api"
	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/client/repositories/credentials"
	"github.com/visahq/visadesk/internal/common"
	"github.com/visahq/visadesk/internal/logging"
)

// Store is the sole writer of persisted auth state and the owner of the
// in-memory session.
//
// Contract:
//   - Initialize: one-shot startup restore; no persisted token means no
//     network call. Verification failure falls back to a logged-out state
//     rather than surfacing an error (fail closed).
//   - Login/Register: persist the pair before returning, then update memory,
//     and hand the user record back so the caller can branch on role without
//     waiting for a re-render. Failures are re-raised, never swallowed.
//   - Logout: idempotent clear of storage and memory.
//   - Invalidate: the reactive expiry path, wired to the transport's 401
//     hook; clears like Logout and redirects to the login route.
//
// Login/Register are not guarded against concurrent invocation; the view
// layer is expected to disable the triggering control while Loading is true.
type Store struct {
	client api.Client
	creds  credentials.Repository
	nav    Navigator
	log    logging.Logger

	initOnce sync.Once

	mu      sync.Mutex
	user    *models.User
	token   string
	loading bool
}

// NewStore builds a Store. The session starts empty with Loading=true; it
// stays pending until Initialize resolves.
func NewStore(client api.Client, creds credentials.Repository, nav Navigator, log logging.Logger) *Store {
	return &Store{
		client:  client,
		creds:   creds,
		nav:     nav,
		log:     log.With("component", "session"),
		loading: true,
	}
}

// Snapshot returns a copy of the current session for the view layer.
func (s *Store) Snapshot() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Session{
		Token:           s.token,
		IsAuthenticated: s.user != nil && s.token != "",
		Loading:         s.loading,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// Initialize restores the session from durable storage, verifying any
// persisted token against the backend. Safe to call more than once; only
// the first call does anything. Loading drops to false last, in every path.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() {
		defer s.setLoading(false)

		token, _, err := s.creds.Load(ctx)
		if err != nil {
			if !errors.Is(err, common.ErrorNotFound) {
				s.log.Warn(ctx, "could not read persisted session", "error", err)
			}
			return
		}

		// the persisted user record may be stale; the backend's answer wins
		verified, err := s.client.VerifyToken(ctx)
		if err != nil {
			s.log.Info(ctx, "persisted token rejected, clearing session", "error", err)
			s.clear(ctx)
			return
		}

		s.mu.Lock()
		s.token = token
		s.user = verified
		s.mu.Unlock()
		s.log.Info(ctx, "session restored", "user", verified.Email, "role", verified.Role)
	})
}

// Login authenticates with the backend and persists the issued credential
// pair before returning. On any failure the session remains logged out and
// the error is returned for the view layer to present.
func (s *Store) Login(ctx context.Context, in models.LoginInput) (*models.User, error) {
	return s.authenticate(ctx, func() (*api.AuthResponse, error) {
		return s.client.Login(ctx, in)
	})
}

// Register has the same contract and side effects as Login, against the
// registration endpoint.
func (s *Store) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	return s.authenticate(ctx, func() (*api.AuthResponse, error) {
		return s.client.Register(ctx, in)
	})
}

func (s *Store) authenticate(ctx context.Context, call func() (*api.AuthResponse, error)) (*models.User, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	resp, err := call()
	if err != nil {
		return nil, err
	}

	// persisted before the caller sees success
	if err := s.creds.Save(ctx, resp.Token, resp.User); err != nil {
		s.log.Error(ctx, "could not persist session", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.token = resp.Token
	s.user = resp.User
	s.mu.Unlock()

	s.log.Info(ctx, "authenticated", "user", resp.User.Email, "role", resp.User.Role)
	return resp.User, nil
}

// Logout clears persisted and in-memory state. Safe to call when already
// logged out.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.creds.Clear(ctx); err != nil {
		return err
	}
	s.clearMemory()
	s.log.Info(ctx, "logged out")
	return nil
}

// Invalidate is the reactive session-expiry path, invoked by the transport
// on any 401 response. It clears the session and issues a redirect to the
// login route, once per authenticated->unauthenticated transition, so
// concurrent 401s produce a single navigation.
func (s *Store) Invalidate(ctx context.Context) {
	wasAuthenticated := s.clear(ctx)
	if wasAuthenticated && s.nav != nil {
		s.nav.Navigate(RouteLogin)
	}
}

// clear wipes storage and memory, reporting whether a session was active.
func (s *Store) clear(ctx context.Context) bool {
	if err := s.creds.Clear(ctx); err != nil {
		s.log.Warn(ctx, "could not clear persisted session", "error", err)
	}
	return s.clearMemory()
}

func (s *Store) clearMemory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.user != nil && s.token != ""
	s.user = nil
	s.token = ""
	return was
}
