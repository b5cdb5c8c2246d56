// Package apitest provides an in-process stand-in for the visadesk backend,
// used by the client test suites. It mirrors the consumed contracts only:
// auth endpoints issuing HS256 bearer tokens, the application endpoints the
// dashboards use, and the stats summary. It is a test fixture, not a server.
package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/visahq/visadesk/internal/client/models"
)

// Role secrets the fake backend accepts at registration, mirroring the real
// platform's role-specific secret keys.
const (
	OfficerSecret = "officer-key"
	AdminSecret   = "admin-key"
)

type account struct {
	user     models.User
	password string
}

// Server holds the fake backend's in-memory state. Safe for concurrent use.
type Server struct {
	secret []byte

	mu       sync.Mutex
	byEmail  map[string]*account
	byID     map[string]*account
	apps     map[string]*models.Application
	tokenTTL time.Duration
}

func New() *Server {
	return &Server{
		secret:   []byte("apitest-secret"),
		byEmail:  make(map[string]*account),
		byID:     make(map[string]*account),
		apps:     make(map[string]*models.Application),
		tokenTTL: time.Hour,
	}
}

// Seed registers an account directly, bypassing the registration endpoint.
// Returns the stored user record.
func (s *Server) Seed(username, email, password string, role models.Role) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := &account{
		user:     models.User{ID: uuid.NewString(), Username: username, Email: email, Role: role},
		password: password,
	}
	s.byEmail[email] = acc
	s.byID[acc.user.ID] = acc
	return acc.user
}

// SeedApplication inserts an application owned by the given user.
func (s *Server) SeedApplication(owner models.User, status models.ApplicationStatus) models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	app := &models.Application{
		ID:             uuid.NewString(),
		ApplicantID:    owner.ID,
		ApplicantEmail: owner.Email,
		PassportNumber: "P1234567",
		Destination:    "DE",
		VisaType:       "tourist",
		Status:         status,
		CreatedAt:      time.Now().UTC(),
	}
	s.apps[app.ID] = app
	return *app
}

// IssueToken mints a valid bearer token for the user id.
func (s *Server) IssueToken(userID string) string {
	return s.mintToken(userID, time.Now().Add(s.tokenTTL))
}

// ExpiredToken mints a token that is already past its expiry.
func (s *Server) ExpiredToken(userID string) string {
	return s.mintToken(userID, time.Now().Add(-time.Minute))
}

func (s *Server) mintToken(userID string, exp time.Time) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(err)
	}
	return token
}

// Router builds the route tree matching the consumed backend contracts.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/auth/me", s.handleMe)
		r.Get("/applications", s.handleListApplications)
		r.Post("/applications", s.handleSubmitApplication)
		r.Get("/applications/{id}", s.handleGetApplication)
		r.Put("/applications/{id}/decision", s.handleDecide)
		r.Get("/stats", s.handleStats)
	})

	return r
}

type ctxKey struct{}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Missing token")
			return
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		s.mu.Lock()
		acc, found := s.byID[claims.Subject]
		s.mu.Unlock()
		if !found {
			writeError(w, http.StatusUnauthorized, "Unknown user")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, acc.user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentUser(r *http.Request) models.User {
	return r.Context().Value(ctxKey{}).(models.User)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in models.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !in.Role.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid role")
		return
	}
	switch in.Role {
	case models.RoleOfficer:
		if in.SecretKey != OfficerSecret {
			writeError(w, http.StatusBadRequest, "Invalid secret key")
			return
		}
	case models.RoleAdmin:
		if in.SecretKey != AdminSecret {
			writeError(w, http.StatusBadRequest, "Invalid secret key")
			return
		}
	}

	s.mu.Lock()
	if _, exists := s.byEmail[in.Email]; exists {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	acc := &account{
		user: models.User{
			ID:       uuid.NewString(),
			Username: in.Username,
			Email:    in.Email,
			Role:     in.Role,
			Phone:    in.Phone,
		},
		password: in.Password,
	}
	s.byEmail[in.Email] = acc
	s.byID[acc.user.ID] = acc
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{
		"token": s.IssueToken(acc.user.ID),
		"user":  acc.user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in models.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	acc, found := s.byEmail[in.Email]
	s.mu.Unlock()
	if !found || acc.password != in.Password {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": s.IssueToken(acc.user.ID),
		"user":  acc.user,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currentUser(r))
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	s.mu.Lock()
	apps := make([]models.Application, 0, len(s.apps))
	for _, app := range s.apps {
		if u.Role == models.RoleApplicant && app.ApplicantID != u.ID {
			continue
		}
		apps = append(apps, *app)
	}
	s.mu.Unlock()

	sort.Slice(apps, func(i, j int) bool { return apps[i].CreatedAt.After(apps[j].CreatedAt) })
	writeJSON(w, http.StatusOK, apps)
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if u.Role != models.RoleApplicant {
		writeError(w, http.StatusForbidden, "Only applicants can submit applications")
		return
	}

	var in models.ApplicationInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.PassportNumber == "" || in.Destination == "" || in.VisaType == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	app := &models.Application{
		ID:             uuid.NewString(),
		ApplicantID:    u.ID,
		ApplicantEmail: u.Email,
		PassportNumber: in.PassportNumber,
		Destination:    in.Destination,
		VisaType:       in.VisaType,
		Purpose:        in.Purpose,
		Status:         models.StatusPending,
		CreatedAt:      time.Now().UTC(),
	}

	s.mu.Lock()
	s.apps[app.ID] = app
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	app, found := s.apps[id]
	s.mu.Unlock()
	if !found || (u.Role == models.RoleApplicant && app.ApplicantID != u.ID) {
		writeError(w, http.StatusNotFound, "Application not found")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if u.Role == models.RoleApplicant {
		writeError(w, http.StatusForbidden, "Not allowed")
		return
	}

	var in models.DecisionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Status != models.StatusApproved && in.Status != models.StatusRejected {
		writeError(w, http.StatusBadRequest, "Invalid decision")
		return
	}

	s.mu.Lock()
	app, found := s.apps[chi.URLParam(r, "id")]
	if found {
		now := time.Now().UTC()
		app.Status = in.Status
		app.DecisionNote = in.Note
		app.DecidedAt = &now
	}
	s.mu.Unlock()

	if !found {
		writeError(w, http.StatusNotFound, "Application not found")
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if u.Role == models.RoleApplicant {
		writeError(w, http.StatusForbidden, "Not allowed")
		return
	}

	var stats models.Stats
	s.mu.Lock()
	for _, app := range s.apps {
		stats.Total++
		switch app.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}
