// Package services holds the view-state controllers sitting between the API
// client and the CLI: login/logout orchestration, the upload queue, the
// dashboard aggregate and the admin user cache. Controllers own state and
// policy; all wire translation stays in the api package.
package services

import (
	"context"
	"fmt"

	"github.com/smartcampus/assistant-cli/internal/client/api"
	"github.com/smartcampus/assistant-cli/internal/client/models"
	"github.com/smartcampus/assistant-cli/internal/logging"
)

// sessionStore is the slice of the session store the auth flow needs.
// Satisfied by *session.Store.
type sessionStore interface {
	Set(ctx context.Context, token string, profile models.Profile) error
	Clear(ctx context.Context) error
	Session() models.Session
}

// AuthService drives the login/logout lifecycle against both the backend and
// the local session store.
type AuthService interface {
	// Login authenticates (registering on first contact when the deployment
	// allows it) and persists the resulting session. The password slice is
	// not retained; the caller may wipe it once Login returns.
	Login(ctx context.Context, university, rollNo, fullName string, password []byte) (models.Session, error)

	// Logout ends the server-side session best-effort and always clears the
	// local one. A network failure during the server call is not an error.
	Logout(ctx context.Context) error

	// DropSession clears the local session without contacting the server,
	// used when a request came back unauthenticated.
	DropSession(ctx context.Context) error

	// Verify checks whether a roll number is known to the backend without
	// authenticating. The returned string is the server's status message.
	Verify(ctx context.Context, university, rollNo string) (bool, string, error)

	// Ping probes backend reachability for the online-status watcher.
	Ping(ctx context.Context) error
}

type authService struct {
	client api.Client
	store  sessionStore
	log    logging.Logger
}

func NewAuthService(client api.Client, store sessionStore, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{client: client, store: store, log: log}
}

func (s *authService) Login(ctx context.Context, university, rollNo, fullName string, password []byte) (models.Session, error) {
	token, profile, err := s.client.Login(ctx, api.LoginRequest{
		University: university,
		RollNo:     rollNo,
		FullName:   fullName,
		Password:   string(password),
	})
	if err != nil {
		return models.Session{}, err
	}
	if err := s.store.Set(ctx, token, profile); err != nil {
		return models.Session{}, fmt.Errorf("persisting session: %w", err)
	}
	s.log.Info(ctx, "logged in", "university", university, "roll_no", rollNo, "role", profile.Role())
	return s.store.Session(), nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server logout failed, clearing local session anyway", "err", err)
	}
	return s.store.Clear(ctx)
}

func (s *authService) DropSession(ctx context.Context) error {
	s.log.Info(ctx, "session rejected by the backend, logging out locally")
	return s.store.Clear(ctx)
}

func (s *authService) Verify(ctx context.Context, university, rollNo string) (bool, string, error) {
	return s.client.Verify(ctx, university, rollNo)
}

func (s *authService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
