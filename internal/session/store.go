package session

import (
	"context"
	"sync"
	"zoodash/internal/providers"
	"zoodash/internal/zooapi"
)

type State int

const (
	StateChecking State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

type StoreInterface interface {
	Establish(ctx context.Context)
	Login(ctx context.Context, username, password string) error
	Logout(ctx context.Context)
	State() State
	User() *zooapi.User
}

// Store owns the backend session state. It starts in checking; consumers
// must not assume a user until it settles. All mutation goes through the
// store's own methods.
type Store struct {
	api    zooapi.ClientInterface
	logger providers.Logger

	mu    sync.RWMutex
	state State
	user  *zooapi.User
}

func NewStore(api zooapi.ClientInterface, logger providers.Logger) StoreInterface {
	return &Store{
		api:    api,
		logger: logger,
		state:  StateChecking,
	}
}

// Establish runs the startup sequence: who-am-I, and on failure one
// refresh followed by a second who-am-I. Any further failure settles
// the store at anonymous.
func (s *Store) Establish(ctx context.Context) {
	user, err := s.api.Me(ctx)
	if err == nil {
		s.setAuthenticated(user)
		return
	}

	if rerr := s.api.Refresh(ctx); rerr != nil {
		s.logger.Debugf(providers.TypeApp, "Session refresh during establish failed: %s", rerr)
	}
	user, err = s.api.Me(ctx)
	if err != nil {
		s.logger.Infof(providers.TypeApp, "No backend session, settling anonymous")
		s.setAnonymous()
		return
	}
	s.setAuthenticated(user)
}

func (s *Store) Login(ctx context.Context, username, password string) error {
	if _, err := s.api.Login(ctx, username, password); err != nil {
		return err
	}
	// Re-fetch identity rather than trusting the login response.
	user, err := s.api.Me(ctx)
	if err != nil {
		return err
	}
	s.setAuthenticated(user)
	return nil
}

// Logout posts the logout request (failure ignored) and unconditionally
// moves to anonymous.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warnf(providers.TypeApp, "Logout request failed: %s", err)
	}
	s.setAnonymous()
}

func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) User() *zooapi.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) setAuthenticated(user *zooapi.User) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	s.logger.Infof(providers.TypeApp, "Session established for %s", user.Username)
}

func (s *Store) setAnonymous() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.user = nil
	s.mu.Unlock()
}
