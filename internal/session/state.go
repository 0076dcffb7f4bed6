package session

import (
	"context"
	"errors"
	"sync"

	"github.com/openclassroom/client/internal/api"
	"github.com/openclassroom/client/internal/events"
	"github.com/openclassroom/client/internal/tokenstore"
	"github.com/openclassroom/client/types"
)

// Fallback messages recorded when the server provides none.
const (
	msgLoginFailed    = "Login failed"
	msgRegisterFailed = "Registration failed"
	msgFetchFailed    = "Failed to fetch user"
	msgSessionExpired = "session expired"
)

// Snapshot is an immutable copy of the session state at one instant.
type Snapshot struct {
	// User is the authenticated user, or nil when anonymous.
	User *types.User
	// Loading is true while a transition's network call is in flight.
	Loading bool
	// Error is the last transition failure message, or "".
	Error string
}

// Authenticated reports whether a user is present.
func (s Snapshot) Authenticated() bool {
	return s.User != nil
}

// State is the process-wide session record. It starts anonymous and is
// mutated only through the transition methods below; a forced sign-out
// is applied when the transport publishes a session-expired event.
type State struct {
	mu      sync.Mutex
	user    *types.User
	loading bool
	err     string

	svc    *Service
	tokens tokenstore.Store
	bus    *events.Bus
}

// NewState constructs the session state and subscribes it to forced
// sign-out events on bus.
func NewState(svc *Service, tokens tokenstore.Store, bus *events.Bus) *State {
	s := &State{svc: svc, tokens: tokens, bus: bus}
	bus.Subscribe(func(ev events.Event) {
		if ev.Kind == events.SessionExpired {
			s.forcedSignOut()
		}
	})
	return s
}

// Snapshot returns a copy of the current state. The copy does not alias
// the live record, so two snapshots taken around a mutation differ only
// by that mutation.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Loading: s.loading, Error: s.err}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Login authenticates with credentials and then fetches the profile.
// On any failure the state returns to anonymous with the failure
// message recorded.
func (s *State) Login(ctx context.Context, creds types.Credentials) error {
	s.begin()
	defer s.settle()

	if err := s.svc.Login(ctx, creds); err != nil {
		s.fail(messageOr(err, msgLoginFailed))
		return err
	}
	user, err := s.svc.CurrentUser(ctx)
	if err != nil {
		s.fail(messageOr(err, msgLoginFailed))
		return err
	}

	s.setUser(user)
	s.bus.Publish(events.Event{Kind: events.SignedIn})
	return nil
}

// Register creates an account. It never authenticates the caller: the
// state stays anonymous whether or not the call succeeds.
func (s *State) Register(ctx context.Context, reg types.Registration) (types.User, error) {
	s.begin()
	defer s.settle()

	user, err := s.svc.Register(ctx, reg)
	if err != nil {
		s.fail(messageOr(err, msgRegisterFailed))
		return types.User{}, err
	}
	return user, nil
}

// FetchCurrentUser hydrates the session from a persisted token without
// re-entering credentials.
func (s *State) FetchCurrentUser(ctx context.Context) error {
	s.begin()
	defer s.settle()

	user, err := s.svc.CurrentUser(ctx)
	if err != nil {
		s.fail(messageOr(err, msgFetchFailed))
		return err
	}
	s.setUser(user)
	return nil
}

// Hydrate runs FetchCurrentUser when a token is stored and no user is
// known yet. With no stored token it does nothing.
func (s *State) Hydrate(ctx context.Context) error {
	if s.tokens.Access() == "" {
		return nil
	}
	if s.Snapshot().Authenticated() {
		return nil
	}
	return s.FetchCurrentUser(ctx)
}

// Logout clears the token store and resets the state to its initial
// anonymous value. Calling it while already anonymous is a no-op.
func (s *State) Logout() error {
	if err := s.tokens.Clear(); err != nil {
		return err
	}

	s.mu.Lock()
	wasAuthenticated := s.user != nil
	s.user = nil
	s.err = ""
	s.mu.Unlock()

	if wasAuthenticated {
		s.bus.Publish(events.Event{Kind: events.SignedOut})
	}
	return nil
}

// forcedSignOut tears the session down after the server rejected a
// previously accepted credential. The transport has already cleared
// the token store by the time this runs.
func (s *State) forcedSignOut() {
	s.mu.Lock()
	s.user = nil
	s.err = msgSessionExpired
	s.mu.Unlock()
}

func (s *State) begin() {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()
}

// settle resolves loading exactly once per transition.
func (s *State) settle() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *State) setUser(user types.User) {
	s.mu.Lock()
	s.user = &user
	s.err = ""
	s.mu.Unlock()
}

func (s *State) fail(message string) {
	s.mu.Lock()
	s.err = message
	s.mu.Unlock()
}

// messageOr extracts the server's message from a typed API error, or
// returns the fallback for transport-level failures.
func messageOr(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
