// Package session tracks the authenticated user on the client side.
// A Store fetches the profile once and caches the outcome, success or
// failure, until it is explicitly invalidated. A failed fetch is never
// retried on its own: an unauthenticated visitor produces exactly one
// request, not a retry storm.
package session

import (
	"context"
	"sync"

	"reconnect/client"
)

// State is a snapshot of the session at a point in time.
type State struct {
	User    *client.User
	Loading bool
	Err     error
}

// IsAuthenticated reports whether a user is present.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// IsOnboarded reports whether the present user finished onboarding.
func (s State) IsOnboarded() bool {
	return s.User != nil && s.User.IsOnboarded
}

// FetchFunc loads the current user. An error means no session.
type FetchFunc func(ctx context.Context) (*client.User, error)

// Store caches the current-user fetch and notifies subscribers on
// every state change.
type Store struct {
	fetch FetchFunc

	mu       sync.Mutex
	state    State
	resolved bool
	inflight bool
	// gen increments on every Invalidate. A fetch that started under an
	// older generation is discarded when it resolves, so a logged-out
	// session can never be resurrected by a late response.
	gen     int
	nextSub int
	subs    map[int]func(State)
}

// NewStore creates a Store around fetch. Nothing is loaded until the
// first call to Load or Refresh.
func NewStore(fetch FetchFunc) *Store {
	return &Store{
		fetch: fetch,
		subs:  make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run on every state change and returns a
// cancel function. fn is called immediately with the current state.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	current := s.state
	s.mu.Unlock()

	fn(current)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Load returns the cached state, fetching only if no outcome has been
// cached yet. Both success and failure count as outcomes.
func (s *Store) Load(ctx context.Context) State {
	s.mu.Lock()
	if s.resolved || s.inflight {
		state := s.state
		s.mu.Unlock()
		return state
	}
	s.inflight = true
	gen := s.gen
	s.state = State{Loading: true}
	s.mu.Unlock()
	s.notify()

	return s.resolve(ctx, gen)
}

// Refresh discards any cached outcome and fetches again.
func (s *Store) Refresh(ctx context.Context) State {
	s.Invalidate()
	return s.Load(ctx)
}

// Invalidate drops the cached outcome so the next Load fetches. Any
// fetch still in flight belongs to the old generation and its result
// will be discarded.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.gen++
	s.resolved = false
	s.inflight = false
	s.state = State{}
	s.mu.Unlock()
	s.notify()
}

func (s *Store) resolve(ctx context.Context, gen int) State {
	user, err := s.fetch(ctx)

	s.mu.Lock()
	if gen != s.gen {
		// Invalidated while the fetch was in flight. The outcome
		// describes a session that no longer exists.
		state := s.state
		s.mu.Unlock()
		return state
	}
	s.inflight = false
	s.resolved = true
	if err != nil {
		s.state = State{Err: err}
	} else {
		s.state = State{User: user}
	}
	state := s.state
	s.mu.Unlock()

	s.notify()
	return state
}

func (s *Store) notify() {
	s.mu.Lock()
	state := s.state
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(state)
	}
}
