// Package reconcile derives the state of the recommended-users view
// from server data plus a local overlay of sends awaiting confirmation.
// The overlay is explicit: it is merged into every lookup and cleared
// when the authoritative list is refetched, never mutated behind the
// server data's back.
package reconcile

import (
	"strings"
	"sync"

	"reconnect/client"
)

// OutgoingRecipients derives the set of user ids with a pending
// outgoing request. The input is never mutated, so recomputing from
// the same list always yields the same set.
func OutgoingRecipients(outgoing []client.FriendRequest) map[uint]struct{} {
	set := make(map[uint]struct{}, len(outgoing))
	for _, req := range outgoing {
		set[req.RecipientID] = struct{}{}
	}
	return set
}

// FilterByName keeps users whose name contains term, case-insensitive.
// An empty term keeps everyone.
func FilterByName(users []client.User, term string) []client.User {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]client.User(nil), users...)
	}
	filtered := make([]client.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.FullName), term) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// ExcludeFriends drops users already in the friend list.
func ExcludeFriends(users []client.User, friends []client.User) []client.User {
	friendIDs := make(map[uint]struct{}, len(friends))
	for _, f := range friends {
		friendIDs[f.ID] = struct{}{}
	}
	filtered := make([]client.User, 0, len(users))
	for _, u := range users {
		if _, ok := friendIDs[u.ID]; !ok {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

// Tracker overlays locally initiated sends on top of the server's
// outgoing-request list. It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	confirmed map[uint]struct{}
	inflight  map[uint]struct{}
	local     map[uint]struct{}
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		confirmed: make(map[uint]struct{}),
		inflight:  make(map[uint]struct{}),
		local:     make(map[uint]struct{}),
	}
}

// SetOutgoing replaces the server-confirmed set and clears the local
// overlay, which the fresh list now subsumes.
func (t *Tracker) SetOutgoing(outgoing []client.FriendRequest) {
	set := OutgoingRecipients(outgoing)
	t.mu.Lock()
	t.confirmed = set
	t.local = make(map[uint]struct{})
	t.mu.Unlock()
}

// Pending reports whether a request to userID exists or is being sent.
// Views use this to show a disabled "sent" state.
func (t *Tracker) Pending(userID uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pendingLocked(userID)
}

func (t *Tracker) pendingLocked(userID uint) bool {
	if _, ok := t.confirmed[userID]; ok {
		return true
	}
	if _, ok := t.local[userID]; ok {
		return true
	}
	_, ok := t.inflight[userID]
	return ok
}

// Begin marks a send to userID as in flight. It returns false when a
// request to that user is already pending or in flight, so at most
// one network call per target can be started.
func (t *Tracker) Begin(userID uint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pendingLocked(userID) {
		return false
	}
	t.inflight[userID] = struct{}{}
	return true
}

// Finish records the outcome of a send started with Begin. A
// successful send joins the local overlay until the next refetch; a
// failed one frees the target for another attempt.
func (t *Tracker) Finish(userID uint, sent bool) {
	t.mu.Lock()
	delete(t.inflight, userID)
	if sent {
		t.local[userID] = struct{}{}
	}
	t.mu.Unlock()
}
