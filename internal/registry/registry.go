package registry

import (
	"errors"
	"sort"
	"sync"
)

var (
	ErrUnknownTicker = errors.New("unknown ticker")
	ErrUnknownUser   = errors.New("unknown user")
)

// Action reports which way a toggle flipped a subscription.
type Action string

const (
	ActionAdded   Action = "added"
	ActionRemoved Action = "removed"
)

type userSubs struct {
	mu  sync.Mutex
	set map[string]struct{}
}

// Registry is the process-lifetime source of truth for which tickers each
// user wants. The ticker universe is fixed at construction. Toggles for the
// same user serialize on that user's entry; different users never contend.
type Registry struct {
	universe map[string]struct{}
	ordered  []string

	mu    sync.RWMutex
	users map[string]*userSubs
}

func New(tickers []string) *Registry {
	universe := make(map[string]struct{}, len(tickers))
	ordered := make([]string, 0, len(tickers))
	for _, t := range tickers {
		if _, ok := universe[t]; ok {
			continue
		}
		universe[t] = struct{}{}
		ordered = append(ordered, t)
	}
	return &Registry{
		universe: universe,
		ordered:  ordered,
		users:    make(map[string]*userSubs),
	}
}

func (r *Registry) ValidTicker(ticker string) bool {
	_, ok := r.universe[ticker]
	return ok
}

// Tickers returns the configured universe in configuration order.
func (r *Registry) Tickers() []string {
	out := make([]string, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// GetOrCreate returns the user's current subscription set, allocating an
// empty one the first time the user is seen.
func (r *Registry) GetOrCreate(userID string) []string {
	r.mu.Lock()
	entry, ok := r.users[userID]
	if !ok {
		entry = &userSubs{set: make(map[string]struct{})}
		r.users[userID] = entry
	}
	r.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return sortedKeys(entry.set)
}

// Toggle flips the user's subscription to ticker and reports the action
// taken along with the resulting set. Rejections happen before any mutation.
func (r *Registry) Toggle(userID, ticker string) (Action, []string, error) {
	if !r.ValidTicker(ticker) {
		return "", nil, ErrUnknownTicker
	}

	r.mu.RLock()
	entry, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return "", nil, ErrUnknownUser
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	action := ActionAdded
	if _, subscribed := entry.set[ticker]; subscribed {
		delete(entry.set, ticker)
		action = ActionRemoved
	} else {
		entry.set[ticker] = struct{}{}
	}
	return action, sortedKeys(entry.set), nil
}

// Snapshot returns the user's current set. An unknown user yields an empty
// set, not an error, so a connection can identify before its first login
// round-trip has registered anything.
func (r *Registry) Snapshot(userID string) []string {
	r.mu.RLock()
	entry, ok := r.users[userID]
	r.mu.RUnlock()
	if !ok {
		return []string{}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return sortedKeys(entry.set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
