// Package userstore is the normalized cache of user records shared by the
// session core and any independently fetched user lists (search results,
// member directories). One store per application instance avoids divergent
// copies of the same user.
package userstore

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/skillswap/sessionkit/permission"
)

// User is a single identity record. ID is the immutable store key; an upsert
// for an existing ID replaces fields, never the key.
type User struct {
	ID        string
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Bio       string
	AvatarURL string
	TimeZone  string
	Roles     []permission.Role
}

// DisplayName is the sort key of the store: "first last".
func (u User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ErrMissingID rejects records without a key.
var ErrMissingID = errors.New("user record has no id")

// Store is a keyed collection of user records. Safe for concurrent readers;
// the session core is the single writer.
type Store struct {
	mu   sync.RWMutex
	byID map[string]User
}

// New creates an empty store.
func New() *Store {
	return &Store{byID: make(map[string]User)}
}

// Upsert inserts the record or replaces the fields of an existing one.
// Two identical upserts leave exactly one entry.
func (s *Store) Upsert(u User) error {
	if u.ID == "" {
		return ErrMissingID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[u.ID] = cloneUser(u)
	return nil
}

// UpsertAll inserts or replaces every record, skipping key-less ones.
func (s *Store) UpsertAll(users []User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		if u.ID == "" {
			continue
		}
		s.byID[u.ID] = cloneUser(u)
	}
}

// Remove deletes the record and reports whether it existed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.byID[id]
	delete(s.byID, id)
	return ok
}

// Get returns a copy of the record for the id.
func (s *Store) Get(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return User{}, false
	}
	return cloneUser(u), true
}

// List returns every record ordered by display name, with the id as
// tie-breaker for a stable order. The comparison is byte-wise over the UTF-8
// encoding, not locale collation: accented and non-ASCII names sort by code
// point, which is stable across machines but may differ from what a
// locale-aware sort would produce.
func (s *Store) List() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.byID))
	for _, u := range s.byID {
		out = append(out, cloneUser(u))
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].DisplayName(), out[j].DisplayName()
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// cloneUser keeps callers from aliasing the stored Roles slice.
func cloneUser(u User) User {
	if len(u.Roles) > 0 {
		roles := make([]permission.Role, len(u.Roles))
		copy(roles, u.Roles)
		u.Roles = roles
	}
	return u
}
