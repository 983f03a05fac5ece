// Package credstore is the credential persistence capability consumed by the
// session core. A Store holds opaque token strings in named slots; every
// operation is best-effort and guaranteed non-throwing, so a broken backend
// degrades to "no token" instead of failing the session bootstrap.
package credstore

// SlotPrimary and SlotFallback are the two token slots the session core
// reads at startup. Primary survives across application restarts
// (remember-me); fallback is scoped to the current browsing session.
const (
	SlotPrimary  = "skillswap.token"
	SlotFallback = "skillswap.token.session"
)

// Store is implemented by one adapter per storage backend. Implementations
// must not panic and must not return errors: a failed read is an absent
// value, a failed write or delete reports false.
type Store interface {
	TryRead(key string) (string, bool)
	TryWrite(key, value string) bool
	TryDelete(key string) bool
}

// HasStoredToken reports whether either token slot holds a non-empty value.
// It never panics, even against an adapter that violates the non-throwing
// contract. Presence only estimates prior-session likelihood; callers must
// confirm through silent reauthentication before trusting it.
func HasStoredToken(s Store) (present bool) {
	if s == nil {
		return false
	}

	defer func() {
		if recover() != nil {
			present = false
		}
	}()

	if v, ok := s.TryRead(SlotPrimary); ok && v != "" {
		return true
	}
	if v, ok := s.TryRead(SlotFallback); ok && v != "" {
		return true
	}
	return false
}

// ReadStoredToken returns the first non-empty token, preferring the primary
// slot, with the same never-panics guarantee as HasStoredToken.
func ReadStoredToken(s Store) (token string, slot string, ok bool) {
	if s == nil {
		return "", "", false
	}

	defer func() {
		if recover() != nil {
			token, slot, ok = "", "", false
		}
	}()

	if v, readOK := s.TryRead(SlotPrimary); readOK && v != "" {
		return v, SlotPrimary, true
	}
	if v, readOK := s.TryRead(SlotFallback); readOK && v != "" {
		return v, SlotFallback, true
	}
	return "", "", false
}
