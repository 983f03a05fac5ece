package credstore

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// panicStore violates the Store contract on purpose.
type panicStore struct{}

func (panicStore) TryRead(string) (string, bool) { panic("broken backend") }
func (panicStore) TryWrite(string, string) bool  { panic("broken backend") }
func (panicStore) TryDelete(string) bool         { panic("broken backend") }

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()

	if _, ok := m.TryRead(SlotPrimary); ok {
		t.Fatal("read from an empty store")
	}
	if !m.TryWrite(SlotPrimary, "tok") {
		t.Fatal("write refused")
	}
	if v, ok := m.TryRead(SlotPrimary); !ok || v != "tok" {
		t.Fatalf("TryRead = %q, %v", v, ok)
	}
	if !m.TryDelete(SlotPrimary) {
		t.Fatal("delete refused")
	}
	if _, ok := m.TryRead(SlotPrimary); ok {
		t.Fatal("value survived delete")
	}
}

func TestHasStoredTokenPrefersEitherSlot(t *testing.T) {
	m := NewMemory()
	if HasStoredToken(m) {
		t.Fatal("empty store reported a token")
	}

	m.TryWrite(SlotFallback, "session-tok")
	if !HasStoredToken(m) {
		t.Fatal("fallback slot not probed")
	}

	// An empty string in a slot is not a token.
	m.TryDelete(SlotFallback)
	m.TryWrite(SlotPrimary, "")
	if HasStoredToken(m) {
		t.Fatal("empty value reported as a token")
	}
}

func TestReadStoredTokenPrefersPrimary(t *testing.T) {
	m := NewMemory()
	m.TryWrite(SlotPrimary, "keep")
	m.TryWrite(SlotFallback, "session")

	tok, slot, ok := ReadStoredToken(m)
	if !ok || tok != "keep" || slot != SlotPrimary {
		t.Fatalf("ReadStoredToken = %q, %q, %v", tok, slot, ok)
	}

	m.TryDelete(SlotPrimary)
	tok, slot, ok = ReadStoredToken(m)
	if !ok || tok != "session" || slot != SlotFallback {
		t.Fatalf("ReadStoredToken = %q, %q, %v", tok, slot, ok)
	}
}

func TestProbesNeverPanic(t *testing.T) {
	if HasStoredToken(panicStore{}) {
		t.Fatal("panicking backend reported a token")
	}
	if _, _, ok := ReadStoredToken(panicStore{}); ok {
		t.Fatal("panicking backend produced a token")
	}
	if HasStoredToken(nil) {
		t.Fatal("nil store reported a token")
	}
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *Redis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, NewRedis(client, RedisConfig{Prefix: "test"})
}

func TestRedisRoundTrip(t *testing.T) {
	mr, store := newTestRedis(t)

	if !store.TryWrite(SlotPrimary, "tok-r") {
		t.Fatal("write failed")
	}
	if v, ok := store.TryRead(SlotPrimary); !ok || v != "tok-r" {
		t.Fatalf("TryRead = %q, %v", v, ok)
	}

	// Keys are namespaced under the prefix.
	if !mr.Exists("test:" + SlotPrimary) {
		t.Fatal("prefixed key missing in redis")
	}

	if !store.TryDelete(SlotPrimary) {
		t.Fatal("delete failed")
	}
	if _, ok := store.TryRead(SlotPrimary); ok {
		t.Fatal("value survived delete")
	}
}

func TestRedisTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedis(client, RedisConfig{Prefix: "test", TTL: time.Minute})

	store.TryWrite(SlotPrimary, "tok")
	mr.FastForward(2 * time.Minute)

	if _, ok := store.TryRead(SlotPrimary); ok {
		t.Fatal("token outlived its TTL")
	}
}

func TestRedisDegradesWhenBackendGone(t *testing.T) {
	mr, store := newTestRedis(t)
	store.TryWrite(SlotPrimary, "tok")
	mr.Close()

	if _, ok := store.TryRead(SlotPrimary); ok {
		t.Fatal("read succeeded against a closed backend")
	}
	if store.TryWrite(SlotFallback, "tok") {
		t.Fatal("write succeeded against a closed backend")
	}
	if HasStoredToken(store) {
		t.Fatal("probe reported a token from a closed backend")
	}
}

func TestRedisNilSafety(t *testing.T) {
	var store *Redis
	if _, ok := store.TryRead(SlotPrimary); ok {
		t.Fatal("nil store read")
	}
	if store.TryWrite(SlotPrimary, "x") || store.TryDelete(SlotPrimary) {
		t.Fatal("nil store accepted a mutation")
	}
}
