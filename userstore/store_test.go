package userstore

import (
	"testing"

	"github.com/skillswap/sessionkit/permission"
)

func TestUpsertIsIdempotent(t *testing.T) {
	s := New()

	u := User{ID: "u1", FirstName: "Ada", LastName: "Lovelace"}
	if err := s.Upsert(u); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if err := s.Upsert(u); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("Len() = %d after two identical upserts", s.Len())
	}
}

func TestUpsertReplacesFieldsNotKey(t *testing.T) {
	s := New()
	s.Upsert(User{ID: "u1", FirstName: "Ada", Bio: "old"})
	s.Upsert(User{ID: "u1", FirstName: "Ada", Bio: "new"})

	got, ok := s.Get("u1")
	if !ok || got.Bio != "new" {
		t.Fatalf("Get = %+v, %v", got, ok)
	}
}

func TestUpsertRejectsMissingID(t *testing.T) {
	s := New()
	if err := s.Upsert(User{FirstName: "Nobody"}); err != ErrMissingID {
		t.Fatalf("expected ErrMissingID, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("key-less record stored: Len() = %d", s.Len())
	}
}

func TestListOrderedByDisplayName(t *testing.T) {
	s := New()
	s.UpsertAll([]User{
		{ID: "u3", FirstName: "Charlie", LastName: "Baker"},
		{ID: "u1", FirstName: "Ada", LastName: "Lovelace"},
		{ID: "u2", FirstName: "Charlie", LastName: "Abbott"},
		{ID: "u5", FirstName: "Ada", LastName: "Lovelace"},
		{ID: "", FirstName: "Skipped"},
	})

	list := s.List()
	got := make([]string, len(list))
	for i, u := range list {
		got[i] = u.ID
	}

	// "Ada Lovelace" twice (id tie-break), then Abbott before Baker.
	want := []string{"u1", "u5", "u2", "u3"}
	if len(got) != len(want) {
		t.Fatalf("List ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List ids = %v, want %v", got, want)
		}
	}
}

func TestRemove(t *testing.T) {
	s := New()
	s.Upsert(User{ID: "u1", FirstName: "Ada"})

	if !s.Remove("u1") {
		t.Fatal("Remove missed an existing record")
	}
	if s.Remove("u1") {
		t.Fatal("Remove reported a vanished record as present")
	}
	if _, ok := s.Get("u1"); ok {
		t.Fatal("record survived Remove")
	}
}

func TestGetReturnsDetachedCopy(t *testing.T) {
	s := New()
	s.Upsert(User{ID: "u1", Roles: []permission.Role{permission.RoleUser}})

	got, _ := s.Get("u1")
	got.Roles[0] = permission.RoleSuperAdmin

	fresh, _ := s.Get("u1")
	if fresh.Roles[0] != permission.RoleUser {
		t.Fatal("caller mutation reached the stored record")
	}
}

func TestDisplayNameTrimsMissingParts(t *testing.T) {
	if got := (User{FirstName: "Ada"}).DisplayName(); got != "Ada" {
		t.Fatalf("DisplayName = %q", got)
	}
	if got := (User{LastName: "Lovelace"}).DisplayName(); got != "Lovelace" {
		t.Fatalf("DisplayName = %q", got)
	}
}
