package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestSQLite_PutGetRoundTrip(t *testing.T) {
	s := openTestSQLite(t)

	type record struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	in := []record{{Name: "Sac en Cuir Noir", Stock: 15}, {Name: "Montre de Luxe", Stock: 8}}

	if err := s.Put(KeyProducts, in); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	var out []record
	found, err := s.Get(KeyProducts, &out)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !found {
		t.Fatal("Get() did not find the key")
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestSQLite_PutOverwrites(t *testing.T) {
	s := openTestSQLite(t)

	if err := s.Put(KeyCart, []int{1, 2, 3}); err != nil {
		t.Fatalf("first Put() failed: %v", err)
	}
	if err := s.Put(KeyCart, []int{4}); err != nil {
		t.Fatalf("second Put() failed: %v", err)
	}

	var out []int
	if _, err := s.Get(KeyCart, &out); err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if len(out) != 1 || out[0] != 4 {
		t.Errorf("expected [4], got %v", out)
	}
}

func TestSQLite_GetMissingKey(t *testing.T) {
	s := openTestSQLite(t)

	var out []string
	found, err := s.Get("no-such-key", &out)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found {
		t.Error("expected found=false for missing key")
	}
}

func TestSQLite_DeleteIsIdempotent(t *testing.T) {
	s := openTestSQLite(t)

	if err := s.Put(KeyAdminSession, map[string]string{"username": "admin"}); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if err := s.Delete(KeyAdminSession); err != nil {
		t.Fatalf("first Delete() failed: %v", err)
	}
	if err := s.Delete(KeyAdminSession); err != nil {
		t.Fatalf("second Delete() failed: %v", err)
	}

	var out map[string]string
	found, err := s.Get(KeyAdminSession, &out)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if found {
		t.Error("key still present after delete")
	}
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shop.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := s1.Put(KeyCategories, []string{"femmes", "hommes"}); err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()

	var out []string
	found, err := s2.Get(KeyCategories, &out)
	if err != nil {
		t.Fatalf("Get() after reopen failed: %v", err)
	}
	if !found || len(out) != 2 {
		t.Errorf("expected persisted categories after reopen, got found=%v %v", found, out)
	}
}

func TestSQLite_Keys(t *testing.T) {
	s := openTestSQLite(t)

	for _, k := range []string{KeyOrders, KeyCart, KeyProducts} {
		if err := s.Put(k, []string{}); err != nil {
			t.Fatalf("Put(%q) failed: %v", k, err)
		}
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys() failed: %v", err)
	}
	want := []string{KeyCart, KeyOrders, KeyProducts}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d: %v", len(want), len(keys), keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func openTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "shop.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
