package storage

import (
	"testing"
)

// backendsUnderTest returns one instance of every Store backend, so the
// shared contract tests run against each of them.
func backendsUnderTest(t *testing.T) map[string]Store {
	t.Helper()

	sqlite, err := Open(t.TempDir() + "/shop.db")
	if err != nil {
		t.Fatalf("sqlite Open() failed: %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	peb, err := OpenPebble(t.TempDir())
	if err != nil {
		t.Fatalf("OpenPebble() failed: %v", err)
	}
	t.Cleanup(func() { peb.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"pebble": peb,
		"memory": NewMemory(),
	}
}

func TestStore_ContractRoundTrip(t *testing.T) {
	for name, s := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			in := map[string][]string{
				"femmes": {"robes", "vestes"},
				"hommes": {"chemises"},
			}
			if err := s.Put(KeySubcategories, in); err != nil {
				t.Fatalf("Put() failed: %v", err)
			}

			var out map[string][]string
			found, err := s.Get(KeySubcategories, &out)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if !found {
				t.Fatal("Get() did not find the key")
			}
			if len(out) != 2 || len(out["femmes"]) != 2 || out["hommes"][0] != "chemises" {
				t.Errorf("round trip mismatch: %v", out)
			}
		})
	}
}

func TestStore_ContractDeleteThenGet(t *testing.T) {
	for name, s := range backendsUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Put(KeyCategoryImages, map[string]string{"femmes": "img.jpg"}); err != nil {
				t.Fatalf("Put() failed: %v", err)
			}
			if err := s.Delete(KeyCategoryImages); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}

			var out map[string]string
			found, err := s.Get(KeyCategoryImages, &out)
			if err != nil {
				t.Fatalf("Get() failed: %v", err)
			}
			if found {
				t.Error("key still present after delete")
			}
		})
	}
}
