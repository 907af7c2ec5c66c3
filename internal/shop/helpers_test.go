package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hadilasm31/lamiti/internal/storage"
)

var testEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

// newTestShop wires a shop over an in-memory store with a frozen clock and
// sequential ids, so tests see prod-1, ORD-1, TRK-1 and stable timestamps.
func newTestShop(t *testing.T) (*Shop, *FixedClock, *storage.Memory) {
	t.Helper()

	st := storage.NewMemory()
	clock := NewFixedClock(testEpoch)
	sh, err := New(st, Options{
		Clock:         clock,
		IDs:           NewSequenceSource(),
		AdminUsername: "admin",
		AdminPassword: "lamiti2024",
	})
	require.NoError(t, err)
	return sh, clock, st
}

// seedProduct adds a category (if missing) and a product with the given
// stock, returning the assigned product id.
func seedProduct(t *testing.T, sh *Shop, name, category string, price int64, stock int) string {
	t.Helper()

	if err := sh.Catalog.AddCategory(category, nil, ""); err != nil && !IsDuplicateCategory(err) {
		t.Fatalf("add category %q: %v", category, err)
	}
	p, err := sh.Catalog.AddProduct(Product{
		Name:     name,
		Category: category,
		Price:    price,
		Stock:    stock,
	})
	require.NoError(t, err)
	return p.ID
}

// checkoutCustomer is the customer used by order tests.
var checkoutCustomer = Customer{Name: "Ama Diallo", Email: "ama@example.com", Phone: "+237600000001"}
