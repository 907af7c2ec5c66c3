package shop

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadilasm31/lamiti/internal/storage"
)

func TestJitterStep_NeverGoesNegative(t *testing.T) {
	sh, _, _ := newTestShop(t)
	zero := seedProduct(t, sh, "Epuisé", "vetements", 10000, 0)
	low := seedProduct(t, sh, "Presque", "vetements", 10000, 1)

	j := NewJitter(sh.Catalog, time.Second, rand.New(rand.NewSource(1)))
	for i := 0; i < 200; i++ {
		_, err := j.Step()
		require.NoError(t, err)
		for _, id := range []string{zero, low} {
			p, _ := sh.Catalog.Product(id)
			assert.GreaterOrEqual(t, p.Stock, 0, "drift clamps at zero")
		}
	}
}

func TestJitterStep_MovesStockByAtMostOne(t *testing.T) {
	sh, _, _ := newTestShop(t)
	id := seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)

	j := NewJitter(sh.Catalog, time.Second, rand.New(rand.NewSource(7)))
	prev := 10
	for i := 0; i < 200; i++ {
		_, err := j.Step()
		require.NoError(t, err)
		p, _ := sh.Catalog.Product(id)
		diff := p.Stock - prev
		assert.LessOrEqual(t, diff, 1)
		assert.GreaterOrEqual(t, diff, -1)
		prev = p.Stock
	}
}

func TestJitterStep_PersistsChanges(t *testing.T) {
	sh, _, st := newTestShop(t)
	id := seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)

	j := NewJitter(sh.Catalog, time.Second, rand.New(rand.NewSource(42)))
	total := 0
	for i := 0; i < 200 && total == 0; i++ {
		n, err := j.Step()
		require.NoError(t, err)
		total += n
	}
	require.Positive(t, total, "200 rounds at 10% chance should move something")

	var persisted []Product
	found, err := st.Get(storage.KeyProducts, &persisted)
	require.NoError(t, err)
	require.True(t, found)

	p, _ := sh.Catalog.Product(id)
	require.Len(t, persisted, 1)
	assert.Equal(t, p.Stock, persisted[0].Stock, "drift persists like any other mutation")
}

func TestJitterRun_StopsOnCancel(t *testing.T) {
	sh, _, _ := newTestShop(t)
	seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)

	j := NewJitter(sh.Catalog, time.Millisecond, rand.New(rand.NewSource(3)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- j.Run(ctx) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
