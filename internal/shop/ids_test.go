package shop

import (
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDSource_OrderIDFormat(t *testing.T) {
	src := UUIDSource{}
	id := src.OrderID()

	require.True(t, strings.HasPrefix(id, "ORD-"))
	parsed, err := uuid.Parse(strings.TrimPrefix(id, "ORD-"))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version(), "order ids sort by creation time")
}

func TestUUIDSource_ProductIDFormat(t *testing.T) {
	src := UUIDSource{}
	id := src.ProductID()

	require.True(t, strings.HasPrefix(id, "prod-"))
	_, err := uuid.Parse(strings.TrimPrefix(id, "prod-"))
	require.NoError(t, err)
}

func TestUUIDSource_TrackingCodeFormat(t *testing.T) {
	src := UUIDSource{}
	code := src.TrackingCode()

	assert.Regexp(t, `^TRK-[0-9A-F]{9}$`, code)
}

func TestUUIDSource_Uniqueness(t *testing.T) {
	src := UUIDSource{}
	const iterations = 1000

	seen := make(map[string]bool, iterations)
	for i := 0; i < iterations; i++ {
		id := src.OrderID()
		require.False(t, seen[id], "id %s generated twice", id)
		seen[id] = true
	}
}

func TestUUIDSource_Concurrent(t *testing.T) {
	src := UUIDSource{}
	const goroutines = 100

	ids := make(chan string, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- src.OrderID()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id generated")
		seen[id] = true
	}
	assert.Equal(t, goroutines, len(seen))
}

func TestSequenceSource_IndependentCounters(t *testing.T) {
	src := NewSequenceSource()

	assert.Equal(t, "prod-1", src.ProductID())
	assert.Equal(t, "ORD-1", src.OrderID())
	assert.Equal(t, "prod-2", src.ProductID())
	assert.Equal(t, "TRK-1", src.TrackingCode())
	assert.Equal(t, "ORD-2", src.OrderID())
}
