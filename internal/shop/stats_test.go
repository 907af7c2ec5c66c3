package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_HeadlineNumbers(t *testing.T) {
	sh, _, _ := newTestShop(t)
	a := seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)
	seedProduct(t, sh, "Sandales", "chaussures", 12000, 2) // below threshold 5

	require.NoError(t, sh.Cart.Add(a, 2, "", ""))
	first, err := sh.Orders.Create(checkoutCustomer, "Douala", PaymentCard)
	require.NoError(t, err)

	require.NoError(t, sh.Cart.Add(a, 1, "", ""))
	_, err = sh.Orders.Create(checkoutCustomer, "Douala", PaymentMobile)
	require.NoError(t, err)

	require.NoError(t, sh.Orders.UpdateStatus(first.ID, StatusConfirmed))
	require.NoError(t, sh.Orders.UpdateStatus(first.ID, StatusShipped))
	require.NoError(t, sh.Orders.UpdateStatus(first.ID, StatusDelivered))

	stats := sh.Dashboard()
	assert.Equal(t, 2, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, int64(75000), stats.TotalRevenue, "revenue counts all orders regardless of status")
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.DeliveredOrders)
	assert.Equal(t, 1, stats.LowStockItems)
}

func TestCategoryStats_CountsPerCategory(t *testing.T) {
	sh, _, _ := newTestShop(t)
	seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)
	seedProduct(t, sh, "Chemise", "vetements", 15000, 5)
	seedProduct(t, sh, "Sandales", "chaussures", 12000, 3)
	require.NoError(t, sh.Catalog.AddCategory("accessoires", nil, ""))

	stats := sh.CategoryStats()
	assert.Equal(t, map[string]int{
		"vetements":   2,
		"chaussures":  1,
		"accessoires": 0,
	}, stats, "empty categories appear with a zero count")
}

func TestLowStockProducts_SkipsInactive(t *testing.T) {
	sh, _, _ := newTestShop(t)
	low := seedProduct(t, sh, "Sandales", "chaussures", 12000, 2)
	hidden := seedProduct(t, sh, "Retiré", "chaussures", 9000, 1)
	seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)
	require.NoError(t, sh.Catalog.ToggleProduct(hidden))

	got := sh.LowStockProducts(0) // 0 falls back to the configured threshold
	require.Len(t, got, 1)
	assert.Equal(t, low, got[0].ID)

	got = sh.LowStockProducts(10)
	assert.Len(t, got, 2, "an explicit threshold widens the net")
}

func TestCustomerStats_Aggregates(t *testing.T) {
	sh, clock, _ := newTestShop(t)
	id := seedProduct(t, sh, "Robe Wax", "vetements", 25000, 10)

	require.NoError(t, sh.Cart.Add(id, 1, "", ""))
	_, err := sh.Orders.Create(checkoutCustomer, "Douala", PaymentCard)
	require.NoError(t, err)

	clock.Advance(48 * time.Hour)
	require.NoError(t, sh.Cart.Add(id, 3, "", ""))
	last, err := sh.Orders.Create(checkoutCustomer, "Douala", PaymentCard)
	require.NoError(t, err)

	stats := sh.CustomerStats("ama@example.com")
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, int64(100000), stats.TotalSpent)
	assert.Equal(t, int64(50000), stats.AverageOrder)
	require.NotNil(t, stats.LastOrder)
	assert.Equal(t, last.ID, stats.LastOrder.ID)

	empty := sh.CustomerStats("nobody@example.com")
	assert.Zero(t, empty.TotalOrders)
	assert.Nil(t, empty.LastOrder)
}
