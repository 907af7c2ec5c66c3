package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/hadilasm31/lamiti/internal/shop"
)

// Golden coverage for the dashboard layout. Regenerate with:
//
//	go test ./internal/cli -run TestRenderStats_Golden -update
func TestRenderStats_Golden(t *testing.T) {
	dash := shop.DashboardStats{
		TotalProducts:   6,
		TotalOrders:     3,
		TotalRevenue:    1278000,
		LowStockItems:   2,
		PendingOrders:   1,
		DeliveredOrders: 1,
	}
	byCategory := map[string]int{
		"femmes":      2,
		"hommes":      1,
		"accessoires": 3,
	}

	out := renderStats(dash, byCategory, "FCFA")

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "stats", []byte(out))
}
