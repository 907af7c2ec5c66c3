package shop

// DashboardStats are the admin panel headline numbers.
type DashboardStats struct {
	TotalProducts   int   `json:"totalProducts"`
	TotalOrders     int   `json:"totalOrders"`
	TotalRevenue    int64 `json:"totalRevenue"`
	LowStockItems   int   `json:"lowStockItems"`
	PendingOrders   int   `json:"pendingOrders"`
	DeliveredOrders int   `json:"deliveredOrders"`
}

// CustomerStats aggregates a single customer's order history.
type CustomerStats struct {
	TotalSpent   int64  `json:"totalSpent"`
	TotalOrders  int    `json:"totalOrders"`
	AverageOrder int64  `json:"averageOrder"`
	LastOrder    *Order `json:"lastOrder,omitempty"`
}

// Dashboard computes the admin headline stats. Revenue sums order totals
// regardless of status, matching the admin panel display.
func (s *Shop) Dashboard() DashboardStats {
	stats := DashboardStats{
		TotalProducts: len(s.Catalog.products),
		TotalOrders:   len(s.Orders.orders),
	}
	for _, p := range s.Catalog.products {
		if p.Stock < s.lowStockThreshold {
			stats.LowStockItems++
		}
	}
	for _, o := range s.Orders.orders {
		stats.TotalRevenue += o.Total
		switch o.Status {
		case StatusPending:
			stats.PendingOrders++
		case StatusDelivered:
			stats.DeliveredOrders++
		}
	}
	return stats
}

// CategoryStats returns the product count per category, for the admin
// charting layer.
func (s *Shop) CategoryStats() map[string]int {
	stats := make(map[string]int, len(s.Catalog.categories))
	for _, cat := range s.Catalog.categories {
		stats[cat] = 0
	}
	for _, p := range s.Catalog.products {
		if _, known := stats[p.Category]; known {
			stats[p.Category]++
		}
	}
	return stats
}

// LowStockProducts returns active products at or below the threshold.
// A non-positive threshold falls back to the configured default.
func (s *Shop) LowStockProducts(threshold int) []Product {
	if threshold <= 0 {
		threshold = s.lowStockThreshold
	}
	var out []Product
	for _, p := range s.Catalog.products {
		if p.Active && p.Stock <= threshold {
			out = append(out, p)
		}
	}
	return out
}

// CustomerStats aggregates the orders placed with the given email.
func (s *Shop) CustomerStats(email string) CustomerStats {
	orders := s.Orders.ByCustomerEmail(email)
	stats := CustomerStats{TotalOrders: len(orders)}
	for _, o := range orders {
		stats.TotalSpent += o.Total
	}
	if len(orders) > 0 {
		stats.AverageOrder = stats.TotalSpent / int64(len(orders))
		last := orders[len(orders)-1]
		stats.LastOrder = &last
	}
	return stats
}
