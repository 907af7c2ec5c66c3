package shop

import (
	"time"

	"github.com/hadilasm31/lamiti/internal/storage"
)

// Options configures a Shop. Zero values fall back to production defaults.
type Options struct {
	// Clock is the time source (default SystemClock).
	Clock Clock

	// IDs generates product/order/tracking identifiers (default UUIDSource).
	IDs IDSource

	// Bus receives change notifications (default a fresh bus).
	Bus *Bus

	// DeliveryDays is the standard delivery estimate (default 3).
	DeliveryDays int

	// LowStockThreshold marks products as low-stock on the dashboard
	// (default 5).
	LowStockThreshold int

	// AdminUsername/AdminPassword are the demo back-office credential.
	AdminUsername string
	AdminPassword string

	// SessionTTL is the admin session window (default 1 hour).
	SessionTTL time.Duration
}

// Shop is the explicit application-state object: it wires the catalog,
// cart, order and admin components over one store and one bus. There is no
// ambient global - callers pass the Shop (or a component) where needed.
type Shop struct {
	Catalog *Catalog
	Cart    *Cart
	Orders  *Orders
	Admin   *Admin
	Bus     *Bus

	lowStockThreshold int
}

// New loads all shop state from the store and wires the components.
func New(st storage.Store, opts Options) (*Shop, error) {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.IDs == nil {
		opts.IDs = UUIDSource{}
	}
	if opts.Bus == nil {
		opts.Bus = NewBus()
	}
	if opts.DeliveryDays <= 0 {
		opts.DeliveryDays = 3
	}
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = 5
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = time.Hour
	}

	catalog, err := NewCatalog(st, opts.Bus, opts.Clock, opts.IDs)
	if err != nil {
		return nil, err
	}
	cart, err := NewCart(st, catalog, opts.Bus, opts.Clock)
	if err != nil {
		return nil, err
	}
	orders, err := NewOrders(st, cart, catalog, opts.Bus, opts.Clock, opts.IDs, opts.DeliveryDays)
	if err != nil {
		return nil, err
	}
	admin := NewAdmin(st, opts.Bus, opts.Clock, opts.AdminUsername, opts.AdminPassword, opts.SessionTTL)

	return &Shop{
		Catalog:           catalog,
		Cart:              cart,
		Orders:            orders,
		Admin:             admin,
		Bus:               opts.Bus,
		lowStockThreshold: opts.LowStockThreshold,
	}, nil
}
