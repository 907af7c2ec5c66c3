package shop

import (
	"log/slog"

	"github.com/hadilasm31/lamiti/internal/storage"
)

// Orders converts carts into immutable orders and owns the order history.
// It is the only place stock is actually debited.
type Orders struct {
	store   storage.Store
	cart    *Cart
	catalog *Catalog
	bus     *Bus
	clock   Clock
	ids     IDSource

	// deliveryDays is added to the order date for the delivery estimate.
	deliveryDays int

	orders []Order
}

// NewOrders loads order history from the store.
func NewOrders(st storage.Store, cart *Cart, catalog *Catalog, bus *Bus, clock Clock, ids IDSource, deliveryDays int) (*Orders, error) {
	o := &Orders{
		store:        st,
		cart:         cart,
		catalog:      catalog,
		bus:          bus,
		clock:        clock,
		ids:          ids,
		deliveryDays: deliveryDays,
	}
	if _, err := st.Get(storage.KeyOrders, &o.orders); err != nil {
		return nil, err
	}
	return o, nil
}

// Create checks out the current cart into a new pending order.
//
// The order snapshots the cart lines and the total at this instant; later
// price changes never touch it. Every line's quantity is debited from the
// matching product's stock. Quantities were validated against stock when
// they entered the cart, but that check can be stale (jitter, a second
// store against the same file), so the debit clamps at zero rather than
// letting stock go negative; a clamp is logged and published as a
// stock-clamped event.
//
// On success the cart is emptied. An empty cart fails with EMPTY_CART and
// changes nothing.
func (o *Orders) Create(customer Customer, shippingAddress string, payment PaymentMethod) (Order, error) {
	lines := o.cart.Lines()
	if len(lines) == 0 {
		return Order{}, NewEmptyCartError()
	}
	if !payment.Valid() {
		return Order{}, NewInvalidInputError("unknown payment method: " + string(payment))
	}

	now := o.clock.Now()
	order := Order{
		ID:                o.ids.OrderID(),
		Customer:          customer,
		Items:             lines,
		Total:             o.cart.Total(),
		Status:            StatusPending,
		OrderDate:         now,
		ShippingAddress:   shippingAddress,
		PaymentMethod:     payment,
		TrackingCode:      o.ids.TrackingCode(),
		EstimatedDelivery: now.AddDate(0, 0, o.deliveryDays),
	}

	prevStocks := make(map[string]int)
	clamped := false
	for _, line := range lines {
		p := o.catalog.findProduct(line.ProductID)
		if p == nil {
			continue
		}
		if _, seen := prevStocks[p.ID]; !seen {
			prevStocks[p.ID] = p.Stock
		}
		p.Stock -= line.Quantity
		if p.Stock < 0 {
			p.Stock = 0
			clamped = true
			slog.Warn("stock clamped at zero during checkout",
				"order", order.ID, "product", p.ID, "quantity", line.Quantity)
		}
	}
	restoreStocks := func() {
		for id, stock := range prevStocks {
			if p := o.catalog.findProduct(id); p != nil {
				p.Stock = stock
			}
		}
	}

	o.orders = append(o.orders, order)
	if err := o.catalog.saveProducts("checkout"); err != nil {
		o.orders = o.orders[:len(o.orders)-1]
		restoreStocks()
		return Order{}, err
	}
	if err := o.save("create"); err != nil {
		o.orders = o.orders[:len(o.orders)-1]
		restoreStocks()
		// The debit already reached the store; put the old stock back.
		if rerr := o.catalog.saveProducts("checkout-rollback"); rerr != nil {
			slog.Error("failed to roll back stock debit", "order", order.ID, "error", rerr)
		}
		return Order{}, err
	}
	// The order is durable from here on: a failed cart clear is logged,
	// not surfaced, so the caller still receives the created order.
	if err := o.cart.Clear(); err != nil {
		slog.Warn("failed to clear cart after checkout", "order", order.ID, "error", err)
	}

	if clamped {
		o.bus.Publish(Event{Topic: TopicStockClamped, Detail: order.ID, At: now})
	}

	// Confirmation side effect: logged and notified, not a real email.
	slog.Info("order confirmation sent",
		"order", order.ID, "email", customer.Email, "total", order.Total)
	o.bus.Publish(Event{Topic: TopicOrderCreated, Detail: order.ID, At: now})

	return order, nil
}

// All returns a detached copy of the order history in creation order.
func (o *Orders) All() []Order {
	out := make([]Order, 0, len(o.orders))
	for _, ord := range o.orders {
		out = append(out, ord.clone())
	}
	return out
}

// Order returns the order with the given id.
func (o *Orders) Order(id string) (Order, bool) {
	if ord := o.find(id); ord != nil {
		return ord.clone(), true
	}
	return Order{}, false
}

// ByTrackingCode resolves the customer-facing tracking code to its order.
func (o *Orders) ByTrackingCode(code string) (Order, bool) {
	for _, ord := range o.orders {
		if ord.TrackingCode == code {
			return ord.clone(), true
		}
	}
	return Order{}, false
}

// ByCustomerEmail returns all orders placed with the given email address.
func (o *Orders) ByCustomerEmail(email string) []Order {
	var out []Order
	for _, ord := range o.orders {
		if ord.Customer.Email == email {
			out = append(out, ord.clone())
		}
	}
	return out
}

// UpdateStatus moves an order through its lifecycle and stamps LastUpdate.
//
// Transitions follow the table on OrderStatus.CanTransitionTo: the linear
// pending -> confirmed -> shipped -> delivered progression, with
// cancellation from any non-terminal state. Anything else is rejected.
func (o *Orders) UpdateStatus(orderID string, status OrderStatus) error {
	ord := o.find(orderID)
	if ord == nil {
		return NewNotFoundError("order", orderID)
	}
	if !status.Valid() {
		return NewInvalidInputError("unknown order status: " + string(status))
	}
	if !ord.Status.CanTransitionTo(status) {
		return NewInvalidTransitionError(orderID, ord.Status, status)
	}

	prevStatus, prevUpdate := ord.Status, ord.LastUpdate
	ord.Status = status
	ord.LastUpdate = o.clock.Now()
	if err := o.save("status"); err != nil {
		ord.Status, ord.LastUpdate = prevStatus, prevUpdate
		return err
	}

	// Status notification side effect, in place of a customer email.
	slog.Info("order status update sent",
		"order", ord.ID, "email", ord.Customer.Email, "status", ord.Status)
	return nil
}

// Delete removes an order from history. This is a one-way operation: stock
// debited by Create is NOT restored.
func (o *Orders) Delete(orderID string) error {
	idx := -1
	for i := range o.orders {
		if o.orders[i].ID == orderID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return NewNotFoundError("order", orderID)
	}

	removed := o.orders[idx]
	o.orders = append(o.orders[:idx], o.orders[idx+1:]...)
	if err := o.save("delete"); err != nil {
		o.orders = append(o.orders[:idx], append([]Order{removed}, o.orders[idx:]...)...)
		return err
	}
	return nil
}

func (o *Orders) find(id string) *Order {
	for i := range o.orders {
		if o.orders[i].ID == id {
			return &o.orders[i]
		}
	}
	return nil
}

// save persists the order history, then notifies.
func (o *Orders) save(detail string) error {
	if err := o.store.Put(storage.KeyOrders, o.orders); err != nil {
		return err
	}
	o.bus.Publish(Event{Topic: TopicOrders, Detail: detail, At: o.clock.Now()})
	return nil
}
