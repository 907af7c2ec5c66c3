package shop

import (
	"github.com/hadilasm31/lamiti/internal/storage"
)

// Cart owns the in-progress working set of line items.
//
// Stock is checked at add/update time but NOT debited - the debit happens
// only when Orders.Create runs. Within one process this leaves a staleness
// window between check and debit (two stores against the same file, or
// simulated stock jitter, can move stock after the check); Orders.Create
// clamps at zero to keep the non-negative stock invariant.
type Cart struct {
	store   storage.Store
	catalog *Catalog
	bus     *Bus
	clock   Clock

	lines []CartLine
}

// NewCart loads the persisted cart from the store.
func NewCart(st storage.Store, catalog *Catalog, bus *Bus, clock Clock) (*Cart, error) {
	c := &Cart{store: st, catalog: catalog, bus: bus, clock: clock}
	if _, err := st.Get(storage.KeyCart, &c.lines); err != nil {
		return nil, err
	}
	return c, nil
}

// Lines returns a copy of the current cart lines.
func (c *Cart) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

// ItemCount returns the total quantity across all lines (the cart badge).
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Add puts quantity units of a product into the cart.
//
// A line with identical (product, size, color) identity absorbs the added
// quantity; otherwise a new line is appended. The product must exist and
// have enough stock to cover the resulting line quantity - on any
// insufficiency the cart is left unchanged.
func (c *Cart) Add(productID string, quantity int, size, color string) error {
	if quantity <= 0 {
		return NewInvalidInputError("quantity must be positive")
	}

	p, ok := c.catalog.Product(productID)
	if !ok {
		return NewNotFoundError("product", productID)
	}
	if p.Stock < quantity {
		return NewInsufficientStockError(productID, quantity, p.Stock)
	}

	if existing := c.findLine(productID, size, color); existing != nil {
		if p.Stock < existing.Quantity+quantity {
			return NewInsufficientStockError(productID, existing.Quantity+quantity, p.Stock)
		}
		existing.Quantity += quantity
		if err := c.save("add"); err != nil {
			existing.Quantity -= quantity
			return err
		}
		return nil
	}

	c.lines = append(c.lines, CartLine{
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
		AddedAt:   c.clock.Now(),
	})
	if err := c.save("add"); err != nil {
		c.lines = c.lines[:len(c.lines)-1]
		return err
	}
	return nil
}

// Remove deletes all lines matching the exact (product, size, color)
// triple. Removing a line that does not exist is a no-op, not an error.
func (c *Cart) Remove(productID, size, color string) error {
	kept := make([]CartLine, 0, len(c.lines))
	for _, l := range c.lines {
		if !l.matches(productID, size, color) {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(c.lines) {
		return nil
	}

	prev := c.lines
	c.lines = kept
	if err := c.save("remove"); err != nil {
		c.lines = prev
		return err
	}
	return nil
}

// UpdateQuantity overwrites a line's quantity. A missing line is a no-op;
// a quantity above the product's current stock leaves the line unchanged.
func (c *Cart) UpdateQuantity(productID string, quantity int, size, color string) error {
	if quantity <= 0 {
		return NewInvalidInputError("quantity must be positive")
	}

	line := c.findLine(productID, size, color)
	if line == nil {
		return nil
	}

	p, ok := c.catalog.Product(productID)
	if !ok {
		return NewNotFoundError("product", productID)
	}
	if p.Stock < quantity {
		return NewInsufficientStockError(productID, quantity, p.Stock)
	}

	prev := line.Quantity
	line.Quantity = quantity
	if err := c.save("update"); err != nil {
		line.Quantity = prev
		return err
	}
	return nil
}

// Total sums price*quantity across all lines at current catalog prices.
// Lines whose product no longer resolves contribute 0.
func (c *Cart) Total() int64 {
	var total int64
	for _, l := range c.lines {
		if p, ok := c.catalog.Product(l.ProductID); ok {
			total += p.Price * int64(l.Quantity)
		}
	}
	return total
}

// Clear empties the cart and persists.
func (c *Cart) Clear() error {
	prev := c.lines
	c.lines = nil
	if err := c.save("clear"); err != nil {
		c.lines = prev
		return err
	}
	return nil
}

func (c *Cart) findLine(productID, size, color string) *CartLine {
	for i := range c.lines {
		if c.lines[i].matches(productID, size, color) {
			return &c.lines[i]
		}
	}
	return nil
}

// save persists the cart, then notifies. JSON of a nil slice is "null",
// which decodes back to an empty cart, so Clear round-trips.
func (c *Cart) save(detail string) error {
	if err := c.store.Put(storage.KeyCart, c.lines); err != nil {
		return err
	}
	c.bus.Publish(Event{Topic: TopicCart, Detail: detail, At: c.clock.Now()})
	return nil
}
