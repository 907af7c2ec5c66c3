// Package shop implements the storefront core: catalog, cart, checkout and
// order lifecycle, with synchronous persistence and change notifications.
package shop

import "time"

// Product is a catalog entry. Prices are in the smallest currency unit.
//
// INVARIANT: Stock >= 0 at all times. Stock is mutated only by admin edits
// (SetStock, UpdateProduct) and the checkout debit in Orders.Create.
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Price         int64     `json:"price"`
	OriginalPrice int64     `json:"originalPrice,omitempty"`
	Stock         int       `json:"stock"`
	Sizes         []string  `json:"sizes"`
	Colors        []string  `json:"colors"`
	Images        []string  `json:"images"`
	Featured      bool      `json:"featured,omitempty"`
	OnSale        bool      `json:"onSale,omitempty"`
	Active        bool      `json:"active"`
	AddedAt       time.Time `json:"addedAt"`
}

// clone returns a copy detached from internal state: the slice fields no
// longer alias the catalog's backing arrays.
func (p Product) clone() Product {
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Colors = append([]string(nil), p.Colors...)
	p.Images = append([]string(nil), p.Images...)
	return p
}

// ProductUpdate is an explicit partial update for a product. Nil fields are
// left unchanged; set fields win over the existing value.
type ProductUpdate struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Subcategory   *string  `json:"subcategory,omitempty"`
	Price         *int64   `json:"price,omitempty"`
	OriginalPrice *int64   `json:"originalPrice,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
	Sizes         []string `json:"sizes,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Images        []string `json:"images,omitempty"`
	Featured      *bool    `json:"featured,omitempty"`
	OnSale        *bool    `json:"onSale,omitempty"`
	Active        *bool    `json:"active,omitempty"`
}

// apply merges the update into p, field by field, new value wins.
func (u ProductUpdate) apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Subcategory != nil {
		p.Subcategory = *u.Subcategory
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.OriginalPrice != nil {
		p.OriginalPrice = *u.OriginalPrice
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Sizes != nil {
		p.Sizes = append([]string(nil), u.Sizes...)
	}
	if u.Colors != nil {
		p.Colors = append([]string(nil), u.Colors...)
	}
	if u.Images != nil {
		p.Images = append([]string(nil), u.Images...)
	}
	if u.Featured != nil {
		p.Featured = *u.Featured
	}
	if u.OnSale != nil {
		p.OnSale = *u.OnSale
	}
	if u.Active != nil {
		p.Active = *u.Active
	}
}

// CartLine is one line of the working cart. Size and color are part of the
// line's identity: the same product in two sizes makes two lines.
//
// INVARIANT: Quantity <= current stock of the referenced product,
// immediately after any successful cart mutation.
type CartLine struct {
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
	Color     string    `json:"color,omitempty"`
	AddedAt   time.Time `json:"addedAt"`
}

func (l CartLine) matches(productID, size, color string) bool {
	return l.ProductID == productID && l.Size == size && l.Color == color
}

// Category groups products, with an ordered subcategory list and an
// optional image reference. Names are stored lowercase.
type Category struct {
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
	Image         string   `json:"image,omitempty"`
}

// Customer is the contact info snapshotted into an order.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the transition s -> next is allowed.
//
// The happy path is the linear progression pending -> confirmed -> shipped
// -> delivered; cancellation is the only side-exit and is reachable from
// any non-terminal state. Backward jumps and skips are rejected.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch next {
	case StatusCancelled:
		return !s.Terminal()
	case StatusConfirmed:
		return s == StatusPending
	case StatusShipped:
		return s == StatusConfirmed
	case StatusDelivered:
		return s == StatusShipped
	}
	return false
}

// PaymentMethod identifies how an order is paid.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentMobile PaymentMethod = "mobile"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentMobile
}

// Order is an immutable checkout record. Only Status and LastUpdate change
// after creation; Items are deep-copied from the cart at checkout time and
// Total is the snapshot computed at that instant.
type Order struct {
	ID                string        `json:"id"`
	Customer          Customer      `json:"customer"`
	Items             []CartLine    `json:"items"`
	Total             int64         `json:"total"`
	Status            OrderStatus   `json:"status"`
	OrderDate         time.Time     `json:"orderDate"`
	LastUpdate        time.Time     `json:"lastUpdate,omitzero"`
	ShippingAddress   string        `json:"shippingAddress"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	TrackingCode      string        `json:"trackingCode"`
	EstimatedDelivery time.Time     `json:"estimatedDelivery"`
}

// clone returns a copy whose Items no longer alias the order history.
func (o Order) clone() Order {
	o.Items = append([]CartLine(nil), o.Items...)
	return o
}
