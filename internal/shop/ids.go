package shop

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// IDSource produces unique identifiers for products, orders and tracking
// codes. Implemented by UUIDSource (production) and SequenceSource (tests).
type IDSource interface {
	ProductID() string
	OrderID() string
	TrackingCode() string
}

// UUIDSource generates identifiers from UUIDs.
//
// Order and product ids use UUIDv7, which embeds a timestamp in the most
// significant bits: ids sort by creation time, which keeps order history
// listings chronological without extra bookkeeping.
//
// Tracking codes use a random UUIDv4 truncated to 9 uppercase hex
// characters - 36 bits of entropy, enough that accidental collision is not
// observed across the lifetime of a single store.
//
// Thread-safety: UUIDSource is stateless and safe for concurrent use.
type UUIDSource struct{}

// ProductID returns a fresh product identifier ("prod-" prefix).
func (UUIDSource) ProductID() string {
	return "prod-" + uuid.Must(uuid.NewV7()).String()
}

// OrderID returns a fresh time-sortable order identifier ("ORD-" prefix).
func (UUIDSource) OrderID() string {
	return "ORD-" + uuid.Must(uuid.NewV7()).String()
}

// TrackingCode returns a fresh customer-facing tracking code ("TRK-" prefix).
func (UUIDSource) TrackingCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TRK-" + strings.ToUpper(raw[:9])
}

// SequenceSource returns predictable identifiers for tests.
//
// Each kind of id counts up independently: prod-1, prod-2, ... ORD-1,
// ORD-2, ... TRK-1, TRK-2, ...
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceSource struct {
	mu       sync.Mutex
	products int
	orders   int
	tracks   int
}

// NewSequenceSource creates a source with all counters at zero.
func NewSequenceSource() *SequenceSource {
	return &SequenceSource{}
}

func (s *SequenceSource) ProductID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products++
	return fmt.Sprintf("prod-%d", s.products)
}

func (s *SequenceSource) OrderID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders++
	return fmt.Sprintf("ORD-%d", s.orders)
}

func (s *SequenceSource) TrackingCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracks++
	return fmt.Sprintf("TRK-%d", s.tracks)
}
