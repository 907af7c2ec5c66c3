// Package storage provides durable key/value persistence for shop state.
//
// Collections are stored as JSON-encoded values under well-known logical
// keys. Three backends are available: SQLite (default, single file),
// Pebble (embedded LSM, directory-based), and an in-memory store for
// tests and ephemeral runs.
package storage

// Logical keys for persisted collections.
const (
	KeyProducts       = "products"
	KeyCart           = "cart"
	KeyOrders         = "orders"
	KeyCategories     = "categories"
	KeySubcategories  = "subcategories"
	KeyCategoryImages = "category-images"
	KeyAdminSession   = "admin-session"
)

// Store abstracts the persistence backend.
//
// Values are JSON-serializable Go values. Put must make the value durable
// before returning; callers rely on write-then-return ordering for the
// persist-before-notify contract in the shop package.
type Store interface {
	// Get decodes the value stored under key into out.
	// Returns false (and leaves out untouched) if the key is absent.
	Get(key string, out any) (bool, error)

	// Put encodes v as JSON and stores it under key, replacing any
	// previous value.
	Put(key string, v any) error

	// Delete removes key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Keys returns all stored keys in lexicographic order.
	Keys() ([]string, error)

	// Close releases backend resources.
	Close() error
}
