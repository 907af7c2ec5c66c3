package shop

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/hadilasm31/lamiti/internal/storage"
)

// placeholderImage is used when a product is added without images, so the
// "at least one image" invariant holds for display code.
const placeholderImage = "resources/product-placeholder.jpg"

// Catalog owns the product and category collections.
//
// Every mutating operation persists the affected collection synchronously
// before returning, then emits a change notification. Failed operations
// leave both memory and storage untouched.
type Catalog struct {
	store storage.Store
	bus   *Bus
	clock Clock
	ids   IDSource

	products       []Product
	categories     []string
	subcategories  map[string][]string
	categoryImages map[string]string
}

// NewCatalog loads catalog state from the store.
func NewCatalog(st storage.Store, bus *Bus, clock Clock, ids IDSource) (*Catalog, error) {
	c := &Catalog{
		store:          st,
		bus:            bus,
		clock:          clock,
		ids:            ids,
		subcategories:  make(map[string][]string),
		categoryImages: make(map[string]string),
	}

	if _, err := st.Get(storage.KeyProducts, &c.products); err != nil {
		return nil, err
	}
	if _, err := st.Get(storage.KeyCategories, &c.categories); err != nil {
		return nil, err
	}
	if _, err := st.Get(storage.KeySubcategories, &c.subcategories); err != nil {
		return nil, err
	}
	if _, err := st.Get(storage.KeyCategoryImages, &c.categoryImages); err != nil {
		return nil, err
	}
	if c.subcategories == nil {
		c.subcategories = make(map[string][]string)
	}
	if c.categoryImages == nil {
		c.categoryImages = make(map[string]string)
	}

	return c, nil
}

// normalizeCategory canonicalizes a category name: trimmed, lowercased and
// NFC-normalized so composed and decomposed accents ("é") collide.
func normalizeCategory(name string) string {
	return norm.NFC.String(strings.ToLower(strings.TrimSpace(name)))
}

// Products returns a detached copy of the full product set, inactive
// included; callers filter for the storefront.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p.clone())
	}
	return out
}

// ActiveProducts returns only products visible on the storefront.
func (c *Catalog) ActiveProducts() []Product {
	var out []Product
	for _, p := range c.products {
		if p.Active {
			out = append(out, p.clone())
		}
	}
	return out
}

// Product returns the product with the given id.
func (c *Catalog) Product(id string) (Product, bool) {
	if p := c.findProduct(id); p != nil {
		return p.clone(), true
	}
	return Product{}, false
}

// findProduct returns a mutable pointer into the product slice.
// For internal use by catalog/order mutations only.
func (c *Catalog) findProduct(id string) *Product {
	for i := range c.products {
		if c.products[i].ID == id {
			return &c.products[i]
		}
	}
	return nil
}

// AddProduct assigns a fresh id, defaults Active to true, stamps the
// creation time, appends and persists. Empty size/color/image lists are
// filled with placeholders so the display invariants hold.
func (c *Catalog) AddProduct(data Product) (Product, error) {
	data.ID = c.ids.ProductID()
	data.Active = true
	data.AddedAt = c.clock.Now()
	data.Category = normalizeCategory(data.Category)
	if data.Stock < 0 {
		return Product{}, NewInvalidInputError("stock cannot be negative")
	}
	if len(data.Sizes) == 0 {
		data.Sizes = []string{"Unique"}
	}
	if len(data.Colors) == 0 {
		data.Colors = []string{"Unique"}
	}
	if len(data.Images) == 0 {
		data.Images = []string{placeholderImage}
	}

	c.products = append(c.products, data)
	if err := c.saveProducts("add"); err != nil {
		c.products = c.products[:len(c.products)-1]
		return Product{}, err
	}
	return data, nil
}

// ImportProduct inserts a product keeping its given id and timestamps.
// Used by catalog seeding; an existing id is a NOT_FOUND-style conflict
// reported as invalid input.
func (c *Catalog) ImportProduct(p Product) error {
	if p.ID == "" {
		return NewInvalidInputError("imported product needs an id")
	}
	if c.findProduct(p.ID) != nil {
		return NewInvalidInputError("product id already present: " + p.ID)
	}
	if p.Stock < 0 {
		return NewInvalidInputError("stock cannot be negative")
	}
	p.Category = normalizeCategory(p.Category)
	if len(p.Images) == 0 {
		p.Images = []string{placeholderImage}
	}

	c.products = append(c.products, p)
	if err := c.saveProducts("import"); err != nil {
		c.products = c.products[:len(c.products)-1]
		return err
	}
	return nil
}

// UpdateProduct merges the partial update into the product with the given
// id. Unknown ids fail without mutation.
func (c *Catalog) UpdateProduct(id string, updates ProductUpdate) error {
	p := c.findProduct(id)
	if p == nil {
		return NewNotFoundError("product", id)
	}
	if updates.Stock != nil && *updates.Stock < 0 {
		return NewInvalidInputError("stock cannot be negative")
	}

	prev := *p
	updates.apply(p)
	if updates.Category != nil {
		p.Category = normalizeCategory(p.Category)
	}
	if err := c.saveProducts("update"); err != nil {
		*p = prev
		return err
	}
	return nil
}

// DeleteProduct removes the product unconditionally. There is no cascade:
// cart lines and orders referencing the id resolve it as "unknown product"
// at display time (a documented degradation, not an error).
func (c *Catalog) DeleteProduct(id string) error {
	idx := -1
	for i := range c.products {
		if c.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return NewNotFoundError("product", id)
	}

	removed := c.products[idx]
	c.products = append(c.products[:idx], c.products[idx+1:]...)
	if err := c.saveProducts("delete"); err != nil {
		c.products = append(c.products[:idx], append([]Product{removed}, c.products[idx:]...)...)
		return err
	}
	return nil
}

// ToggleProduct flips a product's storefront visibility.
func (c *Catalog) ToggleProduct(id string) error {
	p := c.findProduct(id)
	if p == nil {
		return NewNotFoundError("product", id)
	}

	p.Active = !p.Active
	if err := c.saveProducts("toggle"); err != nil {
		p.Active = !p.Active
		return err
	}
	return nil
}

// SetStock overwrites a product's stock level. Negative values are rejected.
func (c *Catalog) SetStock(id string, stock int) error {
	if stock < 0 {
		return NewInvalidInputError("stock cannot be negative")
	}
	p := c.findProduct(id)
	if p == nil {
		return NewNotFoundError("product", id)
	}

	prev := p.Stock
	p.Stock = stock
	if err := c.saveProducts("set-stock"); err != nil {
		p.Stock = prev
		return err
	}
	return nil
}

// Categories returns the category list assembled with subcategories and
// image references, in insertion order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, 0, len(c.categories))
	for _, name := range c.categories {
		out = append(out, Category{
			Name:          name,
			Subcategories: append([]string(nil), c.subcategories[name]...),
			Image:         c.categoryImages[name],
		})
	}
	return out
}

// Subcategories returns the subcategory list for a category name.
func (c *Catalog) Subcategories(category string) []string {
	return append([]string(nil), c.subcategories[normalizeCategory(category)]...)
}

// AddCategory registers a new category. The name is normalized to
// lowercase; a case-insensitive collision with an existing category is
// rejected without mutation.
func (c *Catalog) AddCategory(name string, subcategories []string, image string) error {
	normalized := normalizeCategory(name)
	if normalized == "" {
		return NewInvalidInputError("category name cannot be empty")
	}
	if c.hasCategory(normalized) {
		return NewDuplicateCategoryError(normalized)
	}

	c.categories = append(c.categories, normalized)
	c.subcategories[normalized] = append([]string(nil), subcategories...)
	if image != "" {
		c.categoryImages[normalized] = image
	}

	if err := c.saveCategories("add"); err != nil {
		c.categories = c.categories[:len(c.categories)-1]
		delete(c.subcategories, normalized)
		delete(c.categoryImages, normalized)
		return err
	}
	return nil
}

// hasCategory reports whether the normalized name is registered.
func (c *Catalog) hasCategory(normalized string) bool {
	for _, existing := range c.categories {
		if existing == normalized {
			return true
		}
	}
	return false
}

// AddSubcategory appends a subcategory to an existing category. The
// subcategory keeps its given casing; a duplicate (case-insensitive) is
// rejected without mutation.
func (c *Catalog) AddSubcategory(category, subcategory string) error {
	normalized := normalizeCategory(category)
	if !c.hasCategory(normalized) {
		return NewNotFoundError("category", normalized)
	}
	subcategory = strings.TrimSpace(subcategory)
	if subcategory == "" {
		return NewInvalidInputError("subcategory name cannot be empty")
	}
	for _, existing := range c.subcategories[normalized] {
		if strings.EqualFold(existing, subcategory) {
			return NewInvalidInputError("subcategory already present: " + subcategory)
		}
	}

	c.subcategories[normalized] = append(c.subcategories[normalized], subcategory)
	if err := c.saveCategories("add-subcategory"); err != nil {
		subs := c.subcategories[normalized]
		c.subcategories[normalized] = subs[:len(subs)-1]
		return err
	}
	return nil
}

// RemoveSubcategory removes a subcategory from an existing category. The
// match is case-insensitive; products keep their subcategory field, they
// just no longer map to a listed one.
func (c *Catalog) RemoveSubcategory(category, subcategory string) error {
	normalized := normalizeCategory(category)
	if !c.hasCategory(normalized) {
		return NewNotFoundError("category", normalized)
	}
	subs := c.subcategories[normalized]
	idx := -1
	for i, existing := range subs {
		if strings.EqualFold(existing, strings.TrimSpace(subcategory)) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return NewNotFoundError("subcategory", subcategory)
	}

	removed := subs[idx]
	c.subcategories[normalized] = append(subs[:idx], subs[idx+1:]...)
	if err := c.saveCategories("remove-subcategory"); err != nil {
		subs := c.subcategories[normalized]
		c.subcategories[normalized] = append(subs[:idx], append([]string{removed}, subs[idx:]...)...)
		return err
	}
	return nil
}

// SetCategoryImage replaces a category's image reference. An empty image
// clears the mapping.
func (c *Catalog) SetCategoryImage(category, image string) error {
	normalized := normalizeCategory(category)
	if !c.hasCategory(normalized) {
		return NewNotFoundError("category", normalized)
	}

	prev, had := c.categoryImages[normalized]
	if image == "" {
		delete(c.categoryImages, normalized)
	} else {
		c.categoryImages[normalized] = image
	}
	if err := c.saveCategories("set-image"); err != nil {
		if had {
			c.categoryImages[normalized] = prev
		} else {
			delete(c.categoryImages, normalized)
		}
		return err
	}
	return nil
}

// DeleteCategory removes a category, its subcategory list and its image
// mapping. The delete is blocked while any product references the category.
func (c *Catalog) DeleteCategory(name string) error {
	normalized := normalizeCategory(name)
	idx := -1
	for i, existing := range c.categories {
		if existing == normalized {
			idx = i
			break
		}
	}
	if idx == -1 {
		return NewNotFoundError("category", normalized)
	}

	inUse := 0
	for _, p := range c.products {
		if p.Category == normalized {
			inUse++
		}
	}
	if inUse > 0 {
		return NewCategoryInUseError(normalized, inUse)
	}

	subs := c.subcategories[normalized]
	img, hadImg := c.categoryImages[normalized]
	c.categories = append(c.categories[:idx], c.categories[idx+1:]...)
	delete(c.subcategories, normalized)
	delete(c.categoryImages, normalized)

	if err := c.saveCategories("delete"); err != nil {
		c.categories = append(c.categories[:idx], append([]string{normalized}, c.categories[idx:]...)...)
		c.subcategories[normalized] = subs
		if hadImg {
			c.categoryImages[normalized] = img
		}
		return err
	}
	return nil
}

// CategoryImage returns the image reference for a category, if any.
func (c *Catalog) CategoryImage(name string) (string, bool) {
	img, ok := c.categoryImages[normalizeCategory(name)]
	return img, ok
}

// saveProducts persists the product collection, then notifies.
func (c *Catalog) saveProducts(detail string) error {
	if err := c.store.Put(storage.KeyProducts, c.products); err != nil {
		return err
	}
	c.bus.Publish(Event{Topic: TopicProducts, Detail: detail, At: c.clock.Now()})
	return nil
}

// saveCategories persists all three category collections, then notifies.
func (c *Catalog) saveCategories(detail string) error {
	if err := c.store.Put(storage.KeyCategories, c.categories); err != nil {
		return err
	}
	if err := c.store.Put(storage.KeySubcategories, c.subcategories); err != nil {
		return err
	}
	if err := c.store.Put(storage.KeyCategoryImages, c.categoryImages); err != nil {
		return err
	}
	c.bus.Publish(Event{Topic: TopicCategories, Detail: detail, At: c.clock.Now()})
	return nil
}
