// Package seed loads and validates catalog seed data.
//
// Seed files are CUE documents unified against the embedded schema, so a
// malformed seed (missing name, negative stock, empty size list) is
// rejected before anything touches the store.
package seed

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/hadilasm31/lamiti/internal/shop"
)

//go:embed schema.cue
var schemaCUE []byte

//go:embed default.cue
var defaultCUE []byte

// Seed is a validated catalog: categories first, then products.
type Seed struct {
	Categories []shop.Category
	Products   []shop.Product
}

// decode targets for CUE; timestamps arrive as RFC 3339 strings.
type seedDoc struct {
	Categories []struct {
		Name          string   `json:"name"`
		Subcategories []string `json:"subcategories"`
		Image         string   `json:"image"`
	} `json:"categories"`
	Products []struct {
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		Description   string   `json:"description"`
		Category      string   `json:"category"`
		Subcategory   string   `json:"subcategory"`
		Price         int64    `json:"price"`
		OriginalPrice int64    `json:"originalPrice"`
		Stock         int      `json:"stock"`
		Sizes         []string `json:"sizes"`
		Colors        []string `json:"colors"`
		Images        []string `json:"images"`
		Featured      bool     `json:"featured"`
		OnSale        bool     `json:"onSale"`
		Active        bool     `json:"active"`
		AddedAt       string   `json:"addedAt"`
	} `json:"products"`
}

// Default returns the embedded demo catalog.
func Default() (Seed, error) {
	return compile(defaultCUE, "default.cue")
}

// LoadFile reads a user seed file and validates it against the schema.
func LoadFile(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed: %w", err)
	}
	return compile(data, path)
}

// compile unifies schema + data in one CUE instance and decodes the seed.
func compile(data []byte, filename string) (Seed, error) {
	ctx := cuecontext.New()

	// The schema's definitions are top-level declarations; compiling them
	// together with the data puts #Seed in scope for the seed value.
	src := append(append([]byte{}, schemaCUE...), '\n')
	src = append(src, data...)

	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return Seed{}, formatCUEError(filename, err)
	}

	seedVal := v.LookupPath(cue.ParsePath("seed"))
	if !seedVal.Exists() {
		return Seed{}, fmt.Errorf("%s: no top-level \"seed\" value", filename)
	}
	if err := seedVal.Validate(cue.Concrete(true)); err != nil {
		return Seed{}, formatCUEError(filename, err)
	}

	var doc seedDoc
	if err := seedVal.Decode(&doc); err != nil {
		return Seed{}, formatCUEError(filename, err)
	}

	return convert(doc)
}

func convert(doc seedDoc) (Seed, error) {
	var s Seed
	for _, c := range doc.Categories {
		s.Categories = append(s.Categories, shop.Category{
			Name:          c.Name,
			Subcategories: c.Subcategories,
			Image:         c.Image,
		})
	}
	for _, p := range doc.Products {
		addedAt, err := time.Parse(time.RFC3339, p.AddedAt)
		if err != nil {
			return Seed{}, fmt.Errorf("product %s: invalid addedAt: %w", p.ID, err)
		}
		s.Products = append(s.Products, shop.Product{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Category:      p.Category,
			Subcategory:   p.Subcategory,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			Stock:         p.Stock,
			Sizes:         p.Sizes,
			Colors:        p.Colors,
			Images:        p.Images,
			Featured:      p.Featured,
			OnSale:        p.OnSale,
			Active:        p.Active,
			AddedAt:       addedAt,
		})
	}
	return s, nil
}

// Apply loads the seed into the catalog. Categories and products already
// present (by name/id) are skipped, so applying twice is harmless.
func Apply(catalog *shop.Catalog, s Seed) (added int, err error) {
	for _, c := range s.Categories {
		switch err := catalog.AddCategory(c.Name, c.Subcategories, c.Image); {
		case err == nil:
			added++
		case shop.IsDuplicateCategory(err):
			// already seeded
		default:
			return added, err
		}
	}

	existing := make(map[string]bool)
	for _, p := range catalog.Products() {
		existing[p.ID] = true
	}
	for _, p := range s.Products {
		if existing[p.ID] {
			continue
		}
		if err := catalog.ImportProduct(p); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// formatCUEError flattens CUE's multi-error into one message with
// positions, mirroring the compiler's diagnostics.
func formatCUEError(filename string, err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", filename, err)
	}
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return fmt.Errorf("%s: invalid seed: %s", filename, msg)
}
