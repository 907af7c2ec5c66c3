package seed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadilasm31/lamiti/internal/shop"
	"github.com/hadilasm31/lamiti/internal/storage"
)

func TestDefault_DecodesDemoCatalog(t *testing.T) {
	s, err := Default()
	require.NoError(t, err)

	require.Len(t, s.Categories, 3)
	assert.Equal(t, "femmes", s.Categories[0].Name)
	assert.Equal(t, []string{"robes", "vestes", "pantalons", "chaussures"}, s.Categories[0].Subcategories)

	require.Len(t, s.Products, 6)
	bag := s.Products[0]
	assert.Equal(t, "prod1", bag.ID)
	assert.Equal(t, "Sac en Cuir Noir", bag.Name)
	assert.Equal(t, int64(129000), bag.Price)
	assert.Equal(t, int64(159000), bag.OriginalPrice)
	assert.Equal(t, 15, bag.Stock)
	assert.True(t, bag.Featured)
	assert.True(t, bag.OnSale)
	assert.True(t, bag.Active, "active defaults to true in the schema")
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), bag.AddedAt)
}

func TestLoadFile_ValidSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.cue")
	content := `
seed: #Seed & {
	categories: [{name: "tissus", subcategories: ["wax"]}]
	products: [{
		id:       "prod-wax"
		name:     "Pagne Wax"
		category: "tissus"
		price:    8000
		stock:    40
		sizes: ["Unique"]
		colors: ["Multicolore"]
		images: ["resources/wax.jpg"]
		addedAt: "2024-03-01T00:00:00Z"
	}]
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, s.Products, 1)
	assert.Equal(t, "Pagne Wax", s.Products[0].Name)
	assert.True(t, s.Products[0].Active)
}

func TestLoadFile_RejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"negative stock": `
seed: #Seed & {
	categories: []
	products: [{
		id: "p", name: "x", category: "c", price: 100, stock: -1
		sizes: ["Unique"], colors: ["Noir"], images: ["a.jpg"]
		addedAt: "2024-03-01T00:00:00Z"
	}]
}
`,
		"empty sizes": `
seed: #Seed & {
	categories: []
	products: [{
		id: "p", name: "x", category: "c", price: 100, stock: 1
		sizes: [], colors: ["Noir"], images: ["a.jpg"]
		addedAt: "2024-03-01T00:00:00Z"
	}]
}
`,
		"zero price": `
seed: #Seed & {
	categories: []
	products: [{
		id: "p", name: "x", category: "c", price: 0, stock: 1
		sizes: ["Unique"], colors: ["Noir"], images: ["a.jpg"]
		addedAt: "2024-03-01T00:00:00Z"
	}]
}
`,
		"missing name": `
seed: #Seed & {
	categories: [{name: "", subcategories: []}]
	products: []
}
`,
	}

	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.cue")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

			_, err := LoadFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid seed")
		})
	}
}

func TestLoadFile_RejectsMissingSeedValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.cue")
	require.NoError(t, os.WriteFile(path, []byte(`catalog: {}`), 0o644))

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed")
}

func TestApply_IsIdempotent(t *testing.T) {
	st := storage.NewMemory()
	sh, err := shop.New(st, shop.Options{})
	require.NoError(t, err)

	s, err := Default()
	require.NoError(t, err)

	added, err := Apply(sh.Catalog, s)
	require.NoError(t, err)
	assert.Equal(t, 9, added, "3 categories + 6 products")

	added, err = Apply(sh.Catalog, s)
	require.NoError(t, err)
	assert.Zero(t, added, "second apply changes nothing")

	assert.Len(t, sh.Catalog.Products(), 6)
	assert.Len(t, sh.Catalog.Categories(), 3)

	p, ok := sh.Catalog.Product("prod1")
	require.True(t, ok)
	assert.Equal(t, "Sac en Cuir Noir", p.Name)
}

func TestApply_KeepsExistingData(t *testing.T) {
	st := storage.NewMemory()
	sh, err := shop.New(st, shop.Options{})
	require.NoError(t, err)

	require.NoError(t, sh.Catalog.AddCategory("femmes", []string{"jupes"}, ""))

	s, err := Default()
	require.NoError(t, err)
	_, err = Apply(sh.Catalog, s)
	require.NoError(t, err)

	// The user's category wins over the seed's version of it.
	assert.Equal(t, []string{"jupes"}, sh.Catalog.Subcategories("femmes"))
	assert.Len(t, sh.Catalog.Categories(), 3)
}
