package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/souq-labs/backend-souq/internal/pricing"
)

func testProducts() []Product {
	return []Product{
		{ID: "p-1", Slug: "tshirt", Title: "T-Shirt", Price: 19900, WeightKg: 0.3, Stock: 10, Method: "standard"},
		{ID: "p-2", Slug: "mug", Title: "Mug", Price: 9900, WeightKg: 0.5, Stock: 5, Method: "express"},
		{ID: "p-3", Slug: "guide", Title: "Guide", Price: 4900, Stock: 100, Method: "free"},
	}
}

func TestStoreLookups(t *testing.T) {
	store := NewStore(testProducts())
	require.Equal(t, 3, store.Len())

	product, ok := store.ByID("p-2")
	require.True(t, ok)
	require.Equal(t, "mug", product.Slug)

	product, ok = store.BySlug("guide")
	require.True(t, ok)
	require.Equal(t, "p-3", product.ID)
	require.Equal(t, pricing.MethodFree, product.ShippingMethod())

	_, ok = store.ByID("missing")
	require.False(t, ok)
	_, ok = store.BySlug("missing")
	require.False(t, ok)
}

func TestStoreList(t *testing.T) {
	store := NewStore(testProducts())

	firstPage, total := store.List(1, 2)
	require.Equal(t, 3, total)
	require.Len(t, firstPage, 2)

	secondPage, _ := store.List(2, 2)
	require.Len(t, secondPage, 1)

	empty, _ := store.List(9, 2)
	require.Empty(t, empty)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - id: p-1
    slug: tshirt
    title: T-Shirt
    price: 19900
    weight_kg: 0.3
    stock: 10
    shipping_method: standard
`), 0o600))

	store, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
}

func TestLoadCatalogRejectsDuplicatesAndBadMethods(t *testing.T) {
	dup := `
products:
  - id: p-1
    slug: a
    title: A
    price: 100
    stock: 1
    shipping_method: standard
  - id: p-1
    slug: b
    title: B
    price: 100
    stock: 1
    shipping_method: standard
`
	badMethod := `
products:
  - id: p-1
    slug: a
    title: A
    price: 100
    stock: 1
    shipping_method: teleport
`
	for name, content := range map[string]string{"duplicate id": dup, "bad method": badMethod} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "catalog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}
