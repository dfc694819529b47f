package catalog

import (
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/souq-labs/backend-souq/internal/pricing"
)

// Product is one sellable item from the catalog reference data. WeightKg may
// be zero in the source data; pricing substitutes 1 kg per unit in that case.
type Product struct {
	ID       string        `koanf:"id" json:"id" validate:"required"`
	Slug     string        `koanf:"slug" json:"slug" validate:"required"`
	Title    string        `koanf:"title" json:"title" validate:"required"`
	Price    pricing.Money `koanf:"price" json:"price" validate:"gte=0"`
	WeightKg float64       `koanf:"weight_kg" json:"weightKg" validate:"gte=0"`
	Stock    int           `koanf:"stock" json:"stock" validate:"gte=0"`
	Method   string        `koanf:"shipping_method" json:"shippingMethod" validate:"required,oneof=standard express free"`
}

// ShippingMethod returns the product's normalised shipping method tag.
func (p Product) ShippingMethod() pricing.ShippingMethod {
	method, _ := pricing.ParseMethod(p.Method)
	return method
}

// Store is an in-memory product set loaded at startup, ordered as listed in
// the source file.
type Store struct {
	products []Product
	byID     map[string]int
	bySlug   map[string]int
}

// NewStore indexes the provided products.
func NewStore(products []Product) *Store {
	s := &Store{
		products: products,
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		s.byID[p.ID] = i
		s.bySlug[strings.ToLower(p.Slug)] = i
	}
	return s
}

// Len reports the number of loaded products.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.products)
}

// ByID finds a product by identifier.
func (s *Store) ByID(id string) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	idx, ok := s.byID[id]
	if !ok {
		return Product{}, false
	}
	return s.products[idx], true
}

// BySlug finds a product by slug, ignoring case.
func (s *Store) BySlug(slug string) (Product, bool) {
	if s == nil {
		return Product{}, false
	}
	idx, ok := s.bySlug[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return Product{}, false
	}
	return s.products[idx], true
}

// List returns one page of products plus the total count.
func (s *Store) List(page, perPage int) ([]Product, int) {
	if s == nil || page < 1 || perPage < 1 {
		return nil, s.Len()
	}
	start := (page - 1) * perPage
	if start >= len(s.products) {
		return []Product{}, len(s.products)
	}
	end := start + perPage
	if end > len(s.products) {
		end = len(s.products)
	}
	out := make([]Product, end-start)
	copy(out, s.products[start:end])
	return out, len(s.products)
}

type catalogFile struct {
	Products []Product `koanf:"products"`
}

// Load reads the product catalog from a YAML file.
func Load(path string) (*Store, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	var parsed catalogFile
	if err := k.Unmarshal("", &parsed); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	validate := validator.New()
	seen := make(map[string]struct{}, len(parsed.Products))
	for i, product := range parsed.Products {
		if err := validate.Struct(product); err != nil {
			return nil, fmt.Errorf("product %d (%s) invalid: %w", i, product.ID, err)
		}
		if _, dup := seen[product.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %s", product.ID)
		}
		seen[product.ID] = struct{}{}
	}
	return NewStore(parsed.Products), nil
}
