package cart

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/souq-labs/backend-souq/internal/catalog"
	"github.com/souq-labs/backend-souq/internal/pricing"
)

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// ErrInsufficientStock is returned when the requested quantity exceeds stock.
var ErrInsufficientStock = errors.New("insufficient stock")

type productSource interface {
	ByID(id string) (catalog.Product, bool)
}

type couponSource interface {
	Apply(code string, subtotal pricing.Money) (pricing.Money, error)
}

// Service encapsulates cart domain operations over the snapshot store.
type Service struct {
	Store   *Store
	Catalog productSource
	Coupons couponSource
}

// EnsureCart loads or creates a cart for the provided anonymous identifier.
func (s *Service) EnsureCart(anonID string) (Snapshot, error) {
	if s == nil || s.Store == nil {
		return Snapshot{}, errors.New("cart service not configured")
	}
	anonID = strings.TrimSpace(anonID)
	if anonID == "" {
		return Snapshot{}, fmt.Errorf("anon id required: %w", ErrInvalidInput)
	}
	return s.Store.Ensure(anonID), nil
}

// Snapshot returns the current immutable view of a cart.
func (s *Service) Snapshot(cartID uuid.UUID) (Snapshot, error) {
	if s == nil || s.Store == nil {
		return Snapshot{}, errors.New("cart service not configured")
	}
	return s.Store.Get(cartID)
}

// AddItem inserts or increments a line for the product, bounded by stock.
func (s *Service) AddItem(cartID uuid.UUID, productID string, qty int) (Snapshot, error) {
	if s == nil || s.Store == nil || s.Catalog == nil {
		return Snapshot{}, errors.New("cart service not configured")
	}
	if qty <= 0 {
		return Snapshot{}, fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	product, ok := s.Catalog.ByID(strings.TrimSpace(productID))
	if !ok {
		return Snapshot{}, fmt.Errorf("unknown product %s: %w", productID, ErrInvalidInput)
	}
	return s.Store.Update(cartID, func(c *Cart) error {
		newQty := qty
		idx := c.LineIndexByProduct(product.ID)
		if idx >= 0 {
			newQty += c.Lines[idx].Qty
		}
		if newQty > product.Stock {
			return fmt.Errorf("%s has %d in stock: %w", product.ID, product.Stock, ErrInsufficientStock)
		}
		line := Line{
			ID:        uuid.New(),
			ProductID: product.ID,
			Title:     product.Title,
			Slug:      product.Slug,
			Qty:       newQty,
			UnitPrice: product.Price,
			WeightKg:  product.WeightKg,
			Method:    product.ShippingMethod(),
			Subtotal:  pricing.Money(newQty) * product.Price,
		}
		if idx >= 0 {
			line.ID = c.Lines[idx].ID
			c.Lines[idx] = line
			return nil
		}
		c.Lines = append(c.Lines, line)
		return nil
	})
}

// UpdateQty sets the quantity for an existing line, bounded by stock.
func (s *Service) UpdateQty(cartID, lineID uuid.UUID, qty int) (Snapshot, error) {
	if s == nil || s.Store == nil || s.Catalog == nil {
		return Snapshot{}, errors.New("cart service not configured")
	}
	if qty <= 0 {
		return Snapshot{}, fmt.Errorf("qty must be positive: %w", ErrInvalidInput)
	}
	return s.Store.Update(cartID, func(c *Cart) error {
		idx := c.LineIndex(lineID)
		if idx < 0 {
			return ErrNotFound
		}
		line := c.Lines[idx]
		if product, ok := s.Catalog.ByID(line.ProductID); ok && qty > product.Stock {
			return fmt.Errorf("%s has %d in stock: %w", product.ID, product.Stock, ErrInsufficientStock)
		}
		line.Qty = qty
		line.Subtotal = pricing.Money(qty) * line.UnitPrice
		c.Lines[idx] = line
		return nil
	})
}

// RemoveItem deletes a line from the cart.
func (s *Service) RemoveItem(cartID, lineID uuid.UUID) (Snapshot, error) {
	if s == nil || s.Store == nil {
		return Snapshot{}, errors.New("cart service not configured")
	}
	return s.Store.Update(cartID, func(c *Cart) error {
		idx := c.LineIndex(lineID)
		if idx < 0 {
			return ErrNotFound
		}
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
		return nil
	})
}

// ApplyCoupon validates a code against the cart subtotal and attaches it,
// returning the discount it currently yields. A failed application leaves the
// previously applied coupon in place.
func (s *Service) ApplyCoupon(cartID uuid.UUID, code string) (pricing.Money, Snapshot, error) {
	if s == nil || s.Store == nil || s.Coupons == nil {
		return 0, Snapshot{}, errors.New("cart service not configured")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return 0, Snapshot{}, fmt.Errorf("coupon code required: %w", ErrInvalidInput)
	}
	var discount pricing.Money
	snap, err := s.Store.Update(cartID, func(c *Cart) error {
		if len(c.Lines) == 0 {
			return fmt.Errorf("cart empty: %w", ErrInvalidInput)
		}
		amount, err := s.Coupons.Apply(code, c.Subtotal())
		if err != nil {
			return err
		}
		discount = amount
		c.CouponCode = code
		return nil
	})
	if err != nil {
		return 0, Snapshot{}, err
	}
	return discount, snap, nil
}

// RemoveCoupon clears an applied coupon.
func (s *Service) RemoveCoupon(cartID uuid.UUID) (Snapshot, error) {
	if s == nil || s.Store == nil {
		return Snapshot{}, errors.New("cart service not configured")
	}
	return s.Store.Update(cartID, func(c *Cart) error {
		c.CouponCode = ""
		return nil
	})
}

// Discount re-evaluates the applied coupon against the current subtotal,
// returning zero when none applies or the coupon no longer qualifies.
func (s *Service) Discount(snap Snapshot) pricing.Money {
	if s == nil || s.Coupons == nil || snap.CouponCode == "" {
		return 0
	}
	discount, err := s.Coupons.Apply(snap.CouponCode, snap.Subtotal())
	if err != nil {
		return 0
	}
	return discount
}
