package checkout

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/souq-labs/backend-souq/internal/cart"
	"github.com/souq-labs/backend-souq/internal/pricing"
	"github.com/souq-labs/backend-souq/internal/rates"
)

// Totals is the aggregate quote returned to the display layer.
type Totals struct {
	Subtotal    pricing.Money                                  `json:"subtotal"`
	Discount    pricing.Money                                  `json:"discount"`
	ShippingFee pricing.Money                                  `json:"shippingFee"`
	PaymentFee  pricing.Money                                  `json:"paymentFee"`
	Total       pricing.Money                                  `json:"total"`
	Currency    string                                         `json:"currency"`
	Shipping    map[pricing.ShippingMethod]pricing.MethodGroup `json:"shippingBreakdown"`
}

type couponSource interface {
	Apply(code string, subtotal pricing.Money) (pricing.Money, error)
}

// Service composes the fee calculator, coupon engine and totals aggregation
// into checkout quotes. Every quote reads an immutable cart snapshot and the
// startup-loaded reference tables; nothing is persisted.
type Service struct {
	Carts              *cart.Service
	Coupons            couponSource
	Table              *rates.Table
	Currency           string
	DefaultDestination string
}

func (s *Service) destination(value string) string {
	dest := strings.ToUpper(strings.TrimSpace(value))
	if dest == "" {
		dest = s.DefaultDestination
	}
	return dest
}

// QuoteCart computes order totals for a stored cart. A coupon attached to the
// cart that no longer qualifies contributes a zero discount rather than
// failing the quote.
func (s *Service) QuoteCart(cartID uuid.UUID, destination, paymentMethod string) (Totals, error) {
	if s == nil || s.Carts == nil || s.Table == nil {
		return Totals{}, errors.New("checkout service not configured")
	}
	snap, err := s.Carts.Snapshot(cartID)
	if err != nil {
		return Totals{}, err
	}
	items := make([]pricing.Item, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		items = append(items, pricing.Item{
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			WeightKg:  line.WeightKg,
			Method:    line.Method,
		})
	}
	return s.quote(items, s.Carts.Discount(snap), destination, paymentMethod)
}

// QuoteItems computes order totals for caller-supplied line items. Unlike
// QuoteCart, an explicit coupon code that fails to apply is reported as an
// error so the caller can surface it.
func (s *Service) QuoteItems(items []pricing.Item, couponCode, destination, paymentMethod string) (Totals, error) {
	if s == nil || s.Table == nil {
		return Totals{}, errors.New("checkout service not configured")
	}
	var discount pricing.Money
	if code := strings.TrimSpace(couponCode); code != "" {
		if s.Coupons == nil {
			return Totals{}, errors.New("coupon store not configured")
		}
		var subtotal pricing.Money
		for _, it := range items {
			if it.Qty <= 0 || it.UnitPrice < 0 {
				continue
			}
			subtotal += pricing.Money(it.Qty) * it.UnitPrice
		}
		amount, err := s.Coupons.Apply(code, subtotal)
		if err != nil {
			return Totals{}, err
		}
		discount = amount
	}
	return s.quote(items, discount, destination, paymentMethod)
}

func (s *Service) quote(items []pricing.Item, discount pricing.Money, destination, paymentMethod string) (Totals, error) {
	summary, groups, err := pricing.Compute(
		items,
		discount,
		s.Table.PaymentFee(paymentMethod),
		s.destination(destination),
		pricing.Calculator{Rates: s.Table},
	)
	if err != nil {
		return Totals{}, err
	}
	return Totals{
		Subtotal:    summary.Subtotal,
		Discount:    summary.Discount,
		ShippingFee: summary.ShippingFee,
		PaymentFee:  summary.PaymentFee,
		Total:       summary.Total,
		Currency:    s.Currency,
		Shipping:    groups,
	}, nil
}
