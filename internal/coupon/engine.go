package coupon

import (
	"errors"
	"fmt"

	"github.com/souq-labs/backend-souq/internal/pricing"
)

// Kind enumerates the supported discount strategies.
type Kind string

const (
	// KindPercentage discounts a percentage of the subtotal.
	KindPercentage Kind = "percentage"
	// KindFixed discounts a fixed amount regardless of the subtotal.
	KindFixed Kind = "fixed"
)

var (
	// ErrNotFound is returned when no rule matches the supplied code.
	ErrNotFound = errors.New("coupon not found")
	// ErrMinPurchaseNotMet indicates the subtotal did not reach the rule's threshold.
	ErrMinPurchaseNotMet = errors.New("coupon minimum purchase not met")
)

// MinPurchaseError carries the threshold the subtotal failed to reach so the
// caller can render a message naming the required amount.
type MinPurchaseError struct {
	Code     string
	Required pricing.Money
}

// Error implements the error interface.
func (e *MinPurchaseError) Error() string {
	return fmt.Sprintf("coupon %s requires a minimum purchase of %d", e.Code, e.Required)
}

// Unwrap allows errors.Is matching against ErrMinPurchaseNotMet.
func (e *MinPurchaseError) Unwrap() error { return ErrMinPurchaseNotMet }

// Rule captures one discount rule from the reference table. MaxDiscount caps
// percentage discounts only; fixed rules ignore it.
type Rule struct {
	Code        string         `koanf:"code" json:"code" validate:"required"`
	Kind        Kind           `koanf:"kind" json:"kind" validate:"required,oneof=percentage fixed"`
	Value       pricing.Money  `koanf:"value" json:"value" validate:"gt=0"`
	MinPurchase pricing.Money  `koanf:"min_purchase" json:"minPurchase" validate:"gte=0"`
	MaxDiscount *pricing.Money `koanf:"max_discount" json:"maxDiscount,omitempty"`
}

// Compute determines the discount a rule yields against a subtotal. A fixed
// discount may exceed the subtotal; preventing a negative payable total is
// the aggregator's responsibility, not this engine's.
func Compute(r Rule, subtotal pricing.Money) pricing.Money {
	switch r.Kind {
	case KindPercentage:
		discount := subtotal * r.Value / 100
		if r.MaxDiscount != nil && discount > *r.MaxDiscount {
			discount = *r.MaxDiscount
		}
		if discount < 0 {
			return 0
		}
		return discount
	default:
		return r.Value
	}
}
