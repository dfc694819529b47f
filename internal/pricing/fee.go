package pricing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Money represents a monetary value stored in minor units.
type Money = int64

// ShippingMethod identifies how a line item is delivered.
type ShippingMethod string

const (
	// MethodStandard is the default courier service.
	MethodStandard ShippingMethod = "standard"
	// MethodExpress is the premium courier service.
	MethodExpress ShippingMethod = "express"
	// MethodFree never incurs a shipping fee.
	MethodFree ShippingMethod = "free"
)

// ErrInvalidInput is returned when a fee computation receives malformed numeric input.
var ErrInvalidInput = errors.New("invalid fee input")

// ParseMethod normalises a raw method string into a ShippingMethod.
func ParseMethod(value string) (ShippingMethod, bool) {
	switch ShippingMethod(strings.ToLower(strings.TrimSpace(value))) {
	case MethodStandard:
		return MethodStandard, true
	case MethodExpress:
		return MethodExpress, true
	case MethodFree:
		return MethodFree, true
	}
	return "", false
}

// FeeInput bundles the inputs for a single fee computation. CartTotal and
// WeightKg are already scaled by quantity before the calculator sees them.
type FeeInput struct {
	Method      ShippingMethod
	Destination string
	CartTotal   Money
	WeightKg    float64
}

// RateSource resolves destination rate rows and method multipliers.
type RateSource interface {
	Zone(destination string) (base, perKg, freeOver Money)
	Multiplier(method ShippingMethod) (float64, bool)
}

// Calculator computes shipping fees from a rate table. It performs no I/O and
// is safe for concurrent use as long as the rate source is not mutated.
type Calculator struct {
	Rates RateSource
}

// Fee returns the shipping cost for the provided input.
func (c Calculator) Fee(in FeeInput) (Money, error) {
	if c.Rates == nil {
		return 0, errors.New("rate table not configured")
	}
	if in.CartTotal < 0 {
		return 0, fmt.Errorf("cart total must not be negative: %w", ErrInvalidInput)
	}
	if math.IsNaN(in.WeightKg) || math.IsInf(in.WeightKg, 0) || in.WeightKg <= 0 {
		return 0, fmt.Errorf("weight must be a positive finite number: %w", ErrInvalidInput)
	}
	if in.Method == MethodFree {
		return 0, nil
	}
	mult, ok := c.Rates.Multiplier(in.Method)
	if !ok {
		return 0, fmt.Errorf("unknown shipping method %q: %w", in.Method, ErrInvalidInput)
	}
	base, perKg, freeOver := c.Rates.Zone(in.Destination)
	if freeOver > 0 && in.CartTotal >= freeOver {
		return 0, nil
	}
	fee := Money(math.Round((float64(base) + float64(perKg)*in.WeightKg) * mult))
	if fee < 0 {
		fee = 0
	}
	return fee, nil
}
