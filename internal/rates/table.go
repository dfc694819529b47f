package rates

import (
	"errors"
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/souq-labs/backend-souq/internal/pricing"
)

// Zone is the rate row for one destination country.
type Zone struct {
	Base     pricing.Money `koanf:"base" validate:"gte=0"`
	PerKg    pricing.Money `koanf:"per_kg" validate:"gte=0"`
	FreeOver pricing.Money `koanf:"free_over" validate:"gte=0"`
}

// Table holds the deployment's shipping rate and payment surcharge reference
// data. It is loaded once at startup and never mutated afterwards.
type Table struct {
	DefaultZone string                   `koanf:"default_zone" validate:"required"`
	Zones       map[string]Zone          `koanf:"zones" validate:"required,min=1,dive"`
	Methods     map[string]float64       `koanf:"methods" validate:"required,min=1"`
	PaymentFees map[string]pricing.Money `koanf:"payment_fees"`
}

// Zone resolves the rate row for a destination. Unrecognised country codes
// fall back to the configured default zone.
func (t *Table) Zone(destination string) (base, perKg, freeOver pricing.Money) {
	zone, ok := t.Zones[strings.ToUpper(strings.TrimSpace(destination))]
	if !ok {
		zone = t.Zones[t.DefaultZone]
	}
	return zone.Base, zone.PerKg, zone.FreeOver
}

// Multiplier returns the fee multiplier for a paid shipping method.
func (t *Table) Multiplier(method pricing.ShippingMethod) (float64, bool) {
	mult, ok := t.Methods[string(method)]
	if !ok || mult <= 0 {
		return 0, false
	}
	return mult, true
}

// PaymentFee returns the flat surcharge for a payment method, zero when the
// method carries none.
func (t *Table) PaymentFee(method string) pricing.Money {
	fee := t.PaymentFees[strings.ToLower(strings.TrimSpace(method))]
	if fee < 0 {
		return 0
	}
	return fee
}

// Validate checks structural soundness of the loaded table.
func (t *Table) Validate() error {
	if t == nil {
		return errors.New("rate table is nil")
	}
	if err := validator.New().Struct(t); err != nil {
		return fmt.Errorf("rate table invalid: %w", err)
	}
	t.DefaultZone = strings.ToUpper(strings.TrimSpace(t.DefaultZone))
	normalized := make(map[string]Zone, len(t.Zones))
	for code, zone := range t.Zones {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = zone
	}
	t.Zones = normalized
	if _, ok := t.Zones[t.DefaultZone]; !ok {
		return fmt.Errorf("default zone %q has no rate row", t.DefaultZone)
	}
	for _, method := range []pricing.ShippingMethod{pricing.MethodStandard, pricing.MethodExpress} {
		mult, ok := t.Methods[string(method)]
		if !ok || mult <= 0 {
			return fmt.Errorf("method %q requires a positive multiplier", method)
		}
	}
	for method, fee := range t.PaymentFees {
		if fee < 0 {
			return fmt.Errorf("payment fee for %q must not be negative", method)
		}
	}
	return nil
}
