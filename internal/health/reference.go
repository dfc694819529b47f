package health

import (
	"errors"

	"github.com/souq-labs/backend-souq/internal/catalog"
	"github.com/souq-labs/backend-souq/internal/coupon"
	"github.com/souq-labs/backend-souq/internal/rates"
)

// ReferenceChecker probes the in-memory reference data loaded at startup.
type ReferenceChecker struct {
	Rates   *rates.Table
	Coupons *coupon.Store
	Catalog *catalog.Store
}

// CheckRates verifies the shipping rate table is loaded and usable.
func (c ReferenceChecker) CheckRates() error {
	if c.Rates == nil || len(c.Rates.Zones) == 0 {
		return errors.New("rate table not loaded")
	}
	return nil
}

// CheckCoupons verifies coupon rules are loaded.
func (c ReferenceChecker) CheckCoupons() error {
	if c.Coupons == nil || c.Coupons.Len() == 0 {
		return errors.New("coupon rules not loaded")
	}
	return nil
}

// CheckCatalog verifies the product catalog is loaded.
func (c ReferenceChecker) CheckCatalog() error {
	if c.Catalog == nil || c.Catalog.Len() == 0 {
		return errors.New("catalog not loaded")
	}
	return nil
}
