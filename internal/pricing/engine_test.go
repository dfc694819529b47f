package pricing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testCalc() Calculator {
	return Calculator{Rates: testRates()}
}

func TestComputeEmptyCart(t *testing.T) {
	summary, groups, err := Compute(nil, 0, 0, "EG", testCalc())
	require.NoError(t, err)
	require.Equal(t, Summary{}, summary)
	require.Empty(t, groups)
}

func TestComputeSingleLine(t *testing.T) {
	items := []Item{{Qty: 2, UnitPrice: 10000, WeightKg: 1, Method: MethodStandard}}
	summary, groups, err := Compute(items, 0, 0, "EG", testCalc())
	require.NoError(t, err)
	require.Equal(t, Money(20000), summary.Subtotal)
	// fee on 2kg: 2500 + 500*2 = 3500
	require.Equal(t, Money(3500), summary.ShippingFee)
	require.Equal(t, Money(23500), summary.Total)
	require.Equal(t, MethodGroup{Fee: 3500, Count: 1}, groups[MethodStandard])
}

func TestComputeGroupsByMethod(t *testing.T) {
	items := []Item{
		{Qty: 1, UnitPrice: 10000, WeightKg: 1, Method: MethodStandard},
		{Qty: 1, UnitPrice: 10000, WeightKg: 1, Method: MethodStandard},
		{Qty: 1, UnitPrice: 10000, WeightKg: 1, Method: MethodExpress},
		{Qty: 3, UnitPrice: 4900, WeightKg: 0.1, Method: MethodFree},
	}
	summary, groups, err := Compute(items, 0, 0, "EG", testCalc())
	require.NoError(t, err)

	standard := groups[MethodStandard]
	require.Equal(t, 2, standard.Count)
	require.Equal(t, Money(6000), standard.Fee) // 2 * (2500 + 500)

	express := groups[MethodExpress]
	require.Equal(t, 1, express.Count)
	require.Equal(t, Money(5250), express.Fee) // (2500 + 500) * 1.75

	free := groups[MethodFree]
	require.Equal(t, 1, free.Count)
	require.Zero(t, free.Fee)

	require.Equal(t, standard.Fee+express.Fee, summary.ShippingFee)
}

func TestComputeFixedDiscountNeverNegativeTotal(t *testing.T) {
	items := []Item{{Qty: 1, UnitPrice: 1000, WeightKg: 1, Method: MethodFree}}
	summary, _, err := Compute(items, 5000, 250, "EG", testCalc())
	require.NoError(t, err)
	require.Equal(t, Money(1000), summary.Subtotal)
	require.Equal(t, Money(5000), summary.Discount, "discount is reported as granted")
	require.Equal(t, Money(250), summary.Total, "goods floor at zero, fees still due")
}

func TestComputeSkipsAndClampsDegenerateLines(t *testing.T) {
	items := []Item{
		{Qty: 0, UnitPrice: 10000, WeightKg: 1, Method: MethodStandard},
		{Qty: -3, UnitPrice: 10000, WeightKg: 1, Method: MethodStandard},
		{Qty: 1, UnitPrice: -500, WeightKg: 1, Method: MethodFree},
	}
	summary, groups, err := Compute(items, 0, 0, "EG", testCalc())
	require.NoError(t, err)
	require.Zero(t, summary.Subtotal)
	require.Zero(t, summary.ShippingFee)
	require.Len(t, groups, 1, "only the free line survives")
}

func TestComputeDefaultsWeightPerUnit(t *testing.T) {
	// zero weight ships at 1 kg per unit, scaled by quantity
	items := []Item{{Qty: 2, UnitPrice: 10000, WeightKg: 0, Method: MethodStandard}}
	summary, _, err := Compute(items, 0, 0, "EG", testCalc())
	require.NoError(t, err)
	require.Equal(t, Money(3500), summary.ShippingFee) // 2500 + 500*2
}

func TestComputePropagatesFeeError(t *testing.T) {
	items := []Item{{Qty: 1, UnitPrice: 1000, WeightKg: 1, Method: "drone"}}
	_, _, err := Compute(items, 0, 0, "EG", testCalc())
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeNegativeAdjustmentsClamped(t *testing.T) {
	items := []Item{{Qty: 1, UnitPrice: 1000, WeightKg: 1, Method: MethodFree}}
	summary, _, err := Compute(items, -100, -50, "EG", testCalc())
	require.NoError(t, err)
	require.Zero(t, summary.Discount)
	require.Zero(t, summary.PaymentFee)
	require.Equal(t, Money(1000), summary.Total)
}
