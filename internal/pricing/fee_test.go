package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubRates struct {
	base     Money
	perKg    Money
	freeOver Money
	methods  map[ShippingMethod]float64
}

func (s stubRates) Zone(string) (Money, Money, Money) {
	return s.base, s.perKg, s.freeOver
}

func (s stubRates) Multiplier(method ShippingMethod) (float64, bool) {
	mult, ok := s.methods[method]
	return mult, ok
}

func testRates() stubRates {
	return stubRates{
		base:     2500,
		perKg:    500,
		freeOver: 50000,
		methods: map[ShippingMethod]float64{
			MethodStandard: 1.0,
			MethodExpress:  1.75,
		},
	}
}

func TestFeeStandard(t *testing.T) {
	calc := Calculator{Rates: testRates()}
	fee, err := calc.Fee(FeeInput{Method: MethodStandard, Destination: "EG", CartTotal: 10000, WeightKg: 2})
	require.NoError(t, err)
	// round((2500 + 500*2) * 1.0)
	require.Equal(t, Money(3500), fee)
}

func TestFeeExpressMultiplier(t *testing.T) {
	calc := Calculator{Rates: testRates()}
	fee, err := calc.Fee(FeeInput{Method: MethodExpress, Destination: "EG", CartTotal: 10000, WeightKg: 2})
	require.NoError(t, err)
	// round((2500 + 500*2) * 1.75) = round(6125)
	require.Equal(t, Money(6125), fee)
}

func TestFeeRoundsHalfUp(t *testing.T) {
	rates := testRates()
	rates.base = 100
	rates.perKg = 0
	rates.methods[MethodExpress] = 1.125
	calc := Calculator{Rates: rates}
	fee, err := calc.Fee(FeeInput{Method: MethodExpress, Destination: "EG", CartTotal: 1000, WeightKg: 1})
	require.NoError(t, err)
	// 100 * 1.125 = 112.5 rounds to 113
	require.Equal(t, Money(113), fee)
}

func TestFeeFreeMethodAlwaysZero(t *testing.T) {
	calc := Calculator{Rates: testRates()}
	fee, err := calc.Fee(FeeInput{Method: MethodFree, Destination: "EG", CartTotal: 0, WeightKg: 25})
	require.NoError(t, err)
	require.Zero(t, fee)
}

func TestFeeFreeOverThreshold(t *testing.T) {
	calc := Calculator{Rates: testRates()}

	fee, err := calc.Fee(FeeInput{Method: MethodStandard, Destination: "EG", CartTotal: 50000, WeightKg: 2})
	require.NoError(t, err)
	require.Zero(t, fee, "at the threshold shipping is free")

	fee, err = calc.Fee(FeeInput{Method: MethodStandard, Destination: "EG", CartTotal: 49999, WeightKg: 2})
	require.NoError(t, err)
	require.Equal(t, Money(3500), fee, "below the threshold the fee applies")
}

func TestFeeZeroThresholdDisablesFreeShipping(t *testing.T) {
	rates := testRates()
	rates.freeOver = 0
	calc := Calculator{Rates: rates}
	fee, err := calc.Fee(FeeInput{Method: MethodStandard, Destination: "EG", CartTotal: 1 << 40, WeightKg: 1})
	require.NoError(t, err)
	require.Equal(t, Money(3000), fee)
}

func TestFeeInvalidInput(t *testing.T) {
	calc := Calculator{Rates: testRates()}
	cases := []struct {
		name string
		in   FeeInput
	}{
		{"negative total", FeeInput{Method: MethodStandard, CartTotal: -1, WeightKg: 1}},
		{"zero weight", FeeInput{Method: MethodStandard, CartTotal: 100, WeightKg: 0}},
		{"negative weight", FeeInput{Method: MethodStandard, CartTotal: 100, WeightKg: -2}},
		{"nan weight", FeeInput{Method: MethodStandard, CartTotal: 100, WeightKg: math.NaN()}},
		{"inf weight", FeeInput{Method: MethodStandard, CartTotal: 100, WeightKg: math.Inf(1)}},
		{"unknown method", FeeInput{Method: "drone", CartTotal: 100, WeightKg: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.Fee(tc.in)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestParseMethod(t *testing.T) {
	method, ok := ParseMethod("  Express ")
	require.True(t, ok)
	require.Equal(t, MethodExpress, method)

	_, ok = ParseMethod("overnight")
	require.False(t, ok)
}
