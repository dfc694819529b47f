package pricing

// Item describes a line item used for totals calculation.
type Item struct {
	Qty       int
	UnitPrice Money
	WeightKg  float64
	Method    ShippingMethod
}

// Summary aggregates computed pricing components. Discount is reported as the
// coupon engine produced it; Total never goes below the fee portion because
// the goods subtotal is floored at zero before fees are added.
type Summary struct {
	Subtotal    Money
	Discount    Money
	ShippingFee Money
	PaymentFee  Money
	Total       Money
}

// MethodGroup accumulates the per-method shipping fee breakdown for display.
type MethodGroup struct {
	Fee   Money `json:"fee"`
	Count int   `json:"count"`
}

// Compute calculates order totals for the provided line items. Each line's
// fee is computed with its quantity-scaled weight and line total; lines with
// a non-positive unit weight ship at 1 kg per unit, negative unit prices
// count as zero.
func Compute(items []Item, discount, paymentFee Money, destination string, calc Calculator) (Summary, map[ShippingMethod]MethodGroup, error) {
	var subtotal, shipping Money
	groups := make(map[ShippingMethod]MethodGroup)
	for _, it := range items {
		if it.Qty <= 0 {
			continue
		}
		price := it.UnitPrice
		if price < 0 {
			price = 0
		}
		lineTotal := Money(it.Qty) * price
		subtotal += lineTotal

		weight := it.WeightKg
		if weight <= 0 {
			weight = 1
		}
		fee, err := calc.Fee(FeeInput{
			Method:      it.Method,
			Destination: destination,
			CartTotal:   lineTotal,
			WeightKg:    weight * float64(it.Qty),
		})
		if err != nil {
			return Summary{}, nil, err
		}
		shipping += fee

		group := groups[it.Method]
		group.Fee += fee
		group.Count++
		groups[it.Method] = group
	}
	if discount < 0 {
		discount = 0
	}
	if paymentFee < 0 {
		paymentFee = 0
	}
	goods := subtotal - discount
	if goods < 0 {
		goods = 0
	}
	return Summary{
		Subtotal:    subtotal,
		Discount:    discount,
		ShippingFee: shipping,
		PaymentFee:  paymentFee,
		Total:       goods + shipping + paymentFee,
	}, groups, nil
}
