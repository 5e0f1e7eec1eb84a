package domain

import "github.com/shopspring/decimal"

var (
	FreeShippingThreshold = decimal.NewFromInt(100)
	FlatShippingCost      = decimal.RequireFromString("9.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

// ShippingCost is free from the threshold up, flat below it.
func ShippingCost(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingCost
}

func Tax(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(TaxRate)
}

func GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(ShippingCost(subtotal)).Add(Tax(subtotal))
}

// AmountToFreeShipping is how much more must be spent to reach free
// shipping, zero once it applies.
func AmountToFreeShipping(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FreeShippingThreshold.Sub(subtotal)
}

type Summary struct {
	Subtotal             decimal.Decimal
	Shipping             decimal.Decimal
	Tax                  decimal.Decimal
	GrandTotal           decimal.Decimal
	AmountToFreeShipping decimal.Decimal
}

func Summarize(subtotal decimal.Decimal) Summary {
	return Summary{
		Subtotal:             subtotal,
		Shipping:             ShippingCost(subtotal),
		Tax:                  Tax(subtotal),
		GrandTotal:           GrandTotal(subtotal),
		AmountToFreeShipping: AmountToFreeShipping(subtotal),
	}
}
