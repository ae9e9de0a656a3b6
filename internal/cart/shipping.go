package cart

import "github.com/shopspring/decimal"

// ShippingMethod selects one of the fixed shipping options. The value is
// sent verbatim as the "shipping" field of the checkout request.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// shippingTable maps each method to its flat surcharge. The surcharge is a
// display/checkout-time constant; it is never sent to the backend as a price.
var shippingTable = map[ShippingMethod]decimal.Decimal{
	ShippingStandard: decimal.NewFromInt(10),
	ShippingExpress:  decimal.NewFromInt(25),
}

// ShippingCost returns the flat surcharge for a method. Unknown methods cost
// zero, mirroring the lenient lookup the storefront always had.
func ShippingCost(m ShippingMethod) decimal.Decimal {
	if cost, ok := shippingTable[m]; ok {
		return cost
	}
	return decimal.Zero
}

// Valid reports whether m is one of the fixed shipping options.
func (m ShippingMethod) Valid() bool {
	_, ok := shippingTable[m]
	return ok
}
