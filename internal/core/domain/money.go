package domain

import "github.com/shopspring/decimal"

// Monetary amounts carry two fractional digits, quantities three.
// Rounding is banker's rounding for money and truncation for quantities, so
// repeated blending never accumulates more than the comparison epsilons.
const (
	MoneyScale    = 2
	QuantityScale = 3
)

// MoneyEpsilon and QuantityEpsilon bound the drift tolerated by the stock
// identity checks (total_value vs on_hand x unit_cost).
var (
	MoneyEpsilon    = decimal.New(1, -MoneyScale)    // 0.01
	QuantityEpsilon = decimal.New(1, -QuantityScale) // 0.001
)

// RoundMoney rounds an amount to the money scale using banker's rounding.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyScale)
}

// TruncQuantity truncates a quantity to the quantity scale.
func TruncQuantity(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(QuantityScale)
}

// MoneyEqual reports whether two monetary amounts are equal within MoneyEpsilon.
func MoneyEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(MoneyEpsilon)
}

// QuantityEqual reports whether two quantities are equal within QuantityEpsilon.
func QuantityEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(QuantityEpsilon)
}

// BlendUnitCost applies the weighted-average costing rule: blending qty units
// at cost into onHand units valued at unitCost. When the combined quantity is
// not positive the incoming cost wins.
func BlendUnitCost(onHand, unitCost, qty, cost decimal.Decimal) decimal.Decimal {
	combined := onHand.Add(qty)
	if combined.Sign() <= 0 {
		return RoundMoney(cost)
	}
	total := onHand.Mul(unitCost).Add(qty.Mul(cost))
	return RoundMoney(total.Div(combined))
}
