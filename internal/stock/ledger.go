package stock

import "github.com/shopspring/decimal"

// Apply returns the balance after moving qty in the given direction.
//
// Out movements never fail: a balance that would go negative is floored at
// zero and overdrawn is reported as true.
func Apply(current decimal.Decimal, dir Direction, qty decimal.Decimal) (next decimal.Decimal, overdrawn bool) {
	if dir == DirectionIn {
		return current.Add(qty), false
	}

	next = current.Sub(qty)
	if next.IsNegative() {
		return decimal.Zero, true
	}

	return next, false
}
