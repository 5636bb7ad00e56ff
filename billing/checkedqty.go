package billing

import (
	"github.com/shopspring/decimal"

	"pos-billing/models"
)

var one = decimal.NewFromInt(1)

// NextCheckedQty computes the next picked quantity for one line item given a
// fulfillment action and the ordered quantity. Pure and deterministic.
//
// Picking moves in whole-unit steps, but ordered quantities may be fractional
// (weight-based items such as 3.75 kg). An increment that would overshoot the
// ordered quantity lands exactly on the fractional remainder instead; a
// decrement from the fractional top drops only the remainder, not a full
// unit. For orderedQty 3.75 repeated increments yield 1, 2, 3, 3.75 and
// repeated decrements from 3.75 yield 3, 2, 1, 0.
//
// The result is always clamped to [0, orderedQty].
func NextCheckedQty(action models.CheckedQtyAction, orderedQty, currentCheckedQty decimal.Decimal) decimal.Decimal {
	if orderedQty.IsNegative() {
		orderedQty = decimal.Zero
	}

	var next decimal.Decimal
	switch action {
	case models.CheckedQtyIncrement:
		next = currentCheckedQty.Add(one)
		if next.GreaterThan(orderedQty) {
			remainder := orderedQty.Mod(one).Round(2)
			next = currentCheckedQty.Add(remainder)
		}
	case models.CheckedQtyDecrement:
		next = currentCheckedQty.Sub(one)
		currentFrac := currentCheckedQty.Mod(one).Round(2)
		if !currentFrac.IsZero() && currentCheckedQty.Equal(orderedQty) {
			// Sitting exactly at the fractional top: drop the remainder only.
			next = currentCheckedQty.Floor()
		}
	default:
		next = currentCheckedQty
	}

	if next.IsNegative() {
		next = decimal.Zero
	}
	if next.GreaterThan(orderedQty) {
		next = orderedQty
	}
	return next
}
