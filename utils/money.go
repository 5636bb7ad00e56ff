package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// LineTotal computes the total price in paise for one line item:
// round(quantity * unit price). Quantity may be fractional (weight-based items).
func LineTotal(quantity decimal.Decimal, pricePaise int64) int64 {
	return quantity.Mul(decimal.NewFromInt(pricePaise)).Round(0).IntPart()
}

// PaiseToRupees converts an amount in paise to whole rupees, rounding half away
// from zero.
func PaiseToRupees(paise int64) int64 {
	neg := paise < 0
	if neg {
		paise = -paise
	}
	rupees := (paise + 50) / 100
	if neg {
		return -rupees
	}
	return rupees
}

// FormatRupees formats an amount given in paise as a string like "₹1,23,456.50".
// Uses Indian digit grouping: the last three digits form one group, every group
// before that has two digits. The paise suffix is omitted for whole-rupee amounts.
func FormatRupees(paise int64) string {
	neg := paise < 0
	if neg {
		paise = -paise
	}

	rupees := paise / 100
	frac := paise % 100

	s := strconv.FormatInt(rupees, 10)

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + ₹ + paise suffix
	b.Grow(len(s) + len(s)/2 + 8)
	if neg {
		b.WriteString("-₹")
	} else {
		b.WriteString("₹")
	}

	if len(s) <= 3 {
		b.WriteString(s)
	} else {
		// Head digits before the final group of three, split into pairs.
		head := s[:len(s)-3]
		rem := len(head) % 2
		if rem == 0 {
			rem = 2
		}
		b.WriteString(head[:rem])
		for i := rem; i < len(head); i += 2 {
			b.WriteByte(',')
			b.WriteString(head[i : i+2])
		}
		b.WriteByte(',')
		b.WriteString(s[len(s)-3:])
	}

	if frac != 0 {
		b.WriteByte('.')
		if frac < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatInt(frac, 10))
	}

	return b.String()
}
