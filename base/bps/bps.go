// Package bps implements basis point arithmetic on integer base-unit amounts.
// 10000 basis points is 100%.
package bps

import "github.com/shopspring/decimal"

// Denominator is the basis point value of 100%
const Denominator int64 = 10000

var denominator = decimal.NewFromInt(Denominator)

// IsValid reports whether v lies within [0, Denominator]
func IsValid(v int64) bool {
	return v >= 0 && v <= Denominator
}

// Of returns floor(amount * v / 10000) for a non-negative amount
func Of(amount decimal.Decimal, v int64) decimal.Decimal {
	q, _ := amount.Mul(decimal.NewFromInt(v)).QuoRem(denominator, 0)
	return q
}

// CeilOf returns ceil(amount * v / 10000) for a non-negative amount
func CeilOf(amount decimal.Decimal, v int64) decimal.Decimal {
	q, r := amount.Mul(decimal.NewFromInt(v)).QuoRem(denominator, 0)
	if r.Sign() > 0 {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q
}

// Min returns the smaller of a and b
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// IsWhole reports whether amount is a non-negative integer number of base units
func IsWhole(amount decimal.Decimal) bool {
	return amount.Sign() >= 0 && amount.Equal(amount.Truncate(0))
}
