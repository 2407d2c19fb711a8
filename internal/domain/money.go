package domain

import "github.com/shopspring/decimal"

const centsPlaces = 2

// RoundPrice rounds an amount to whole cents.
func RoundPrice(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(centsPlaces).InexactFloat64()
}

// LineTotal returns price × quantity rounded to cents.
func LineTotal(price float64, quantity int) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(centsPlaces).
		InexactFloat64()
}

// SumTotals adds already rounded line totals without accumulating float drift.
func SumTotals(lineTotals ...float64) float64 {
	sum := decimal.Zero
	for _, t := range lineTotals {
		sum = sum.Add(decimal.NewFromFloat(t))
	}
	return sum.Round(centsPlaces).InexactFloat64()
}
