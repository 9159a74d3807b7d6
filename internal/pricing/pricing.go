// Package pricing holds the pure cart arithmetic. All functions are
// referentially transparent; amounts are IDR, which has no minor units, so
// tax rounds to the nearest whole unit.
package pricing

import "math"

// DefaultTaxRate is the PPN fraction applied to cart subtotals
const DefaultTaxRate = 0.11

// Line is a (price, quantity) pair
type Line struct {
	Price    float64
	Quantity int
}

// Subtotal sums price×quantity over all lines. Returns 0 for an empty list.
func Subtotal(lines []Line) float64 {
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Price * float64(line.Quantity)
	}
	return subtotal
}

// Tax computes round(subtotal × rate) to the nearest whole currency unit
func Tax(subtotal, rate float64) float64 {
	return math.Round(subtotal * rate)
}

// Total is subtotal + tax
func Total(subtotal, tax float64) float64 {
	return subtotal + tax
}
