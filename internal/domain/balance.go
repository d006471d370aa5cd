package domain

import (
	"math"
	"strconv"
	"strings"
)

// Debt record payment statuses, evaluated in ComputeBalance order.
const (
	StatusUnpaid     = "unpaid"
	StatusMostlyPaid = "mostly-paid"
	StatusComplete   = "complete"
)

// Balance holds the computed money fields for one debt record or one
// customer aggregate.
type Balance struct {
	TotalAmount int64  `json:"total_amount"`
	PaidAmount  int64  `json:"paid_amount"`
	Remaining   int64  `json:"remaining"`
	Status      string `json:"status"`
}

// ParseCostField coerces a user-entered cost value into an amount.
// Blank or unparsable input is zero; cost fields come from form inputs and
// must never break balance display.
func ParseCostField(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int64(math.Round(f))
	}
	// form inputs sometimes carry thousand separators ("1.250.000", "1,250,000")
	clean := strings.NewReplacer(".", "", ",", "", " ", "").Replace(s)
	if clean == "" {
		return 0
	}
	if n, err := strconv.ParseInt(clean, 10, 64); err == nil {
		return n
	}
	return 0
}

// TotalAmount recomputes a record's total: base freight plus every
// supplemental fee.
func TotalAmount(baseFreight int64, supplementalFees ...int64) int64 {
	total := baseFreight
	for _, fee := range supplementalFees {
		total += fee
	}
	return total
}

// ComputeBalance derives remaining and status from a total and the paid sum.
// Overpayment surfaces as negative remaining; it is never floored at zero.
//
// Status rules, in order:
//  1. zero total is always unpaid (an empty record is never complete)
//  2. remaining exactly zero is complete
//  3. remaining at most 20% of total is mostly-paid
//  4. anything else is unpaid
func ComputeBalance(totalAmount, paidAmount int64) Balance {
	b := Balance{
		TotalAmount: totalAmount,
		PaidAmount:  paidAmount,
		Remaining:   totalAmount - paidAmount,
	}

	switch {
	case totalAmount == 0:
		b.Status = StatusUnpaid
	case b.Remaining == 0:
		b.Status = StatusComplete
	case b.Remaining*5 <= totalAmount:
		b.Status = StatusMostlyPaid
	default:
		b.Status = StatusUnpaid
	}
	return b
}
