package models

import "strings"

// Allocation modes for a payment entry. A customer-mode entry reduces the
// customer's aggregate outstanding total; a trip-mode entry nets against one
// trip's debt record independently. The two are never mixed in one figure.
const (
	AllocCustomer = "customer"
	AllocTrip     = "trip"
)

// Accepted payment methods.
const (
	MethodPersonalCash  = "personal-cash"
	MethodPersonalBankA = "personal-bank-a"
	MethodPersonalBankB = "personal-bank-b"
	MethodCompanyBankA  = "company-bank-a"
	MethodCompanyBankB  = "company-bank-b"
	MethodCash          = "cash"
	MethodOther         = "other"
)

// PaymentEntry is one append-only ledger row. Entries are immutable after
// insert; there is no update or delete path.
type PaymentEntry struct {
	ID           int64  `json:"id"`
	AllocMode    string `json:"alloc_mode"`
	CustomerCode string `json:"customer_code,omitempty"`
	TripCode     string `json:"trip_code,omitempty"`
	Amount       int64  `json:"amount"`
	Method       string `json:"method"`
	Note         string `json:"note"`
	CreatedAt    string `json:"created_at"`
}

// ValidMethod reports whether m belongs to the closed method set.
func ValidMethod(m string) bool {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case MethodPersonalCash, MethodPersonalBankA, MethodPersonalBankB,
		MethodCompanyBankA, MethodCompanyBankB, MethodCash, MethodOther:
		return true
	default:
		return false
	}
}
