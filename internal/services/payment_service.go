package services

import (
	"fmt"
	"strings"

	"truckledger/internal/domain"
	"truckledger/internal/domain/models"
	"truckledger/internal/repositories"
	"truckledger/internal/utils"
)

// PaymentService appends ledger entries and computes balances. A payment's
// allocation mode is chosen by which identifier the caller supplies; the two
// modes are kept strictly apart when a balance is computed.
type PaymentService struct {
	PaymentRepo repositories.PaymentRepository
	DebtRepo    repositories.DebtRepository
	RequestID   string
}

// AddPaymentInput is the add-payment request. Exactly one of CustomerCode /
// TripCode must be set.
type AddPaymentInput struct {
	CustomerCode string `json:"customer_code"`
	TripCode     string `json:"trip_code"`
	Amount       int64  `json:"amount"`
	Method       string `json:"method"`
	Note         string `json:"note"`
}

// AddPayment validates and appends one entry. Appending never mutates any
// debt record's total; entries are immutable afterwards.
func (s PaymentService) AddPayment(in AddPaymentInput) (models.PaymentEntry, error) {
	customer := strings.TrimSpace(in.CustomerCode)
	trip := strings.TrimSpace(in.TripCode)

	switch {
	case customer == "" && trip == "":
		return models.PaymentEntry{}, domain.ValidationError{Field: "customer_code", Msg: "isi customer_code atau trip_code"}
	case customer != "" && trip != "":
		return models.PaymentEntry{}, domain.ValidationError{Field: "trip_code", Msg: "customer_code dan trip_code tidak boleh diisi bersamaan"}
	}
	if in.Amount <= 0 {
		return models.PaymentEntry{}, domain.ValidationError{Field: "amount", Msg: "nominal harus lebih dari 0"}
	}
	method := strings.ToLower(strings.TrimSpace(in.Method))
	if !models.ValidMethod(method) {
		return models.PaymentEntry{}, domain.ValidationError{Field: "method", Msg: "metode pembayaran tidak dikenal"}
	}

	entry := models.PaymentEntry{
		Amount: in.Amount,
		Method: method,
		Note:   strings.TrimSpace(in.Note),
	}
	if trip != "" {
		if _, found, err := s.DebtRepo.GetByTripCode(trip); err != nil {
			return models.PaymentEntry{}, err
		} else if !found {
			return models.PaymentEntry{}, domain.NotFoundError{Resource: "debt record"}
		}
		entry.AllocMode = models.AllocTrip
		entry.TripCode = trip
	} else {
		entry.AllocMode = models.AllocCustomer
		entry.CustomerCode = customer
	}

	id, err := s.PaymentRepo.Insert(entry)
	if err != nil {
		return models.PaymentEntry{}, err
	}
	entry.ID = id

	utils.LogEvent(s.RequestID, "payment", "add",
		fmt.Sprintf("mode=%s customer=%s trip=%s amount=%d", entry.AllocMode, entry.CustomerCode, entry.TripCode, entry.Amount))
	return entry, nil
}

// TripPaymentHistory lists the trip-mode entries of one debt record.
func (s PaymentService) TripPaymentHistory(tripCode string) ([]models.PaymentEntry, error) {
	if _, found, err := s.DebtRepo.GetByTripCode(tripCode); err != nil {
		return nil, err
	} else if !found {
		return nil, domain.NotFoundError{Resource: "debt record"}
	}
	return s.PaymentRepo.ListByTripCode(tripCode)
}

// TripBalance computes the per-trip balance: paid is the sum of this trip's
// own entries, so remaining nets to zero independently of other trips.
func (s PaymentService) TripBalance(tripCode string) (models.DebtRecord, domain.Balance, error) {
	rec, found, err := s.DebtRepo.GetByTripCode(tripCode)
	if err != nil {
		return models.DebtRecord{}, domain.Balance{}, err
	}
	if !found {
		return models.DebtRecord{}, domain.Balance{}, domain.NotFoundError{Resource: "debt record"}
	}

	paid, err := s.PaymentRepo.SumTripPayments(rec.TripCode)
	if err != nil {
		return models.DebtRecord{}, domain.Balance{}, err
	}
	return rec, domain.ComputeBalance(rec.TotalAmount, paid), nil
}

// CustomerBalance is the aggregate view of one customer's ledger.
type CustomerBalance struct {
	CustomerCode string               `json:"customer_code"`
	DebtCount    int                  `json:"debt_count"`
	Balance      domain.Balance       `json:"balance"`
	Debts        []models.DebtRecord  `json:"debts"`
	Payments     []models.PaymentEntry `json:"payments"`
}

// CustomerAggregateBalance sums customer-mode payments against the total of
// all the customer's debt records. Trip-mode payments are excluded on
// purpose; per-trip remaining in this mode is informational only.
func (s PaymentService) CustomerAggregateBalance(customerCode string) (CustomerBalance, error) {
	code := strings.TrimSpace(customerCode)
	if code == "" {
		return CustomerBalance{}, domain.ValidationError{Field: "customer_code", Msg: "kode customer kosong"}
	}

	debts, err := s.DebtRepo.ListByCustomer(code)
	if err != nil {
		return CustomerBalance{}, err
	}
	payments, err := s.PaymentRepo.ListByCustomerCode(code)
	if err != nil {
		return CustomerBalance{}, err
	}

	var total, paid int64
	for _, d := range debts {
		total += d.TotalAmount
	}
	for _, p := range payments {
		paid += p.Amount
	}

	return CustomerBalance{
		CustomerCode: code,
		DebtCount:    len(debts),
		Balance:      domain.ComputeBalance(total, paid),
		Debts:        debts,
		Payments:     payments,
	}, nil
}
