package services

import (
	"sort"

	"truckledger/internal/domain"
	"truckledger/internal/repositories"
)

// DebtSummaryFilter narrows the report to an inclusive delivery-date range.
// Blank bounds leave that side open.
type DebtSummaryFilter struct {
	StartDate string
	EndDate   string
}

// DebtSummaryRow aggregates one customer's position. TripPaid and
// CustomerPaid are reported side by side, never blended: the balance column
// uses the customer-mode aggregate rule only.
type DebtSummaryRow struct {
	CustomerCode string         `json:"customer_code"`
	CustomerName string         `json:"customer_name"`
	TripCount    int            `json:"trip_count"`
	LockedCount  int            `json:"locked_count"`
	TotalAmount  int64          `json:"total_amount"`
	TripPaid     int64          `json:"trip_paid"`
	CustomerPaid int64          `json:"customer_paid"`
	Balance      domain.Balance `json:"balance"`
}

type ReportsService struct {
	DebtRepo    repositories.DebtRepository
	PaymentRepo repositories.PaymentRepository
}

// DebtSummary groups the debt ledger per customer for the requested range.
func (s ReportsService) DebtSummary(f DebtSummaryFilter) ([]DebtSummaryRow, error) {
	debts, err := s.DebtRepo.ListInRange(f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}

	customerPaid, err := s.PaymentRepo.SumCustomerPaymentsGrouped()
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(debts))
	for _, d := range debts {
		codes = append(codes, d.TripCode)
	}
	tripPaid, err := s.PaymentRepo.SumTripPaymentsIn(codes)
	if err != nil {
		return nil, err
	}

	byCustomer := map[string]*DebtSummaryRow{}
	for _, d := range debts {
		row, ok := byCustomer[d.CustomerCode]
		if !ok {
			row = &DebtSummaryRow{
				CustomerCode: d.CustomerCode,
				CustomerName: d.CustomerName,
				CustomerPaid: customerPaid[d.CustomerCode],
			}
			byCustomer[d.CustomerCode] = row
		}
		row.TripCount++
		if d.IsLocked {
			row.LockedCount++
		}
		row.TotalAmount += d.TotalAmount
		row.TripPaid += tripPaid[d.TripCode]
	}

	out := make([]DebtSummaryRow, 0, len(byCustomer))
	for _, row := range byCustomer {
		row.Balance = domain.ComputeBalance(row.TotalAmount, row.CustomerPaid)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerCode < out[j].CustomerCode })
	return out, nil
}
