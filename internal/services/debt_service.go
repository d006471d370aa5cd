package services

import (
	"fmt"
	"math"

	"truckledger/internal/domain"
	"truckledger/internal/domain/models"
	"truckledger/internal/repositories"
	"truckledger/internal/utils"
)

// DebtService covers the debt-record list screen and direct edits.
type DebtService struct {
	DebtRepo    repositories.DebtRepository
	PaymentRepo repositories.PaymentRepository
	RequestID   string
}

// DebtWithBalance joins a record with its computed per-trip balance.
type DebtWithBalance struct {
	models.DebtRecord
	Balance domain.Balance `json:"balance"`
}

// DebtListResult is one page of the list screen.
type DebtListResult struct {
	Items []DebtWithBalance `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// List returns a filtered, sorted page with balances. Paid amounts here use
// the per-trip allocation mode; customer-mode aggregates live on the
// customer balance endpoint.
func (s DebtService) List(f repositories.DebtFilter, page, limit int, sort string) (DebtListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 50
	}

	records, total, err := s.DebtRepo.List(f, page, limit, sort)
	if err != nil {
		return DebtListResult{}, err
	}

	codes := make([]string, 0, len(records))
	for _, d := range records {
		codes = append(codes, d.TripCode)
	}
	paidByTrip, err := s.PaymentRepo.SumTripPaymentsIn(codes)
	if err != nil {
		return DebtListResult{}, err
	}

	items := make([]DebtWithBalance, 0, len(records))
	for _, d := range records {
		items = append(items, DebtWithBalance{
			DebtRecord: d,
			Balance:    domain.ComputeBalance(d.TotalAmount, paidByTrip[d.TripCode]),
		})
	}

	return DebtListResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// Get returns one record with its per-trip balance.
func (s DebtService) Get(tripCode string) (DebtWithBalance, error) {
	rec, found, err := s.DebtRepo.GetByTripCode(tripCode)
	if err != nil {
		return DebtWithBalance{}, err
	}
	if !found {
		return DebtWithBalance{}, domain.NotFoundError{Resource: "debt record"}
	}

	paid, err := s.PaymentRepo.SumTripPayments(rec.TripCode)
	if err != nil {
		return DebtWithBalance{}, err
	}
	return DebtWithBalance{DebtRecord: rec, Balance: domain.ComputeBalance(rec.TotalAmount, paid)}, nil
}

// UpdateCostFields edits supplemental fees (and base freight) directly on a
// record. Locked records are rejected before anything is written; the total
// is recomputed from the merged values.
func (s DebtService) UpdateCostFields(tripCode string, fields map[string]any) (models.DebtRecord, error) {
	if len(fields) == 0 {
		return models.DebtRecord{}, domain.ValidationError{Field: "fields", Msg: "tidak ada kolom biaya yang diubah"}
	}

	rec, found, err := s.DebtRepo.GetByTripCode(tripCode)
	if err != nil {
		return models.DebtRecord{}, err
	}
	if !found {
		return models.DebtRecord{}, domain.NotFoundError{Resource: "debt record"}
	}
	if rec.IsLocked {
		return models.DebtRecord{}, domain.LockedError{TripCode: rec.TripCode}
	}

	resolved := map[string]int64{}
	for field, raw := range fields {
		col, ok := repositories.CostColumn(field)
		if !ok {
			return models.DebtRecord{}, domain.ValidationError{Field: field, Msg: "bukan kolom biaya"}
		}
		resolved[col] = coerceCost(raw)
	}

	merged := applyCostColumns(rec, resolved)
	merged.TotalAmount = domain.TotalAmount(merged.BaseFreight,
		merged.LoadingFee, merged.TicketFee, merged.ReturnCargoFee,
		merged.ShiftHoldingFee, merged.ExtraPointFee, merged.OtherFee)

	aff, err := s.DebtRepo.UpdateCostFields(merged.TripCode, resolved, merged.TotalAmount)
	if err != nil {
		return models.DebtRecord{}, err
	}
	if aff == 0 {
		// the record may have been locked (or deleted) between the pre-check
		// and the is_locked=0-guarded write
		current, found, err := s.DebtRepo.GetByTripCode(merged.TripCode)
		if err != nil {
			return models.DebtRecord{}, err
		}
		if !found {
			return models.DebtRecord{}, domain.NotFoundError{Resource: "debt record"}
		}
		if current.IsLocked {
			return models.DebtRecord{}, domain.LockedError{TripCode: current.TripCode}
		}
		// identical values; nothing changed
	}

	utils.LogEvent(s.RequestID, "debt", "update_costs",
		fmt.Sprintf("trip_code=%s fields=%d total=%d", merged.TripCode, len(resolved), merged.TotalAmount))
	return merged, nil
}

// UpdateAnnotations edits note/highlight. Allowed even while locked; closing
// a period must not stop bookkeeping notes.
func (s DebtService) UpdateAnnotations(tripCode string, note, highlightTag *string) error {
	if note == nil && highlightTag == nil {
		return domain.ValidationError{Field: "note", Msg: "tidak ada perubahan"}
	}
	return s.DebtRepo.UpdateAnnotations(tripCode, note, highlightTag)
}

// DeleteByDateRange is the only deletion path for debt records.
func (s DebtService) DeleteByDateRange(startDate, endDate string) (int64, error) {
	if err := ValidateDateRange(startDate, endDate); err != nil {
		return 0, err
	}
	deleted, err := s.DebtRepo.DeleteByDateRange(startDate, endDate)
	if err != nil {
		return 0, err
	}
	utils.LogEvent(s.RequestID, "debt", "delete_range",
		fmt.Sprintf("range=%s..%s deleted=%d", startDate, endDate, deleted))
	return deleted, nil
}

func applyCostColumns(rec models.DebtRecord, cols map[string]int64) models.DebtRecord {
	for col, val := range cols {
		switch col {
		case "base_freight":
			rec.BaseFreight = val
		case "loading_fee":
			rec.LoadingFee = val
		case "ticket_fee":
			rec.TicketFee = val
		case "return_cargo_fee":
			rec.ReturnCargoFee = val
		case "shift_holding_fee":
			rec.ShiftHoldingFee = val
		case "extra_point_fee":
			rec.ExtraPointFee = val
		case "other_fee":
			rec.OtherFee = val
		}
	}
	return rec
}

// coerceCost accepts the JSON shapes a cost value arrives in. Strings go
// through the single parse point; anything unparsable is zero.
func coerceCost(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return int64(math.Round(x))
	case int64:
		return x
	case int:
		return int64(x)
	case string:
		return domain.ParseCostField(x)
	default:
		return 0
	}
}
