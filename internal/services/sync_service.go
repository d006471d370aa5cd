package services

import (
	"fmt"
	"strings"

	"truckledger/internal/domain"
	"truckledger/internal/domain/models"
	"truckledger/internal/repositories"
	"truckledger/internal/utils"
)

// SyncResult summarizes one bulk sync run. Failed carries the trip codes of
// per-record errors; the batch itself never aborts for one bad record.
type SyncResult struct {
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	Existing       int      `json:"existing"`
	SkippedLocked  int      `json:"skipped_locked"`
	SkippedInvalid int      `json:"skipped_invalid"`
	Failed         []string `json:"failed,omitempty"`
}

// SyncService projects trips onto odd-debt records. The projection is a
// three-way decision per trip: absent (create), present and unlocked
// (overwrite trip-owned fields), present and locked (skip entirely).
type SyncService struct {
	TripsRepo repositories.TripsRepository
	DebtRepo  repositories.DebtRepository
	RequestID string
}

// CreateOddDebts runs the creation path only: debt records are created for
// never-before-seen trip codes, existing records are left untouched.
func (s SyncService) CreateOddDebts(startDate, endDate string) (SyncResult, error) {
	return s.run(startDate, endDate, true)
}

// SyncOddDebts runs the full projection including updates of existing
// unlocked records. Running it twice with unchanged trips yields identical
// field values.
func (s SyncService) SyncOddDebts(startDate, endDate string) (SyncResult, error) {
	return s.run(startDate, endDate, false)
}

func (s SyncService) run(startDate, endDate string, createOnly bool) (SyncResult, error) {
	var res SyncResult

	if err := ValidateDateRange(startDate, endDate); err != nil {
		return res, err
	}

	trips, err := s.TripsRepo.ListByDeliveryDateRange(startDate, endDate)
	if err != nil {
		// fail closed before any write; the caller can retry safely
		return res, err
	}

	for _, trip := range trips {
		if strings.TrimSpace(trip.TripCode) == "" {
			res.SkippedInvalid++
			continue
		}

		existing, found, err := s.DebtRepo.GetByTripCode(trip.TripCode)
		if err != nil {
			res.Failed = append(res.Failed, trip.TripCode)
			continue
		}

		switch {
		case !found:
			if err := s.DebtRepo.Insert(NewDebtFromTrip(trip)); err != nil {
				res.Failed = append(res.Failed, trip.TripCode)
				continue
			}
			res.Created++
		case existing.IsLocked:
			res.SkippedLocked++
		case createOnly:
			// creation path leaves existing records alone
			res.Existing++
		default:
			if err := s.DebtRepo.UpdateFromTrip(MergeTripIntoDebt(existing, trip)); err != nil {
				res.Failed = append(res.Failed, trip.TripCode)
				continue
			}
			res.Updated++
		}
	}

	utils.LogEvent(s.RequestID, "sync", mode(createOnly),
		fmt.Sprintf("range=%s..%s created=%d updated=%d locked=%d invalid=%d failed=%d",
			startDate, endDate, res.Created, res.Updated, res.SkippedLocked, res.SkippedInvalid, len(res.Failed)))
	return res, nil
}

func mode(createOnly bool) string {
	if createOnly {
		return "create"
	}
	return "sync"
}

// NewDebtFromTrip builds a fresh debt record: every descriptive and cost
// field copied from the trip, total computed, lock off.
func NewDebtFromTrip(t models.Trip) models.DebtRecord {
	d := models.DebtRecord{
		TripCode:         strings.TrimSpace(t.TripCode),
		CustomerCode:     t.CustomerCode,
		CustomerName:     t.CustomerName,
		Description:      t.Description,
		LoadDate:         t.LoadDate,
		DeliveryDate:     t.DeliveryDate,
		OriginPoint:      t.OriginPoint,
		DestinationPoint: t.DestinationPoint,
		PointCount:       t.PointCount,
		Weight:           t.Weight,
		PlateNumber:      t.PlateNumber,
		DriverName:       t.DriverName,
		BaseFreight:      t.BaseFreight,
		LoadingFee:       t.LoadingFee,
		TicketFee:        t.TicketFee,
		ReturnCargoFee:   t.ReturnCargoFee,
		ShiftHoldingFee:  t.ShiftHoldingFee,
		ExtraPointFee:    t.ExtraPointFee,
		OtherFee:         t.OtherFee,
		IsLocked:         false,
	}
	d.TotalAmount = domain.TotalAmount(d.BaseFreight,
		d.LoadingFee, d.TicketFee, d.ReturnCargoFee, d.ShiftHoldingFee, d.ExtraPointFee, d.OtherFee)
	return d
}

// MergeTripIntoDebt overwrites the trip-owned fields of an existing record:
// descriptive columns and base freight follow the trip (authoritative source
// wins), while the ledger-owned supplemental fees, note and highlight are
// preserved. The total is recomputed from the merged record.
func MergeTripIntoDebt(existing models.DebtRecord, t models.Trip) models.DebtRecord {
	d := existing
	d.CustomerCode = t.CustomerCode
	d.CustomerName = t.CustomerName
	d.Description = t.Description
	d.LoadDate = t.LoadDate
	d.DeliveryDate = t.DeliveryDate
	d.OriginPoint = t.OriginPoint
	d.DestinationPoint = t.DestinationPoint
	d.PointCount = t.PointCount
	d.Weight = t.Weight
	d.PlateNumber = t.PlateNumber
	d.DriverName = t.DriverName
	d.BaseFreight = t.BaseFreight
	d.TotalAmount = domain.TotalAmount(d.BaseFreight,
		d.LoadingFee, d.TicketFee, d.ReturnCargoFee, d.ShiftHoldingFee, d.ExtraPointFee, d.OtherFee)
	return d
}

// ValidateDateRange checks an inclusive YYYY-MM-DD range.
func ValidateDateRange(startDate, endDate string) error {
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return domain.ValidationError{Field: "start_date", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return domain.ValidationError{Field: "end_date", Msg: "format tanggal harus YYYY-MM-DD"}
	}
	if end.Before(start) {
		return domain.ValidationError{Field: "end_date", Msg: "tanggal akhir sebelum tanggal awal"}
	}
	return nil
}
