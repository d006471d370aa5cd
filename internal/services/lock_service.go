package services

import (
	"fmt"

	"truckledger/internal/domain"
	"truckledger/internal/domain/models"
	"truckledger/internal/repositories"
	"truckledger/internal/utils"
)

// LockService drives the two-state lock on debt records. Once locked, every
// money-mutating path refuses the record; note and highlight stay editable.
type LockService struct {
	DebtRepo  repositories.DebtRepository
	RequestID string
}

// ToggleLock flips the lock flag of one record and returns the new state.
func (s LockService) ToggleLock(tripCode string) (models.DebtRecord, error) {
	existing, found, err := s.DebtRepo.GetByTripCode(tripCode)
	if err != nil {
		return models.DebtRecord{}, err
	}
	if !found {
		return models.DebtRecord{}, domain.NotFoundError{Resource: "debt record"}
	}

	next := !existing.IsLocked
	if err := s.DebtRepo.SetLocked(existing.TripCode, next); err != nil {
		return models.DebtRecord{}, err
	}
	existing.IsLocked = next

	utils.LogEvent(s.RequestID, "lock", "toggle",
		fmt.Sprintf("trip_code=%s locked=%t", existing.TripCode, next))
	return existing, nil
}

// LockRange locks every record in the inclusive delivery-date range.
// Idempotent: already-locked records are untouched.
func (s LockService) LockRange(startDate, endDate string) (int64, error) {
	if err := ValidateDateRange(startDate, endDate); err != nil {
		return 0, err
	}

	locked, err := s.DebtRepo.LockRange(startDate, endDate)
	if err != nil {
		return 0, err
	}

	utils.LogEvent(s.RequestID, "lock", "lock_range",
		fmt.Sprintf("range=%s..%s locked=%d", startDate, endDate, locked))
	return locked, nil
}
