package services

import (
	"fmt"

	"truckledger/internal/repositories"
	"truckledger/internal/utils"
)

// BackProjectResult summarizes one back-projection run.
type BackProjectResult struct {
	Updated        int      `json:"updated"`
	SkippedMissing int      `json:"skipped_missing"`
	Failed         []string `json:"failed,omitempty"`
}

// BackProjectService writes aggregated supplemental costs from debt records
// back onto their source trips. This is the only reverse flow in the system
// and it is bulk-only by design.
type BackProjectService struct {
	DebtRepo  repositories.DebtRepository
	TripsRepo repositories.TripsRepository
	RequestID string
}

// ProjectSupplementalCosts overwrites each trip's odd-fee total with the sum
// of its debt record's supplemental fees for the inclusive delivery-date
// range. Overwrite, not add: repeated runs land on the same value. Debt
// records without a matching trip are skipped and counted; trips are never
// created here.
func (s BackProjectService) ProjectSupplementalCosts(startDate, endDate string) (BackProjectResult, error) {
	var res BackProjectResult

	if err := ValidateDateRange(startDate, endDate); err != nil {
		return res, err
	}

	debts, err := s.DebtRepo.ListInRange(startDate, endDate)
	if err != nil {
		return res, err
	}

	for _, d := range debts {
		written, err := s.TripsRepo.UpdateOddFeeTotal(d.TripCode, d.SupplementalTotal())
		if err != nil {
			res.Failed = append(res.Failed, d.TripCode)
			continue
		}
		if !written {
			res.SkippedMissing++
			continue
		}
		res.Updated++
	}

	utils.LogEvent(s.RequestID, "backproject", "run",
		fmt.Sprintf("range=%s..%s updated=%d missing=%d failed=%d",
			startDate, endDate, res.Updated, res.SkippedMissing, len(res.Failed)))
	return res, nil
}
