package handlers

import (
	"net/http"

	"truckledger/internal/http/middleware"
	"truckledger/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/debts/create
// Creation path only: debts for never-before-seen trip codes in range.
func CreateOddDebts(c *gin.Context) {
	var req dateRangeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.SyncService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.CreateOddDebts(req.StartDate, req.EndDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/debts/sync
// Full projection run including updates of existing unlocked records.
func SyncOddDebts(c *gin.Context) {
	var req dateRangeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.SyncService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.SyncOddDebts(req.StartDate, req.EndDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/debts/backproject
// Writes aggregated supplemental fees back onto the source trips.
func BackProjectOddFees(c *gin.Context) {
	var req dateRangeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.BackProjectService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.ProjectSupplementalCosts(req.StartDate, req.EndDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/debts/lock-range
func LockDebtsByRange(c *gin.Context) {
	var req dateRangeRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.LockService{RequestID: middleware.GetRequestID(c)}
	locked, err := svc.LockRange(req.StartDate, req.EndDate)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locked": locked})
}
