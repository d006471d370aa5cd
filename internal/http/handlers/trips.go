package handlers

import (
	"net/http"
	"strconv"

	"truckledger/internal/domain/models"
	"truckledger/internal/repositories"

	"github.com/gin-gonic/gin"
)

// Trip CRUD is thin: the dispatch screens own these records, the ledger just
// needs them present to sync against.

// GET /api/trips?start_date=...&end_date=...
func GetTrips(c *gin.Context) {
	repo := repositories.TripsRepository{}
	trips, err := repo.ListByDeliveryDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": trips})
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var t models.Trip
	if !BindJSONOrError(c, &t) {
		return
	}
	if t.TripCode == "" {
		RespondError(c, http.StatusBadRequest, "trip_code wajib diisi", nil)
		return
	}

	repo := repositories.TripsRepository{}
	id, err := repo.Create(t)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	t.ID = id
	c.JSON(http.StatusCreated, t)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", err)
		return
	}

	var t models.Trip
	if !BindJSONOrError(c, &t) {
		return
	}

	repo := repositories.TripsRepository{}
	if err := repo.Update(id, t); err != nil {
		RespondDomainError(c, err)
		return
	}
	t.ID = id
	c.JSON(http.StatusOK, t)
}

// DELETE /api/trips/:id
// Deleting a trip never cascades to its debt record.
func DeleteTrip(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "id tidak valid", err)
		return
	}

	repo := repositories.TripsRepository{}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// DELETE /api/trips?start_date=...&end_date=...
func DeleteTripsByRange(c *gin.Context) {
	start := c.Query("start_date")
	end := c.Query("end_date")
	if start == "" || end == "" {
		RespondError(c, http.StatusBadRequest, "start_date dan end_date wajib diisi", nil)
		return
	}

	repo := repositories.TripsRepository{}
	deleted, err := repo.DeleteByDateRange(start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
