package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"truckledger/internal/http/middleware"
	"truckledger/internal/repositories"
	"truckledger/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/debts
// Filters: customer_code, customer_name, plate_number, driver_name,
// start_date, end_date, route, fee_field + fee_filled, locked.
func ListDebts(c *gin.Context) {
	f := repositories.DebtFilter{
		CustomerCode: c.Query("customer_code"),
		CustomerName: c.Query("customer_name"),
		PlateNumber:  c.Query("plate_number"),
		DriverName:   c.Query("driver_name"),
		StartDate:    c.Query("start_date"),
		EndDate:      c.Query("end_date"),
		RouteText:    c.Query("route"),
		FeeField:     c.Query("fee_field"),
	}
	if v := strings.TrimSpace(c.Query("fee_filled")); v != "" {
		filled := v == "1" || strings.EqualFold(v, "true")
		f.FeeFilled = &filled
	}
	if v := strings.TrimSpace(c.Query("locked")); v != "" {
		locked := v == "1" || strings.EqualFold(v, "true")
		f.Locked = &locked
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	svc := services.DebtService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.List(f, page, limit, c.Query("sort"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/debts/:tripCode
func GetDebt(c *gin.Context) {
	svc := services.DebtService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.Get(c.Param("tripCode"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/debts/:tripCode/toggle-lock
func ToggleDebtLock(c *gin.Context) {
	svc := services.LockService{RequestID: middleware.GetRequestID(c)}
	rec, err := svc.ToggleLock(c.Param("tripCode"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trip_code": rec.TripCode, "is_locked": rec.IsLocked})
}

// PUT /api/debts/:tripCode/costs
// Body: {"loading_fee": 200000, "ticket_fee": "100000", ...}
func UpdateDebtCostFields(c *gin.Context) {
	var fields map[string]any
	if !BindJSONOrError(c, &fields) {
		return
	}

	svc := services.DebtService{RequestID: middleware.GetRequestID(c)}
	rec, err := svc.UpdateCostFields(c.Param("tripCode"), fields)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

type noteRequest struct {
	Note         *string `json:"note"`
	HighlightTag *string `json:"highlight_tag"`
}

// PUT /api/debts/:tripCode/note
// Annotations stay editable even on locked records.
func UpdateDebtNote(c *gin.Context) {
	var req noteRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.DebtService{RequestID: middleware.GetRequestID(c)}
	if err := svc.UpdateAnnotations(c.Param("tripCode"), req.Note, req.HighlightTag); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// DELETE /api/debts?start_date=...&end_date=...
func DeleteDebtsByRange(c *gin.Context) {
	svc := services.DebtService{RequestID: middleware.GetRequestID(c)}
	deleted, err := svc.DeleteByDateRange(c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// GET /api/debts/:tripCode/statement
func GetDebtStatementPDF(c *gin.Context) {
	svc := services.StatementService{RequestID: middleware.GetRequestID(c)}
	data, filename, err := svc.GenerateTripStatement(c.Param("tripCode"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
