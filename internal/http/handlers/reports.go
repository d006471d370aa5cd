package handlers

import (
	"net/http"

	"truckledger/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/reports/debts?start_date=...&end_date=...
func GetDebtSummaryReport(c *gin.Context) {
	svc := services.ReportsService{}
	rows, err := svc.DebtSummary(services.DebtSummaryFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": rows})
}
