package handlers

import (
	"net/http"

	"truckledger/internal/http/middleware"
	"truckledger/internal/services"

	"github.com/gin-gonic/gin"
)

// POST /api/payments
// Mode chosen by which identifier is supplied: customer_code for the
// aggregate ledger, trip_code for a single trip's own history.
func AddPayment(c *gin.Context) {
	var req services.AddPaymentInput
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	entry, err := svc.AddPayment(req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /api/payments/history/:tripCode
func PaymentHistory(c *gin.Context) {
	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	entries, err := svc.TripPaymentHistory(c.Param("tripCode"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": entries})
}

// GET /api/customers/:customerCode/balance
func CustomerBalance(c *gin.Context) {
	svc := services.PaymentService{RequestID: middleware.GetRequestID(c)}
	res, err := svc.CustomerAggregateBalance(c.Param("customerCode"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
