package api

import (
	"log"
	stdhttp "net/http"

	intconfig "truckledger/internal/config"
	h "truckledger/internal/http/handlers"
	"truckledger/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.Configure(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		protected := api.Group("")
		protected.Use(middleware.RequireAuth(env.JWTSecret, env.AuthDisabled))

		// Debt ledger
		debts := protected.Group("/debts")
		debts.GET("", h.ListDebts)
		debts.POST("/create", h.CreateOddDebts)
		debts.POST("/sync", h.SyncOddDebts)
		debts.POST("/backproject", h.BackProjectOddFees)
		debts.POST("/lock-range", h.LockDebtsByRange)
		debts.DELETE("", h.DeleteDebtsByRange)
		debts.GET("/:tripCode", h.GetDebt)
		debts.POST("/:tripCode/toggle-lock", h.ToggleDebtLock)
		debts.PUT("/:tripCode/costs", h.UpdateDebtCostFields)
		debts.PUT("/:tripCode/note", h.UpdateDebtNote)
		debts.GET("/:tripCode/statement", h.GetDebtStatementPDF)

		// Payments
		payments := protected.Group("/payments")
		payments.POST("", h.AddPayment)
		payments.GET("/history/:tripCode", h.PaymentHistory)

		protected.GET("/customers/:customerCode/balance", h.CustomerBalance)

		// Trips (dispatch source)
		trips := protected.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.POST("", h.CreateTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", h.DeleteTrip)
		trips.DELETE("", h.DeleteTripsByRange)

		// Reports
		reports := protected.Group("/reports")
		reports.GET("/debts", h.GetDebtSummaryReport)
	}

	return r
}
