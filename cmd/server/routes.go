package main

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"borderlesspay.backend/internal/interfaces/http/handlers"
	"borderlesspay.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	walletHandler    *handlers.WalletHandler
	txHandler        *handlers.TransactionHandler
	invoiceHandler   *handlers.InvoiceHandler
	employeeHandler  *handlers.EmployeeHandler
	analyticsHandler *handlers.AnalyticsHandler
	hederaHandler    *handlers.HederaHandler
	authMiddleware   gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID", "Idempotency-Key"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "borderlesspay-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public except profile)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.Me)
		}

		// Wallet routes
		wallets := v1.Group("/wallets")
		{
			wallets.GET("", d.walletHandler.ListWallets)
			wallets.POST("", d.walletHandler.CreateWallet)
			wallets.GET("/:id", d.walletHandler.GetWallet)
			wallets.PATCH("/:id", d.walletHandler.UpdateWallet)
		}

		// Transaction routes
		transactions := v1.Group("/transactions")
		{
			transactions.GET("", d.txHandler.ListTransactions)
			transactions.POST("", d.txHandler.CreateTransaction)
			transactions.POST("/send", middleware.IdempotencyMiddleware(), d.txHandler.Send)
			transactions.POST("/swap", middleware.IdempotencyMiddleware(), d.txHandler.Swap)
		}

		// Invoice routes
		invoices := v1.Group("/invoices")
		{
			invoices.GET("", d.invoiceHandler.ListInvoices)
			invoices.POST("", d.invoiceHandler.CreateInvoice)
			invoices.GET("/stats", d.invoiceHandler.InvoiceStats)
			invoices.GET("/:id", d.invoiceHandler.GetInvoice)
			invoices.PATCH("/:id", d.invoiceHandler.UpdateInvoice)
			invoices.DELETE("/:id", d.invoiceHandler.DeleteInvoice)
		}

		// Employee and payroll routes
		employees := v1.Group("/employees")
		{
			employees.GET("", d.employeeHandler.ListEmployees)
			employees.POST("", d.employeeHandler.CreateEmployee)
			employees.GET("/:id", d.employeeHandler.GetEmployee)
			employees.PATCH("/:id", d.employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", d.employeeHandler.DeleteEmployee)
			employees.POST("/:id/pay", middleware.IdempotencyMiddleware(), d.employeeHandler.PayEmployee)
		}

		// Analytics routes
		analytics := v1.Group("/analytics")
		{
			analytics.GET("/overview", d.analyticsHandler.Overview)
		}

		// Ledger proxy routes
		hedera := v1.Group("/hedera")
		{
			hedera.GET("/balance", d.hederaHandler.Balance)
			hedera.POST("/transfer", middleware.IdempotencyMiddleware(), d.hederaHandler.Transfer)
			hedera.GET("/transactions", d.hederaHandler.Transactions)
			hedera.GET("/transaction/:id", d.hederaHandler.Transaction)
			hedera.GET("/price", d.hederaHandler.Price)
			hedera.POST("/create-token", d.hederaHandler.CreateToken)
		}
	}
}
