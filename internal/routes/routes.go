package routes

import (
	"investra-backend/internal/handlers"
	"investra-backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	api := r.Group("/api/v1")
	{
		// Auth (publik)
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/oauth", handlers.OAuthLogin)
			auth.POST("/refresh", handlers.Refresh)
			auth.POST("/logout", handlers.Logout)
			auth.POST("/verify", handlers.VerifyEmail)
		}

		// Plan bisa dilihat publik biar orang liat harga dulu
		api.GET("/plans", handlers.GetPlans)

		// Webhook gateway (dipanggil Midtrans, bukan user)
		api.POST("/payment/notification", handlers.HandlePaymentNotification)

		// PROTECTED ROUTES (harus login)
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/auth/verify/send", handlers.SendVerification)

			protected.GET("/dashboard", handlers.GetDashboard)

			protected.GET("/profile", handlers.GetProfile)
			protected.PUT("/profile", handlers.UpdateProfile)
			protected.POST("/profile/recover", handlers.RecoverProfile)

			protected.POST("/payments/card", handlers.CardPayment)
			protected.POST("/payments/crypto", handlers.CryptoPayment)

			protected.GET("/wallet", handlers.GetMyWallet)
			protected.POST("/wallet/deposit", handlers.Deposit)
			protected.POST("/wallet/deposit/gateway", handlers.GatewayDeposit)
			protected.POST("/wallet/withdraw", handlers.Withdraw)

			protected.GET("/transactions", handlers.GetTransactions)
			protected.GET("/transactions/export", handlers.ExportTransactionsCSV)
			protected.GET("/transactions/stream", handlers.StreamTransactions)
			protected.GET("/transactions/:id", handlers.GetTransactionDetail)
		}
	}
}
