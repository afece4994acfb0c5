// Package router assembles the Gin engine: middleware, API docs, health
// check and the versioned API routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "expensetracker/internal/docs" // Register swagger docs
	"expensetracker/internal/handlers"
	"expensetracker/internal/middleware"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Sessions      handlers.SessionProvider
	Converter     handlers.Converter
	Clock         handlers.Clock
	JWTSecret     string
	WebhookAPIKey string
}

// New builds the application router.
func New(deps Deps) *gin.Engine {
	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	transactionHandler := handlers.NewTransactionHandler(deps.Sessions, deps.Converter, deps.Clock)
	categoryHandler := handlers.NewCategoryHandler(deps.Sessions)
	reportHandler := handlers.NewReportHandler(deps.Sessions, deps.Converter, deps.Clock)
	currencyHandler := handlers.NewCurrencyHandler(deps.Converter)
	notificationHandler := handlers.NewNotificationHandler(deps.Sessions)
	webhookHandler := handlers.NewWebhookHandler(deps.Sessions)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Auth backend callbacks
	webhooks := v1.Group("/webhooks")
	webhooks.Use(middleware.WebhookAuthMiddleware(deps.WebhookAPIKey))
	webhooks.POST("/auth", webhookHandler.AuthEvent)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret))

	session := protected.Group("/session")
	session.POST("", sessionHandler.OpenSession)
	session.DELETE("", sessionHandler.CloseSession)
	session.PUT("/currency", sessionHandler.UpdateDisplayCurrency)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.POST("", categoryHandler.CreateCategory)

	reports := protected.Group("/reports")
	reports.GET("/breakdown", reportHandler.GetBreakdown)
	reports.GET("/trend", reportHandler.GetTrend)
	reports.GET("/summary", reportHandler.GetSummary)

	currencies := protected.Group("/currencies")
	currencies.GET("", currencyHandler.ListCurrencies)
	currencies.GET("/convert", currencyHandler.Convert)

	protected.GET("/notifications", notificationHandler.DrainNotifications)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
