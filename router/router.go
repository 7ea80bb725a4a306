package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/puravida-pos/pos-demo/controllers"
	"github.com/puravida-pos/pos-demo/middlewares"
	"github.com/puravida-pos/pos-demo/services"
	"github.com/puravida-pos/pos-demo/terminal"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	return SetupRouterWithTerminal(db, terminal.NewSimulator())
}

// SetupRouterWithTerminal lets tests plug in a deterministic terminal.
func SetupRouterWithTerminal(db *gorm.DB, term services.Charger) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Registered before any route so it actually wraps them all.
	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	chargeSvc := services.NewChargeService(db, term)
	reportSvc := services.NewReportService(db)

	userCtrl := controllers.NewUserController(db)
	itemCtrl := controllers.NewItemController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(chargeSvc)
	reportCtrl := controllers.NewReportController(reportSvc)
	receiptCtrl := controllers.NewReceiptController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Auth endpoints, rate limited against brute force
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Live feed for POS dashboards
	r.GET("/feed/ws", controllers.FeedHandler)

	// Menu catalog
	r.GET("/items", itemCtrl.GetAllItems)

	// Orders and payments run unauthenticated in the demo,
	// same as the floor-side POS
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.GET("/orders/:order_id/receipt", receiptCtrl.GetReceipt)

	payments := r.Group("/payments")
	payments.Use(middlewares.PaymentRateLimiter())
	{
		payments.POST("/charge", paymentCtrl.ChargeOrder)
	}

	// Staff-only surface
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/items", itemCtrl.CreateItem)
		auth.GET("/reports/eod", reportCtrl.EndOfDay)
	}

	return r
}
