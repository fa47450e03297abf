package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"pos-backend/controllers"
	"pos-backend/middleware"
	"pos-backend/services"
)

// Register sets up all API routes.
func Register(r *gin.Engine, tokens *services.TokenService,
	ac *controllers.AuthController, ic *controllers.ItemController, pc *controllers.PosController) {

	authRoutes := r.Group("/auth")
	authRoutes.Use(middleware.RateLimit(rate.Every(time.Minute/30), 15))
	authRoutes.POST("/register", ac.Register)
	authRoutes.POST("/login", ac.Login)

	itemRoutes := r.Group("/items")
	itemRoutes.Use(middleware.RequireAuth(tokens))
	itemRoutes.GET("", ic.GetItems)
	itemRoutes.GET("/stock", ic.GetStockReport)
	itemRoutes.GET("/:id", ic.GetItem)
	itemRoutes.POST("", ic.PostItem)
	itemRoutes.PUT("/:id", ic.PutItem)
	itemRoutes.DELETE("/:id", ic.DeleteItem)

	posRoutes := r.Group("/pos")
	posRoutes.Use(middleware.RequireAuth(tokens))
	posRoutes.POST("/transactions", pc.PostTransaction)
	posRoutes.GET("/transactions", pc.GetTransactions)
	posRoutes.GET("/transactions/:id", pc.GetTransaction)
	posRoutes.GET("/reports", pc.GetReport)
	posRoutes.GET("/generatePdf", pc.GeneratePDF)
}
