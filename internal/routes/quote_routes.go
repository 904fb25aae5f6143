package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/controllers"
	"github.com/manish-raj-kamal/Truck-Booking-Platform-sub001/internal/middleware"
)

func QuoteRoutes(r *gin.Engine) {
	quotes := r.Group("/api/quotes")
	quotes.Use(middleware.RequireAuth())
	{
		quotes.POST("/", controllers.SubmitQuote)
		quotes.GET("/my-quotes", controllers.GetMyQuotes)
		quotes.GET("/load/:loadId", controllers.ListQuotesForLoad)
		quotes.PUT("/:quoteId/accept", controllers.AcceptQuote)
		quotes.PUT("/:quoteId/reject", controllers.RejectQuote)
		quotes.DELETE("/:quoteId", controllers.WithdrawQuote)
	}
}
