package routes

import (
	"net/http"
	"os"

	ginlogger "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the engine with all route groups mounted. The caller is
// responsible for actually serving it.
func SetupRouter() *gin.Engine {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(ginlogger.SetLogger())
	r.Use(gin.Recovery())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	AuthRoutes(r)
	UserRoutes(r)
	LoadRoutes(r)
	QuoteRoutes(r)
	PaymentRoutes(r)
	TruckRoutes(r)
	BookingRoutes(r)
	SiteRoutes(r)

	return r
}
