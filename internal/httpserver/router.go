package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// buildRouter wires the gateway routes for the storefront UI.
func buildRouter(logger *log.Logger, deps Deps, allowedOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(allowedOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = allowedOrigins
		corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete}
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)

	router.GET("/cart", cartHandler(deps))
	router.GET("/cart/count", cartCountHandler(deps))
	router.DELETE("/cart/items/:productId", removeItemHandler(deps, logger))
	router.POST("/cart/items/:productId/quantity", changeQuantityHandler(deps, logger))
	router.POST("/checkout", checkoutHandler(deps))
	router.GET("/notices", noticesHandler(deps))
	router.GET("/stats", statsHandler(deps))

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
