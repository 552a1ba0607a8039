package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/products", listProductsHandler(deps))
	router.GET("/products/:id", getProductHandler(deps))
	router.PUT("/products/:id/billing", saveBillingHandler(deps))

	router.GET("/quote-fields", getSchemaHandler(deps))
	router.PUT("/quote-fields", saveSchemaHandler(deps))

	router.POST("/carts", createCartHandler(deps))
	router.GET("/carts/:id", getCartHandler(deps))
	router.POST("/carts/:id/quote", submitQuoteHandler(deps))
	router.PATCH("/carts/:id/lines/:lineId", changeLineHandler(deps))

	return router
}
