package httpserver

import (
	"errors"
	"net/http"

	"hourly-quote/internal/domain"
	cartsvc "hourly-quote/internal/service/cart"

	"github.com/gin-gonic/gin"
)

func createCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.CreateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		cart, err := deps.CartSvc.Create(c.Request.Context(), in)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, toCartResponse(*cart))
	}
}

// getCartHandler is the pre-totals hook: every cart read runs the
// reconciler first so the returned totals always reflect the current
// hourly rates.
func getCartHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := deps.Reconciler.Reconcile(c.Request.Context(), c.Param("id"))
		if err != nil {
			var cfgErr *domain.InvalidHourlyConfigError
			switch {
			case errors.As(err, &cfgErr):
				c.JSON(http.StatusConflict, gin.H{
					"cart":       toCartResponse(*cart),
					"message":    "hourly rate must be set and greater than 0 for hourly products",
					"productIds": cfgErr.ProductIDs,
				})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "cart not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load cart"})
			}
			return
		}
		c.JSON(http.StatusOK, toCartResponse(*cart))
	}
}

func changeLineHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.ChangeLineInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		if err := deps.CartSvc.ChangeLine(c.Request.Context(), c.Param("id"), c.Param("lineId"), in); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "cart line not found"})
			case errors.Is(err, domain.ErrQuantityLocked):
				c.JSON(http.StatusConflict, gin.H{"message": "quantity of an hourly line item is derived from hours"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			}
			return
		}

		// Re-read through the pre-totals pass so changed hours come back
		// with quantity and line totals already aligned.
		cart, err := deps.Reconciler.Reconcile(c.Request.Context(), c.Param("id"))
		if err != nil {
			var cfgErr *domain.InvalidHourlyConfigError
			switch {
			case errors.As(err, &cfgErr):
				c.JSON(http.StatusConflict, gin.H{
					"cart":       toCartResponse(*cart),
					"message":    "hourly rate must be set and greater than 0 for hourly products",
					"productIds": cfgErr.ProductIDs,
				})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "cart not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load cart"})
			}
			return
		}
		c.JSON(http.StatusOK, toCartResponse(*cart))
	}
}
