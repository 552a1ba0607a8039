package httpserver

import (
	"errors"
	"net/http"

	"hourly-quote/internal/domain"
	catalogsvc "hourly-quote/internal/service/catalog"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := deps.CatalogSvc.List(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list products"})
			return
		}
		out := make([]productResponse, 0, len(products))
		for _, p := range products {
			out = append(out, toProductResponse(p))
		}
		c.JSON(http.StatusOK, gin.H{"results": out, "total": len(out)})
	}
}

func getProductHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := deps.CatalogSvc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load product"})
			return
		}
		c.JSON(http.StatusOK, toProductResponse(*p))
	}
}

func saveBillingHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in catalogsvc.BillingInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		p, err := deps.CatalogSvc.SaveBilling(c.Request.Context(), c.Param("id"), in)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found"})
			case errors.Is(err, domain.ErrPersistence):
				c.JSON(http.StatusInternalServerError, gin.H{"message": "billing settings not saved"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, toProductResponse(*p))
	}
}
