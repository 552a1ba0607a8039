package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"hourly-quote/internal/domain"

	"github.com/gin-gonic/gin"
)

// quoteRequest mirrors the serialized quote form. Hours and field
// values arrive loosely typed (the legacy form posted everything as
// strings); they are coerced here and the processor applies its own
// leniency.
type quoteRequest struct {
	ProductID   string                 `json:"productId" binding:"required"`
	Hours       interface{}            `json:"hours"`
	CustomNote  string                 `json:"customNote"`
	FieldValues map[string]interface{} `json:"fieldValues"`
	Attachments map[string]string      `json:"attachments"`
}

func submitQuoteHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in quoteRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}

		sub := domain.QuoteSubmission{
			ProductID:   in.ProductID,
			Hours:       coerceScalar(in.Hours),
			CustomNote:  in.CustomNote,
			FieldValues: coerceFieldValues(in.FieldValues),
			Attachments: in.Attachments,
		}

		line, err := deps.QuoteSvc.Process(c.Request.Context(), c.Param("id"), sub)
		if err != nil {
			var verr *domain.ValidationError
			var rejected *domain.CartRejectedError
			switch {
			case errors.As(err, &verr):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid submission", "errors": verr.Fields})
			case errors.Is(err, domain.ErrNotHourlyBillable):
				c.JSON(http.StatusConflict, gin.H{"message": "product cannot be quoted by the hour"})
			case errors.As(err, &rejected):
				c.JSON(http.StatusConflict, gin.H{"message": rejected.Error()})
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "product or cart not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to process quote"})
			}
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"lineItem":   toLineResponse(*line),
			"redirectTo": deps.CheckoutRedirectURL,
		})
	}
}

func coerceScalar(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func coerceFieldValues(raw map[string]interface{}) map[string][]string {
	out := make(map[string][]string, len(raw))
	for name, v := range raw {
		switch t := v.(type) {
		case []interface{}:
			vals := make([]string, 0, len(t))
			for _, item := range t {
				vals = append(vals, coerceScalar(item))
			}
			out[name] = vals
		default:
			out[name] = []string{coerceScalar(v)}
		}
	}
	return out
}
