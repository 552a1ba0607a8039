package httpserver

import (
	"errors"
	"net/http"

	"hourly-quote/internal/domain"

	"github.com/gin-gonic/gin"
)

type schemaRequest struct {
	Fields []fieldRequest `json:"fields" binding:"required"`
}

type fieldRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Options  string `json:"options"`
	Required bool   `json:"required"`
}

type schemaResponse struct {
	Version int                      `json:"version"`
	Fields  []domain.FieldDefinition `json:"fields"`
}

func getSchemaHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := deps.SchemaSvc.Load(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to load quote fields"})
			return
		}
		c.JSON(http.StatusOK, schemaResponse{Version: s.Version, Fields: s.Fields})
	}
}

func saveSchemaHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in schemaRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		fields := make([]domain.FieldDefinition, 0, len(in.Fields))
		for _, f := range in.Fields {
			fields = append(fields, domain.FieldDefinition{
				Name:     f.Name,
				Type:     domain.FieldType(f.Type),
				Options:  f.Options,
				Required: f.Required,
			})
		}
		s, err := deps.SchemaSvc.Save(c.Request.Context(), fields)
		if err != nil {
			var verr *domain.ValidationError
			switch {
			case errors.As(err, &verr):
				c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "invalid quote fields", "errors": verr.Fields})
			case errors.Is(err, domain.ErrPersistence):
				// Save aborted; the previous schema stays active.
				c.JSON(http.StatusInternalServerError, gin.H{"message": "quote fields not saved"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "quote fields not saved"})
			}
			return
		}
		c.JSON(http.StatusOK, schemaResponse{Version: s.Version, Fields: s.Fields})
	}
}
