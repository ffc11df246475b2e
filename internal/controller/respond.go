package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindwell-backend/internal/service"
	"mindwell-backend/utilities"
)

// respondError maps a service error onto the HTTP surface with the shared
// {detail, code} payload shape.
func respondError(c *gin.Context, err error) {
	se, ok := service.AsServiceError(err)
	if !ok {
		utilities.Error("unhandled error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error", "code": "internal_error"})
		return
	}

	status := http.StatusInternalServerError
	switch se.Code {
	case service.CodeValidation, service.CodeIntegrity:
		status = http.StatusBadRequest
	case service.CodePermission:
		status = http.StatusForbidden
	case service.CodeNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"detail": se.Detail, "code": se.Code})
}

func respondBindingError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid input: missing or malformed fields", "code": "validation_error"})
}
