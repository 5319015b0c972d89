package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error envelope used across the API: {"error": "..."} plus, for validation
// failures only, an "errors" array with one entry per violated field. The
// submission UI keys inline messages off that array.

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondValidationFailed(ctx *gin.Context, fields []FieldError) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"error":  "Validation failed",
		"errors": fields,
	})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func RespondInternal(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
