package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"ocean-predict/internal/inference"
	"ocean-predict/internal/scoring"
	"ocean-predict/internal/service"
)

// writeBindError responde 400 con el detalle por campo cuando viene de validator.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	}
	return "is invalid (" + fe.Tag() + ")"
}

// writeServiceError traduce errores de servicio, scoring e inferencia a HTTP.
func writeServiceError(c *gin.Context, logger *zap.Logger, op string, err error) {
	var (
		verr    *scoring.ValidationError
		loading *inference.ModelLoadingError
		status  *inference.StatusError
	)
	switch {
	case errors.As(err, &verr):
		body := gin.H{"error": verr.Error(), "field": verr.Field}
		if verr.Required > 0 {
			body["required"] = verr.Required
			body["actual"] = verr.Actual
		}
		if verr.Index >= 0 {
			body["index"] = verr.Index
			body["actual"] = verr.Actual
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrInvalidType):
		c.JSON(http.StatusBadRequest, gin.H{"error": `Invalid type. Must be "text" or "survey"`})
	case errors.Is(err, service.ErrUnknownExport):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown export kind"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &loading):
		secs := loading.RetryAfterSeconds()
		c.Header("Retry-After", strconv.Itoa(secs))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":      fmt.Sprintf("AI model is loading. Please wait %d seconds and try again.", secs),
			"retryAfter": secs,
		})
	case errors.As(err, &status):
		logger.Warn(op+" provider error", zap.Int("status", status.Code), zap.String("model", status.Model))
		c.JSON(http.StatusBadGateway, gin.H{"error": status.Error(), "detail": status.Detail})
	case errors.Is(err, inference.ErrUnexpectedOutput):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unexpected model output format"})
	default:
		logger.Error(op+" failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
