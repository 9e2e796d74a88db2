package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ocean-predict/internal/service"
)

// PublicHandler sirve las paginas compartidas sin autenticacion.
type PublicHandler struct {
	logger      *zap.Logger
	predictions *service.PredictionService
}

func NewPublicHandler(logger *zap.Logger, predictions *service.PredictionService) *PublicHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PublicHandler{logger: logger, predictions: predictions}
}

// Prediction maneja GET /public/p/:public_id.
func (h *PublicHandler) Prediction(c *gin.Context) {
	p, err := h.predictions.PublicPrediction(c.Request.Context(), c.Param("public_id"))
	if err != nil {
		writeServiceError(c, h.logger, "public prediction", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Profile maneja GET /public/u/:handle.
func (h *PublicHandler) Profile(c *gin.Context) {
	profile, err := h.predictions.PublicProfile(c.Request.Context(), c.Param("handle"))
	if err != nil {
		writeServiceError(c, h.logger, "public profile", err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
