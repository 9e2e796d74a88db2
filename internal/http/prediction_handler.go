package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ocean-predict/internal/service"
)

// PredictionHandler mantiene dependencias para los endpoints autenticados.
type PredictionHandler struct {
	logger      *zap.Logger
	predictions *service.PredictionService
}

func NewPredictionHandler(logger *zap.Logger, predictions *service.PredictionService) *PredictionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PredictionHandler{logger: logger, predictions: predictions}
}

type predictRequest struct {
	Type      string `json:"type" binding:"required"`
	Text      string `json:"text"`
	Responses []int  `json:"responses"`
}

type shareRequest struct {
	Share *bool `json:"share" binding:"required"`
}

// Predict maneja POST /api/predict.
func (h *PredictionHandler) Predict(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not extract user ID"})
		return
	}

	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid predict request", zap.Error(err))
		writeBindError(c, err)
		return
	}

	out, err := h.predictions.Predict(c.Request.Context(), service.PredictInput{
		UserID:    claims.UserID(),
		Email:     claims.Email,
		Type:      req.Type,
		Text:      req.Text,
		Responses: req.Responses,
	})
	if err != nil {
		writeServiceError(c, h.logger, "predict", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// SurveyItems maneja GET /api/survey/items.
func (h *PredictionHandler) SurveyItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": h.predictions.SurveyItems()})
}

// Recent maneja GET /api/predictions.
func (h *PredictionHandler) Recent(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not extract user ID"})
		return
	}
	preds, err := h.predictions.Recent(c.Request.Context(), claims.UserID())
	if err != nil {
		writeServiceError(c, h.logger, "list predictions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": preds})
}

// SetShare maneja PATCH /api/predictions/:id/share.
func (h *PredictionHandler) SetShare(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not extract user ID"})
		return
	}
	var req shareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if err := h.predictions.SetShare(c.Request.Context(), claims.UserID(), c.Param("id"), *req.Share); err != nil {
		writeServiceError(c, h.logger, "set share", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "share": *req.Share})
}

// Similar maneja GET /api/predictions/:id/similar?k=N.
func (h *PredictionHandler) Similar(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not extract user ID"})
		return
	}
	k := 0
	if raw := c.Query("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "k must be a positive integer"})
			return
		}
		k = n
	}
	similar, err := h.predictions.Similar(c.Request.Context(), claims.UserID(), c.Param("id"), k)
	if err != nil {
		writeServiceError(c, h.logger, "similar predictions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"predictions": similar})
}
