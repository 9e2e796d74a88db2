package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ocean-predict/internal/service"
)

// AdminHandler expone estadisticas y exportaciones CSV.
type AdminHandler struct {
	logger  *zap.Logger
	stats   *service.StatsService
	exports *service.ExportService
}

func NewAdminHandler(logger *zap.Logger, stats *service.StatsService, exports *service.ExportService) *AdminHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{logger: logger, stats: stats, exports: exports}
}

// Stats maneja GET /admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.logger, "admin stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Export maneja GET /admin/export/:kind.
func (h *AdminHandler) Export(c *gin.Context) {
	kind := c.Param("kind")
	body, err := h.exports.Export(c.Request.Context(), kind)
	if err != nil {
		writeServiceError(c, h.logger, "admin export", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+service.Filename(kind)+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", body)
}
