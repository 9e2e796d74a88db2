package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ocean-predict/internal/service"
)

// RouterDeps agrupa lo que necesita NewRouter.
type RouterDeps struct {
	Logger      *zap.Logger
	CORSOrigins []string
	JWT         *service.JWTService
	Profiles    *service.ProfileService
	Predictions *PredictionHandler
	Public      *PublicHandler
	Admin       *AdminHandler
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(deps.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", jsonContentTypeMiddleware(), JWTAuthMiddleware(deps.JWT))
	api.GET("/survey/items", deps.Predictions.SurveyItems)
	api.POST("/predict", deps.Predictions.Predict)
	api.GET("/predictions", deps.Predictions.Recent)
	api.PATCH("/predictions/:id/share", deps.Predictions.SetShare)
	api.GET("/predictions/:id/similar", deps.Predictions.Similar)

	public := r.Group("/public", jsonContentTypeMiddleware())
	public.GET("/p/:public_id", deps.Public.Prediction)
	public.GET("/u/:handle", deps.Public.Profile)

	// Sin jsonContentTypeMiddleware: las exportaciones son CSV.
	admin := r.Group("/admin", JWTAuthMiddleware(deps.JWT), AdminMiddleware(deps.Profiles))
	admin.GET("/stats", deps.Admin.Stats)
	admin.GET("/export/:kind", deps.Admin.Export)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// corsMiddleware acepta "*" o una lista explicita de origenes.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{"Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Disposition", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}
	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
