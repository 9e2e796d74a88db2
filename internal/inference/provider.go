package inference

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ocean-predict/internal/domain"
)

// Provider obtiene un vector base de rasgos desde un modelo externo.
type Provider interface {
	Predict(ctx context.Context, text string) (domain.TraitVector, error)
}

// DefaultRetryAfter es la espera sugerida cuando el modelo no informa estimated_time.
const DefaultRetryAfter = 20 * time.Second

var ErrUnexpectedOutput = errors.New("unexpected model output format")

// ModelLoadingError indica que el modelo se esta cargando (HTTP 503).
type ModelLoadingError struct {
	Model      string
	RetryAfter time.Duration
}

func (e *ModelLoadingError) Error() string {
	return fmt.Sprintf("model %s is loading, retry after %s", e.Model, e.RetryAfter)
}

// RetryAfterSeconds redondea hacia arriba para el campo retryAfter de la respuesta.
func (e *ModelLoadingError) RetryAfterSeconds() int {
	secs := int((e.RetryAfter + time.Second - 1) / time.Second)
	if secs <= 0 {
		return int(DefaultRetryAfter / time.Second)
	}
	return secs
}

// StatusError es cualquier otra respuesta >= 400 del proveedor.
type StatusError struct {
	Model  string
	Code   int
	Detail string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("AI model error (%d)", e.Code)
}

// retryable reporta si conviene probar el siguiente modelo.
func retryable(err error) bool {
	var loading *ModelLoadingError
	if errors.As(err, &loading) {
		return true
	}
	var status *StatusError
	if !errors.As(err, &status) {
		return false
	}
	switch status.Code {
	case http.StatusForbidden, http.StatusNotFound, http.StatusGone, http.StatusServiceUnavailable:
		return true
	}
	return false
}

// FallbackProvider prueba los proveedores en orden. Solo avanza cuando el modelo
// no esta disponible (403, 404, 410 o 503); el ultimo error se devuelve tal cual.
type FallbackProvider struct {
	providers []Provider
	logger    *zap.Logger
}

func NewFallbackProvider(logger *zap.Logger, providers ...Provider) *FallbackProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackProvider{providers: providers, logger: logger}
}

func (f *FallbackProvider) Predict(ctx context.Context, text string) (domain.TraitVector, error) {
	if len(f.providers) == 0 {
		return domain.TraitVector{}, errors.New("no inference providers configured")
	}
	var lastErr error
	for i, p := range f.providers {
		vec, err := p.Predict(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err
		if !retryable(err) || ctx.Err() != nil {
			return domain.TraitVector{}, err
		}
		if i < len(f.providers)-1 {
			f.logger.Warn("inference provider unavailable, trying fallback",
				zap.Int("provider", i),
				zap.Error(err),
			)
		}
	}
	return domain.TraitVector{}, lastErr
}
