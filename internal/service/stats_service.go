package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ocean-predict/internal/domain"
	"ocean-predict/internal/repository"
)

const statsCacheKey = "stats"

// Stats resume el panel de administracion.
type Stats struct {
	TotalUsers        int                  `json:"totalUsers"`
	TotalProfiles     int                  `json:"totalProfiles"`
	TotalPredictions  int                  `json:"totalPredictions"`
	AvgScores         domain.TraitVector   `json:"avgScores"`
	TraitDistribution map[domain.Trait]int `json:"traitDistribution"`
	GeneratedAt       time.Time            `json:"generatedAt"`
}

// AdminData son los datos crudos que alimentan estadisticas y exportaciones.
type AdminData struct {
	Predictions []domain.PredictionReport
	Profiles    []domain.ProfileReport
}

type StatsService struct {
	logger  *zap.Logger
	reports repository.ReportRepository
	cache   StatsCache
	ttl     time.Duration
	now     func() time.Time
}

// NewStatsService acepta cache nil; ttl <= 0 desactiva el cache.
func NewStatsService(logger *zap.Logger, reports repository.ReportRepository, cache StatsCache, ttl time.Duration) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{
		logger:  logger,
		reports: reports,
		cache:   cache,
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Load trae predicciones y perfiles en paralelo.
func (s *StatsService) Load(ctx context.Context) (AdminData, error) {
	var data AdminData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		preds, err := s.reports.ListPredictions(gctx)
		data.Predictions = preds
		return err
	})
	g.Go(func() error {
		profiles, err := s.reports.ListProfiles(gctx)
		data.Profiles = profiles
		return err
	})
	if err := g.Wait(); err != nil {
		return AdminData{}, err
	}
	return data, nil
}

// Stats usa el cache si esta disponible. Los errores del cache solo se registran.
func (s *StatsService) Stats(ctx context.Context) (Stats, error) {
	if s.cache != nil && s.ttl > 0 {
		raw, ok, err := s.cache.Get(ctx, statsCacheKey)
		if err != nil {
			s.logger.Warn("stats cache read failed", zap.Error(err))
		}
		if ok {
			var cached Stats
			decodeErr := json.Unmarshal(raw, &cached)
			if decodeErr == nil {
				return cached, nil
			}
			s.logger.Warn("stats cache entry corrupt", zap.Error(decodeErr))
		}
	}

	data, err := s.Load(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats := ComputeStats(data)
	stats.GeneratedAt = s.now()

	if s.cache != nil && s.ttl > 0 {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, raw, s.ttl); err != nil {
				s.logger.Warn("stats cache write failed", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// ComputeStats cuenta usuarios distintos con predicciones, promedia los puntajes
// y agrupa por rasgo dominante. Etiquetas desconocidas no se cuentan.
func ComputeStats(data AdminData) Stats {
	stats := Stats{
		TotalProfiles:     len(data.Profiles),
		TotalPredictions:  len(data.Predictions),
		TraitDistribution: make(map[domain.Trait]int, len(domain.Traits)),
	}
	for _, t := range domain.Traits {
		stats.TraitDistribution[t] = 0
	}
	if len(data.Predictions) == 0 {
		return stats
	}

	users := make(map[string]struct{})
	var sums domain.TraitVector
	for _, p := range data.Predictions {
		users[p.UserID] = struct{}{}
		for _, t := range domain.Traits {
			sums = sums.With(t, sums.Get(t)+p.Scores.Get(t))
		}
		if t, ok := domain.TraitFromName(p.Label); ok {
			stats.TraitDistribution[t]++
		}
	}
	n := float64(len(data.Predictions))
	for _, t := range domain.Traits {
		stats.AvgScores = stats.AvgScores.With(t, sums.Get(t)/n)
	}
	stats.TotalUsers = len(users)
	return stats
}
