package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"ocean-predict/internal/domain"
)

type mockReportRepo struct {
	preds    []domain.PredictionReport
	profiles []domain.ProfileReport
	err      error
	calls    atomic.Int32
}

func (m *mockReportRepo) ListPredictions(context.Context) ([]domain.PredictionReport, error) {
	m.calls.Add(1)
	return m.preds, m.err
}

func (m *mockReportRepo) ListProfiles(context.Context) ([]domain.ProfileReport, error) {
	return m.profiles, nil
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func report(id, user, email, label string, scores domain.TraitVector) domain.PredictionReport {
	return domain.PredictionReport{
		Prediction: domain.Prediction{ID: id, UserID: user, Label: label, Scores: scores, InputType: "text"},
		UserEmail:  email,
	}
}

func sampleAdminData() AdminData {
	return AdminData{
		Predictions: []domain.PredictionReport{
			report("p1", "u1", "a@example.com", "Openness", domain.TraitVector{O: 0.8, C: 0.2, E: 0.4, A: 0.6, N: 0.2}),
			report("p2", "u1", "a@example.com", "Openness", domain.TraitVector{O: 0.6, C: 0.4, E: 0.4, A: 0.2, N: 0.4}),
			report("p3", "u2", "", "Neuroticism", domain.TraitVector{O: 0.1, C: 0.3, E: 0.1, A: 0.4, N: 0.9}),
		},
		Profiles: []domain.ProfileReport{
			{Profile: domain.Profile{ID: "u1", Email: "a@example.com"}, TotalPredictions: 2},
			{Profile: domain.Profile{ID: "u2"}, TotalPredictions: 1},
			{Profile: domain.Profile{ID: "u3", Email: "c@example.com"}},
		},
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(sampleAdminData())

	if stats.TotalUsers != 2 || stats.TotalPredictions != 3 || stats.TotalProfiles != 3 {
		t.Fatalf("unexpected totals %+v", stats)
	}
	if diff := stats.AvgScores.O - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unexpected avg O %v", stats.AvgScores.O)
	}
	if diff := stats.AvgScores.N - 0.5; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("unexpected avg N %v", stats.AvgScores.N)
	}
	want := map[domain.Trait]int{domain.Openness: 2, domain.Conscientiousness: 0, domain.Extraversion: 0, domain.Agreeableness: 0, domain.Neuroticism: 1}
	for k, v := range want {
		if stats.TraitDistribution[k] != v {
			t.Fatalf("distribution[%s] = %d, want %d", k, stats.TraitDistribution[k], v)
		}
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(AdminData{})
	if stats.TotalUsers != 0 || stats.AvgScores != (domain.TraitVector{}) || len(stats.TraitDistribution) != 5 {
		t.Fatalf("unexpected empty stats %+v", stats)
	}
}

func TestStatsService_UsesCache(t *testing.T) {
	data := sampleAdminData()
	repo := &mockReportRepo{preds: data.Predictions, profiles: data.Profiles}
	svc := NewStatsService(nil, repo, NewMemoryStatsCache(), time.Minute)

	first, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	second, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if repo.calls.Load() != 1 {
		t.Fatalf("expected a single load, got %d", repo.calls.Load())
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("cached stats differ:\n%s\n%s", a, b)
	}
}

func TestStatsService_CacheFailureIsIgnored(t *testing.T) {
	data := sampleAdminData()
	repo := &mockReportRepo{preds: data.Predictions, profiles: data.Profiles}
	svc := NewStatsService(nil, repo, failingCache{}, time.Minute)

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("cache errors must not fail stats: %v", err)
	}
	if stats.TotalPredictions != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestStatsService_LoadError(t *testing.T) {
	repo := &mockReportRepo{err: errors.New("db down")}
	svc := NewStatsService(nil, repo, nil, 0)
	if _, err := svc.Stats(context.Background()); err == nil {
		t.Fatalf("expected load error")
	}
}
