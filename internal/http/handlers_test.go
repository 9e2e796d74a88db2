package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ocean-predict/internal/domain"
	"ocean-predict/internal/inference"
	"ocean-predict/internal/scoring"
	"ocean-predict/internal/service"
)

var errNoRows = pgx.ErrNoRows

type memPredictionRepo struct {
	byID map[string]domain.Prediction
}

func (m *memPredictionRepo) Create(_ context.Context, p domain.Prediction) error {
	m.byID[p.ID] = p
	return nil
}

func (m *memPredictionRepo) GetByID(_ context.Context, id string) (domain.Prediction, error) {
	p, ok := m.byID[id]
	if !ok {
		return domain.Prediction{}, errNoRows
	}
	return p, nil
}

func (m *memPredictionRepo) ListRecentByUser(_ context.Context, userID string, _ int) ([]domain.Prediction, error) {
	var out []domain.Prediction
	for _, p := range m.byID {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPredictionRepo) GetByPublicID(_ context.Context, publicID string) (domain.Prediction, error) {
	for _, p := range m.byID {
		if p.PublicID == publicID && p.Share {
			return p, nil
		}
	}
	return domain.Prediction{}, errNoRows
}

func (m *memPredictionRepo) ListSharedByHandle(context.Context, string, int) ([]domain.Prediction, error) {
	return nil, nil
}

func (m *memPredictionRepo) SetShare(_ context.Context, userID, id string, share bool) error {
	p, ok := m.byID[id]
	if !ok || p.UserID != userID {
		return errNoRows
	}
	p.Share = share
	m.byID[id] = p
	return nil
}

func (m *memPredictionRepo) FindSimilar(context.Context, string, string, domain.TraitVector, int) ([]domain.Prediction, error) {
	return nil, nil
}

type memReportRepo struct {
	preds []domain.PredictionReport
}

func (m memReportRepo) ListPredictions(context.Context) ([]domain.PredictionReport, error) {
	return m.preds, nil
}

func (m memReportRepo) ListProfiles(context.Context) ([]domain.ProfileReport, error) {
	return []domain.ProfileReport{{Profile: domain.Profile{ID: "admin", Email: "admin@example.com"}}}, nil
}

type testServer struct {
	router *gin.Engine
	jwt    *service.JWTService
	repo   *memPredictionRepo
}

func newTestServer(t *testing.T, provider inference.Provider) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	repo := &memPredictionRepo{byID: make(map[string]domain.Prediction)}
	profiles := adminProfileRepo{profiles: map[string]domain.Profile{
		"admin": {ID: "admin", IsAdmin: true},
		"u1":    {ID: "u1", PublicHandle: "ann"},
	}}
	jwtSvc := service.NewJWTService("secret", "", "", time.Hour)
	predSvc := service.NewPredictionService(logger, scoring.NewEngine(scoring.WithMinWords(3)), provider, repo, profiles, nil)
	reports := memReportRepo{preds: []domain.PredictionReport{{
		Prediction: domain.Prediction{ID: "p1", UserID: "u1", InputType: "survey", Label: "Openness", Scores: domain.UniformVector(0.5)},
		UserEmail:  "ann@example.com",
	}}}
	statsSvc := service.NewStatsService(logger, reports, nil, 0)

	router := NewRouter(RouterDeps{
		Logger:      logger,
		CORSOrigins: []string{"*"},
		JWT:         jwtSvc,
		Profiles:    service.NewProfileService(profiles),
		Predictions: NewPredictionHandler(logger, predSvc),
		Public:      NewPublicHandler(logger, predSvc),
		Admin:       NewAdminHandler(logger, statsSvc, service.NewExportService(statsSvc)),
	})
	return &testServer{router: router, jwt: jwtSvc, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		token, err := s.jwt.IssueAccessToken(userID, userID+"@example.com")
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func fives() []int {
	out := make([]int, scoring.SurveyLength)
	for i := range out {
		out[i] = 5
	}
	return out
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPredict_Survey(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "survey", "responses": fives()})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decode(t, rec)
	if body["label"] != "Openness" || body["method"] != "survey" || body["id"] == nil {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["warning"]; ok {
		t.Fatalf("unexpected warning %v", body)
	}
	percentiles := body["percentiles"].(map[string]any)
	if percentiles["O"].(float64) != 100 {
		t.Fatalf("unexpected percentiles %v", percentiles)
	}
}

func TestPredict_ValidationErrors(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "text", "text": "too short"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decode(t, rec)
	if body["required"].(float64) != 3 || body["actual"].(float64) != 2 {
		t.Fatalf("expected required/actual, got %v", body)
	}

	rec = s.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "survey", "responses": []int{1, 2, 3}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	responses := fives()
	responses[7] = 9
	rec = s.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "survey", "responses": responses})
	body = decode(t, rec)
	if rec.Code != http.StatusBadRequest || body["index"].(float64) != 7 {
		t.Fatalf("expected index 7, got %d %v", rec.Code, body)
	}

	rec = s.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "video"})
	if rec.Code != http.StatusBadRequest || !strings.Contains(decode(t, rec)["error"].(string), "Invalid type") {
		t.Fatalf("expected invalid type error, got %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"text": "hello"})
	body = decode(t, rec)
	fields, ok := body["fields"].(map[string]any)
	if rec.Code != http.StatusBadRequest || !ok || fields["type"] != "is required" {
		t.Fatalf("expected field error, got %d %v", rec.Code, body)
	}

	rec = s.do(t, http.MethodPost, "/api/predict", "u1", "{not json")
	if rec.Code != http.StatusBadRequest || decode(t, rec)["error"] != "Invalid JSON in request body" {
		t.Fatalf("expected invalid json error, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestPredict_RequiresAuth(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodPost, "/api/predict", "", map[string]any{"type": "survey", "responses": fives()})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPredict_ProviderErrors(t *testing.T) {
	loading := newTestServer(t, &inference.MockProvider{Err: &inference.ModelLoadingError{Model: "m", RetryAfter: 20 * time.Second}})
	rec := loading.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "text", "text": "I like long walks"})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if decode(t, rec)["retryAfter"].(float64) != 20 || rec.Header().Get("Retry-After") != "20" {
		t.Fatalf("expected retryAfter 20, got %s", rec.Body.String())
	}

	failing := newTestServer(t, &inference.MockProvider{Err: &inference.StatusError{Model: "m", Code: 500, Detail: "boom"}})
	rec = failing.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "text", "text": "I like long walks"})
	body := decode(t, rec)
	if rec.Code != http.StatusBadGateway || body["error"] != "AI model error (500)" || body["detail"] != "boom" {
		t.Fatalf("expected 502, got %d %v", rec.Code, body)
	}

	ok := newTestServer(t, &inference.MockProvider{Vector: domain.UniformVector(0.5)})
	rec = ok.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "text", "text": "I like long walks"})
	if rec.Code != http.StatusOK || decode(t, rec)["method"] != "text_analysis" {
		t.Fatalf("expected text_analysis, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestShareAndPublicPrediction(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodPost, "/api/predict", "u1", map[string]any{"type": "survey", "responses": fives()})
	body := decode(t, rec)
	id := body["id"].(string)
	publicID := body["public_id"].(string)

	if rec := s.do(t, http.MethodGet, "/public/p/"+publicID, "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before sharing, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPatch, "/api/predictions/"+id+"/share", "u1", map[string]any{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without share flag, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPatch, "/api/predictions/"+id+"/share", "u2", map[string]any{"share": true}); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign prediction, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodPatch, "/api/predictions/"+id+"/share", "u1", map[string]any{"share": true}); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/public/p/"+publicID, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	pub := decode(t, rec)
	if pub["label"] != "Openness" || pub["input_content"] != "" || pub["user_id"] != "" {
		t.Fatalf("unexpected public body %v", pub)
	}

	rec = s.do(t, http.MethodGet, "/api/predictions", "u1", nil)
	if rec.Code != http.StatusOK || len(decode(t, rec)["predictions"].([]any)) != 1 {
		t.Fatalf("unexpected recent list %d %s", rec.Code, rec.Body.String())
	}

	rec = s.do(t, http.MethodGet, "/api/predictions/"+id+"/similar?k=abc", "u1", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad k, got %d", rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/api/predictions/"+id+"/similar", "u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPublicProfile(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/public/u/ann", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec := s.do(t, http.MethodGet, "/public/u/nobody", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	if rec := s.do(t, http.MethodGet, "/admin/stats", "u1", nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/admin/stats", "admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	stats := decode(t, rec)
	if stats["totalPredictions"].(float64) != 1 || stats["totalUsers"].(float64) != 1 {
		t.Fatalf("unexpected stats %v", stats)
	}

	rec = s.do(t, http.MethodGet, "/admin/export/predictions", "admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("expected csv content type, got %q", ct)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "predictions_export.csv") {
		t.Fatalf("unexpected disposition %q", rec.Header().Get("Content-Disposition"))
	}
	if !strings.HasPrefix(rec.Body.String(), "ID,User Email,Type,Label,Created At,O,C,E,A,N\n") {
		t.Fatalf("unexpected csv %q", rec.Body.String())
	}

	if rec := s.do(t, http.MethodGet, "/admin/export/everything", "admin", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown export, got %d", rec.Code)
	}
}

func TestSurveyItems(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/api/survey/items", "u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if items := decode(t, rec)["items"].([]any); len(items) != scoring.SurveyLength {
		t.Fatalf("expected 50 items, got %d", len(items))
	}
}
