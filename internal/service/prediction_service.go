package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"ocean-predict/internal/domain"
	"ocean-predict/internal/inference"
	"ocean-predict/internal/repository"
	"ocean-predict/internal/scoring"
)

var (
	ErrInvalidType = errors.New(`invalid type: must be "text" or "survey"`)
	ErrRateLimited = errors.New("rate limited")
	ErrNotFound    = errors.New("not found")
)

const (
	// SurveyInputContent se guarda en lugar de las respuestas crudas.
	SurveyInputContent = "IPIP-50 Survey Response"
	PersistWarning     = "Results calculated but not saved to database"

	maxStoredInput  = 500
	recentLimit     = 10
	publicListLimit = 20
	defaultSimilarK = 5
	maxSimilarK     = 20
)

// PredictionService orquesta el motor de scoring, el proveedor de inferencia
// opcional y la persistencia.
type PredictionService struct {
	logger      *zap.Logger
	engine      *scoring.Engine
	provider    inference.Provider
	predictions repository.PredictionRepository
	profiles    repository.ProfileRepository
	limiter     RateLimiter
	now         func() time.Time
}

// NewPredictionService acepta provider, limiter y repositorios nil. Sin provider
// el texto se puntua solo con el lexico.
func NewPredictionService(
	logger *zap.Logger,
	engine *scoring.Engine,
	provider inference.Provider,
	predictions repository.PredictionRepository,
	profiles repository.ProfileRepository,
	limiter RateLimiter,
) *PredictionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = scoring.NewEngine()
	}
	return &PredictionService{
		logger:      logger,
		engine:      engine,
		provider:    provider,
		predictions: predictions,
		profiles:    profiles,
		limiter:     limiter,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

type PredictInput struct {
	UserID    string
	Email     string
	Type      string
	Text      string
	Responses []int
}

// PredictOutput es la respuesta de /api/predict. ID queda vacio si no se guardo.
type PredictOutput struct {
	ID       string `json:"id,omitempty"`
	PublicID string `json:"public_id,omitempty"`
	domain.PredictionResult
	Method  string `json:"method"`
	Warning string `json:"warning,omitempty"`
}

// PublicProfile es la vista publica de un usuario con sus predicciones compartidas.
type PublicProfile struct {
	Handle      string              `json:"handle"`
	DisplayName string              `json:"display_name,omitempty"`
	Predictions []domain.Prediction `json:"predictions"`
}

func (s *PredictionService) Predict(ctx context.Context, input PredictInput) (PredictOutput, error) {
	var (
		scores  domain.TraitVector
		method  string
		content string
		text    string
		err     error
	)
	// Solo la entrada valida consume cupo del limitador.
	inputType := strings.ToLower(strings.TrimSpace(input.Type))
	switch inputType {
	case domain.InputTypeSurvey:
		scores, err = s.engine.ScoreSurvey(input.Responses)
		method = domain.MethodSurvey
		content = SurveyInputContent
	case domain.InputTypeText:
		text = scoring.TruncateText(input.Text, scoring.MaxTextRunes)
		_, err = s.engine.Features(text, s.engine.MinWords())
		content = scoring.TruncateText(text, maxStoredInput)
	default:
		return PredictOutput{}, ErrInvalidType
	}
	if err != nil {
		return PredictOutput{}, err
	}

	if s.limiter != nil && !s.limiter.Allow(ctx, input.UserID) {
		return PredictOutput{}, ErrRateLimited
	}

	if inputType == domain.InputTypeText {
		scores, method, err = s.scoreText(ctx, text)
		if err != nil {
			return PredictOutput{}, err
		}
	}

	out := PredictOutput{
		PredictionResult: scoring.NewResult(scores),
		Method:           method,
	}

	prediction := domain.Prediction{
		ID:           uuid.NewString(),
		PublicID:     uuid.NewString(),
		UserID:       input.UserID,
		InputType:    inputType,
		InputContent: content,
		Method:       method,
		Scores:       out.Scores,
		Percentiles:  out.Percentiles,
		Label:        out.Label,
		CreatedAt:    s.now(),
	}
	if err := s.persist(ctx, prediction, input.Email); err != nil {
		s.logger.Warn("prediction not persisted",
			zap.String("user_id", input.UserID),
			zap.String("method", method),
			zap.Error(err),
		)
		out.Warning = PersistWarning
		return out, nil
	}
	out.ID = prediction.ID
	out.PublicID = prediction.PublicID
	return out, nil
}

// scoreText asume texto ya validado por Predict.
func (s *PredictionService) scoreText(ctx context.Context, text string) (domain.TraitVector, string, error) {
	if s.provider == nil {
		scores, err := s.engine.ScoreText(text, s.engine.MinWords())
		return scores, domain.MethodTextLexicon, err
	}
	base, err := s.provider.Predict(ctx, text)
	if err != nil {
		return domain.TraitVector{}, "", fmt.Errorf("inference: %w", err)
	}
	scores, err := s.engine.EnhanceText(text, base)
	return scores, domain.MethodTextAnalysis, err
}

func (s *PredictionService) persist(ctx context.Context, p domain.Prediction, email string) error {
	if s.predictions == nil {
		return errors.New("prediction repository not configured")
	}
	if s.profiles != nil {
		if _, err := s.profiles.Ensure(ctx, domain.Profile{ID: p.UserID, Email: email, CreatedAt: p.CreatedAt}); err != nil {
			return fmt.Errorf("ensure profile: %w", err)
		}
	}
	return s.predictions.Create(ctx, p)
}

// SurveyItems expone la tabla de items activa para que el cliente arme el cuestionario.
func (s *PredictionService) SurveyItems() []scoring.SurveyItem {
	return s.engine.SurveyItems()
}

// Recent devuelve las ultimas predicciones del usuario, mas nuevas primero.
func (s *PredictionService) Recent(ctx context.Context, userID string) ([]domain.Prediction, error) {
	if s.predictions == nil {
		return nil, errors.New("prediction repository not configured")
	}
	preds, err := s.predictions.ListRecentByUser(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}
	if preds == nil {
		preds = []domain.Prediction{}
	}
	return preds, nil
}

func (s *PredictionService) SetShare(ctx context.Context, userID, id string, share bool) error {
	if s.predictions == nil {
		return errors.New("prediction repository not configured")
	}
	return notFound(s.predictions.SetShare(ctx, userID, id, share))
}

// Similar busca las k predicciones mas cercanas a una del usuario.
func (s *PredictionService) Similar(ctx context.Context, userID, id string, k int) ([]domain.Prediction, error) {
	if s.predictions == nil {
		return nil, errors.New("prediction repository not configured")
	}
	if k <= 0 {
		k = defaultSimilarK
	}
	if k > maxSimilarK {
		k = maxSimilarK
	}
	p, err := s.predictions.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if p.UserID != userID {
		return nil, ErrNotFound
	}
	similar, err := s.predictions.FindSimilar(ctx, userID, id, p.Scores, k)
	if err != nil {
		return nil, err
	}
	for i := range similar {
		if similar[i].UserID != userID {
			similar[i] = publicView(similar[i])
		}
	}
	if similar == nil {
		similar = []domain.Prediction{}
	}
	return similar, nil
}

func (s *PredictionService) PublicPrediction(ctx context.Context, publicID string) (domain.Prediction, error) {
	if s.predictions == nil {
		return domain.Prediction{}, errors.New("prediction repository not configured")
	}
	p, err := s.predictions.GetByPublicID(ctx, publicID)
	if err != nil {
		return domain.Prediction{}, notFound(err)
	}
	if !p.Share {
		return domain.Prediction{}, ErrNotFound
	}
	return publicView(p), nil
}

func (s *PredictionService) PublicProfile(ctx context.Context, handle string) (PublicProfile, error) {
	if s.predictions == nil || s.profiles == nil {
		return PublicProfile{}, errors.New("repositories not configured")
	}
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return PublicProfile{}, ErrNotFound
	}
	profile, err := s.profiles.GetByHandle(ctx, handle)
	if err != nil {
		return PublicProfile{}, notFound(err)
	}
	preds, err := s.predictions.ListSharedByHandle(ctx, handle, publicListLimit)
	if err != nil {
		return PublicProfile{}, err
	}
	out := PublicProfile{
		Handle:      profile.PublicHandle,
		DisplayName: profile.DisplayName,
		Predictions: make([]domain.Prediction, 0, len(preds)),
	}
	for _, p := range preds {
		out.Predictions = append(out.Predictions, publicView(p))
	}
	return out, nil
}

// publicView quita los datos privados antes de exponer una prediccion ajena.
func publicView(p domain.Prediction) domain.Prediction {
	p.ID = ""
	p.UserID = ""
	p.InputContent = ""
	return p
}

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
