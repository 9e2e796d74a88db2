package scoring

import (
	"strings"

	"ocean-predict/internal/domain"
)

// Engine agrupa los componentes de scoring. Se arma uno por proceso y se
// comparte; ningun metodo guarda estado entre llamadas.
type Engine struct {
	survey    *SurveyScorer
	extractor *FeatureExtractor
	strategy  Strategy
	minWords  int
}

type Option func(*Engine)

// WithSurveyItems reemplaza la tabla de items.
func WithSurveyItems(items []SurveyItem) Option {
	return func(e *Engine) { e.survey = NewSurveyScorer(items) }
}

// WithLexicon reemplaza el vocabulario de marcadores.
func WithLexicon(lex Lexicon) Option {
	return func(e *Engine) { e.extractor = NewFeatureExtractor(lex) }
}

// WithStrategy reemplaza la estrategia de texto.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) { e.strategy = s }
}

// WithMinWords fija el minimo de palabras por defecto. 0 lo desactiva.
func WithMinWords(n int) Option {
	return func(e *Engine) { e.minWords = n }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		survey:    NewSurveyScorer(RoundRobinItems()),
		extractor: NewFeatureExtractor(DefaultLexicon()),
		strategy:  WeightedStrategy{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// MinWords devuelve el minimo configurado.
func (e *Engine) MinWords() int {
	return e.minWords
}

// SurveyItems expone la tabla activa para los clientes que dibujan la encuesta.
func (e *Engine) SurveyItems() []SurveyItem {
	return e.survey.Items()
}

func (e *Engine) ScoreSurvey(responses []int) (domain.TraitVector, error) {
	return e.survey.Score(responses)
}

// ScoreText valida el texto y lo puntua con la estrategia configurada.
// minWords <= 0 desactiva el control de palabras.
func (e *Engine) ScoreText(text string, minWords int) (domain.TraitVector, error) {
	fc, err := e.Features(text, minWords)
	if err != nil {
		return domain.TraitVector{}, err
	}
	return e.strategy.Score(fc), nil
}

// EnhanceText aplica los ajustes por umbral sobre el vector que entrega el modelo.
// El vector se usa tal cual, incluso si es todo cero.
func (e *Engine) EnhanceText(text string, base domain.TraitVector) (domain.TraitVector, error) {
	fc, err := e.Features(text, 0)
	if err != nil {
		return domain.TraitVector{}, err
	}
	return ThresholdStrategy{Base: base}.Score(fc), nil
}

// Features valida el texto y extrae sus FeatureCounts.
func (e *Engine) Features(text string, minWords int) (FeatureCounts, error) {
	text = TruncateText(text, MaxTextRunes)
	if strings.TrimSpace(text) == "" {
		return FeatureCounts{}, newValidationError("text", "text input is empty", 0, 0)
	}
	if minWords > 0 {
		if n := CountWords(text); n < minWords {
			return FeatureCounts{}, newValidationError("text", "text is too short", minWords, n)
		}
	}
	return e.extractor.Extract(text), nil
}

func (e *Engine) Finalize(scores domain.TraitVector) Finalization {
	return Finalize(scores)
}
