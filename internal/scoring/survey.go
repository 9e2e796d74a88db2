package scoring

import (
	"fmt"

	"ocean-predict/internal/domain"
)

const (
	SurveyLength = 50
	LikertMin    = 1
	LikertMax    = 5

	neutralMean = 3.0
)

// Modos de asignacion aceptados por SurveyItemsFor.
const (
	KeyingRoundRobin = "round_robin"
	KeyingIPIP50     = "ipip50"
)

// SurveyItem liga una posicion de la encuesta con su rasgo. Los items inversos puntuan 6 - v.
type SurveyItem struct {
	ID      int          `json:"id"`
	Text    string       `json:"text"`
	Trait   domain.Trait `json:"trait"`
	Reverse bool         `json:"reverse"`
}

// RoundRobinItems asigna la posicion i a Traits[i mod 5], sin items inversos.
func RoundRobinItems() []SurveyItem {
	items := make([]SurveyItem, SurveyLength)
	for i := range items {
		items[i] = SurveyItem{ID: i + 1, Trait: domain.Traits[i%len(domain.Traits)]}
	}
	for i, it := range ipip50 {
		items[i].Text = it.Text
	}
	return items
}

// IPIP50Items devuelve los marcadores IPIP-50 de Goldberg con su clave publicada.
func IPIP50Items() []SurveyItem {
	items := make([]SurveyItem, len(ipip50))
	copy(items, ipip50)
	return items
}

// SurveyItemsFor resuelve un modo de asignacion por nombre.
func SurveyItemsFor(keying string) ([]SurveyItem, error) {
	switch keying {
	case "", KeyingRoundRobin:
		return RoundRobinItems(), nil
	case KeyingIPIP50:
		return IPIP50Items(), nil
	}
	return nil, fmt.Errorf("unknown survey keying %q", keying)
}

// SurveyScorer promedia las respuestas Likert por rasgo y reescala a [0, 1].
type SurveyScorer struct {
	items []SurveyItem
}

func NewSurveyScorer(items []SurveyItem) *SurveyScorer {
	owned := make([]SurveyItem, len(items))
	copy(owned, items)
	return &SurveyScorer{items: owned}
}

// Items devuelve una copia de la tabla.
func (s *SurveyScorer) Items() []SurveyItem {
	out := make([]SurveyItem, len(s.items))
	copy(out, s.items)
	return out
}

// Validate revisa largo y rango Likert sin puntuar.
func (s *SurveyScorer) Validate(responses []int) error {
	if len(responses) != SurveyLength {
		return newValidationError("responses", "survey must have exactly 50 responses", SurveyLength, len(responses))
	}
	for i, v := range responses {
		if v < LikertMin || v > LikertMax {
			return &ValidationError{
				Field:  "responses",
				Reason: fmt.Sprintf("response must be between %d and %d", LikertMin, LikertMax),
				Actual: v,
				Index:  i,
			}
		}
	}
	return nil
}

func (s *SurveyScorer) Score(responses []int) (domain.TraitVector, error) {
	if err := s.Validate(responses); err != nil {
		return domain.TraitVector{}, err
	}

	var sums domain.TraitVector
	counts := make(map[domain.Trait]int, len(domain.Traits))
	for i, raw := range responses {
		if i >= len(s.items) {
			break
		}
		item := s.items[i]
		v := float64(raw)
		if item.Reverse {
			v = float64(LikertMax+LikertMin) - v
		}
		sums = sums.With(item.Trait, sums.Get(item.Trait)+v)
		counts[item.Trait]++
	}

	var out domain.TraitVector
	for _, t := range domain.Traits {
		mean := neutralMean
		if n := counts[t]; n > 0 {
			mean = sums.Get(t) / float64(n)
		}
		out = out.With(t, normalizeLikert(mean))
	}
	return out, nil
}

// normalizeLikert lleva una media 1-5 a 0-1.
func normalizeLikert(mean float64) float64 {
	return (mean - LikertMin) / (LikertMax - LikertMin)
}
