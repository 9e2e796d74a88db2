package scoring

import (
	"math"

	"ocean-predict/internal/domain"
)

// Finalization es la parte derivada de un PredictionResult.
type Finalization struct {
	Percentiles domain.Percentiles
	Label       string
}

// Finalize calcula percentiles y la etiqueta del rasgo dominante. Nunca falla
// ni modifica su entrada.
func Finalize(scores domain.TraitVector) Finalization {
	var p domain.Percentiles
	for _, t := range domain.Traits {
		p = p.With(t, percentile(scores.Get(t)))
	}
	return Finalization{Percentiles: p, Label: DominantTrait(scores).Name()}
}

// NewResult junta los puntajes con su finalizacion.
func NewResult(scores domain.TraitVector) domain.PredictionResult {
	f := Finalize(scores)
	return domain.PredictionResult{
		Scores:      scores,
		Percentiles: f.Percentiles,
		Label:       f.Label,
	}
}

// DominantTrait recorre Traits desde Openness y solo cambia de ganador con un
// puntaje estrictamente mayor; los empates quedan en el primer rasgo.
func DominantTrait(scores domain.TraitVector) domain.Trait {
	best, top := domain.Openness, scores.Get(domain.Openness)
	if math.IsNaN(top) {
		top = math.Inf(-1)
	}
	for _, t := range domain.Traits[1:] {
		if v := scores.Get(t); v > top {
			best, top = t, v
		}
	}
	return best
}

func percentile(score float64) int {
	return int(math.Round(domain.Clamp(score, 0, 1) * 100))
}
