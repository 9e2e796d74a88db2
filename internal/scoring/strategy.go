package scoring

import (
	"math"

	"ocean-predict/internal/domain"
)

// Strategy lleva rasgos del texto a puntajes crudos. Las implementaciones deben ser puras.
type Strategy interface {
	Score(fc FeatureCounts) domain.TraitVector
}

// Limites de salida de cada estrategia.
const (
	WeightedMin  = 0.2
	WeightedMax  = 0.8
	ThresholdMin = 0.1
	ThresholdMax = 0.9
)

// WeightedStrategy puntua cada rasgo con la densidad ponderada de marcadores mas
// un bono chico, y despues corrige por afecto y por pronombres, en ese orden.
type WeightedStrategy struct{}

func (WeightedStrategy) Score(fc FeatureCounts) domain.TraitVector {
	var v domain.TraitVector
	if fc.WordCount == 0 {
		return domain.UniformVector(0.5)
	}

	bonus := weightedBonuses(fc)
	for _, t := range domain.Traits {
		raw := 0.5 + markerDensity(fc.MarkerTotals.Get(t), fc.WordCount) + bonus.Get(t)
		v = v.With(t, domain.Clamp(raw, WeightedMin, WeightedMax))
	}

	positiveRatio := fc.density(fc.Positive)
	v.N = domain.Clamp(v.N-positiveRatio*0.5, WeightedMin, WeightedMax)

	e := v.E
	if fc.density(fc.FirstPerson) > 0.10 {
		e -= 0.05
	}
	if fc.density(fc.SecondPerson) > 0.05 || fc.density(fc.ThirdPerson) > 0.05 {
		e += 0.05
	}
	v.E = domain.Clamp(e, WeightedMin, WeightedMax)
	return v
}

// markerDensity es min(total/palabras*50, 1).
func markerDensity(total float64, words int) float64 {
	if words <= 0 {
		return 0
	}
	return math.Min(total/float64(words)*50, 1)
}

func weightedBonuses(fc FeatureCounts) domain.TraitVector {
	var b domain.TraitVector
	if fc.AvgWordLength > 6 {
		b.O += 0.05
	}
	if fc.AvgSentenceLength > 20 {
		b.C += 0.05
	}
	if fc.Exclamations > 2 {
		b.E += 0.05
	} else {
		b.E -= 0.05
	}
	switch {
	case fc.Positive > fc.Negative:
		b.A += 0.05
	case fc.Negative > fc.Positive:
		b.A -= 0.05
		b.N += 0.10
	}
	return b
}

// ThresholdStrategy suma ajustes gruesos sobre Base, normalmente el vector que
// devuelve un modelo externo. Base se usa tal cual; un vector en cero es valido.
type ThresholdStrategy struct {
	Base domain.TraitVector
}

const placeholderScore = 0.5

// NewPlaceholderThreshold arma la variante por umbral sobre una base neutra de
// 0.5, para puntuar texto sin modelo.
func NewPlaceholderThreshold() ThresholdStrategy {
	return ThresholdStrategy{Base: domain.UniformVector(placeholderScore)}
}

func (s ThresholdStrategy) Score(fc FeatureCounts) domain.TraitVector {
	c := fc.Coarse

	var adj domain.TraitVector
	if c.Social > 2 {
		adj.E += 0.05
	}
	if fc.FirstPerson > 8 {
		adj.E -= 0.03
	}
	if c.Negative > c.Positive {
		adj.N += 0.06
	} else {
		adj.N -= 0.04
	}
	if fc.Exclamations > 3 {
		adj.N += 0.02
	}
	if c.Abstract > 2 {
		adj.O += 0.05
	}
	if fc.AvgWordLength > 6 {
		adj.O += 0.03
	}
	if c.Organization > 2 {
		adj.C += 0.05
	}
	if fc.WordCount > 250 {
		adj.C += 0.03
	}
	if c.Positive > c.Negative+2 {
		adj.A += 0.05
	}
	if fc.Questions > 1 {
		adj.A += 0.02
	}

	var out domain.TraitVector
	for _, t := range domain.Traits {
		out = out.With(t, domain.Clamp(s.Base.Get(t)+adj.Get(t), ThresholdMin, ThresholdMax))
	}
	return out
}
