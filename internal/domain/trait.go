package domain

import (
	"math"
	"strings"
)

// Trait identifica uno de los cinco rasgos Big Five por su inicial.
type Trait string

const (
	Openness          Trait = "O"
	Conscientiousness Trait = "C"
	Extraversion      Trait = "E"
	Agreeableness     Trait = "A"
	Neuroticism       Trait = "N"
)

// Traits es el orden fijo O, C, E, A, N. Los recorridos de etiquetas y de
// asignacion round-robin dependen de este orden.
var Traits = [5]Trait{Openness, Conscientiousness, Extraversion, Agreeableness, Neuroticism}

var traitNames = map[Trait]string{
	Openness:          "Openness",
	Conscientiousness: "Conscientiousness",
	Extraversion:      "Extraversion",
	Agreeableness:     "Agreeableness",
	Neuroticism:       "Neuroticism",
}

// Name devuelve el nombre visible del rasgo.
func (t Trait) Name() string {
	return traitNames[t]
}

func (t Trait) Valid() bool {
	_, ok := traitNames[t]
	return ok
}

// TraitFromName acepta la inicial o el nombre completo, sin distinguir mayusculas.
func TraitFromName(s string) (Trait, bool) {
	for _, t := range Traits {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Name()) {
			return t, true
		}
	}
	return "", false
}

// TraitVector guarda un puntaje por rasgo. Siempre tiene los cinco.
type TraitVector struct {
	O float64 `json:"O"`
	C float64 `json:"C"`
	E float64 `json:"E"`
	A float64 `json:"A"`
	N float64 `json:"N"`
}

// UniformVector devuelve un vector con el mismo valor en los cinco rasgos.
func UniformVector(v float64) TraitVector {
	return TraitVector{O: v, C: v, E: v, A: v, N: v}
}

// VectorFromSlice construye un vector desde valores en orden O, C, E, A, N.
func VectorFromSlice(values []float64) (TraitVector, bool) {
	if len(values) < len(Traits) {
		return TraitVector{}, false
	}
	var v TraitVector
	for i, t := range Traits {
		v = v.With(t, values[i])
	}
	return v, true
}

func (v TraitVector) Get(t Trait) float64 {
	switch t {
	case Openness:
		return v.O
	case Conscientiousness:
		return v.C
	case Extraversion:
		return v.E
	case Agreeableness:
		return v.A
	case Neuroticism:
		return v.N
	}
	return 0
}

// With devuelve una copia con el rasgo t reemplazado.
func (v TraitVector) With(t Trait, value float64) TraitVector {
	switch t {
	case Openness:
		v.O = value
	case Conscientiousness:
		v.C = value
	case Extraversion:
		v.E = value
	case Agreeableness:
		v.A = value
	case Neuroticism:
		v.N = value
	}
	return v
}

// Clamp devuelve una copia con cada valor acotado a [lo, hi].
func (v TraitVector) Clamp(lo, hi float64) TraitVector {
	out := v
	for _, t := range Traits {
		out = out.With(t, Clamp(v.Get(t), lo, hi))
	}
	return out
}

// Slice devuelve los valores en orden O, C, E, A, N.
func (v TraitVector) Slice() []float64 {
	return []float64{v.O, v.C, v.E, v.A, v.N}
}

// Float32 se usa para columnas pgvector.
func (v TraitVector) Float32() []float32 {
	return []float32{float32(v.O), float32(v.C), float32(v.E), float32(v.A), float32(v.N)}
}

// Percentiles espeja TraitVector con enteros 0-100.
type Percentiles struct {
	O int `json:"O"`
	C int `json:"C"`
	E int `json:"E"`
	A int `json:"A"`
	N int `json:"N"`
}

func (p Percentiles) Get(t Trait) int {
	switch t {
	case Openness:
		return p.O
	case Conscientiousness:
		return p.C
	case Extraversion:
		return p.E
	case Agreeableness:
		return p.A
	case Neuroticism:
		return p.N
	}
	return 0
}

func (p Percentiles) With(t Trait, value int) Percentiles {
	switch t {
	case Openness:
		p.O = value
	case Conscientiousness:
		p.C = value
	case Extraversion:
		p.E = value
	case Agreeableness:
		p.A = value
	case Neuroticism:
		p.N = value
	}
	return p
}

// Clamp acota x a [lo, hi]. NaN cae en lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Max(lo, math.Min(hi, x))
}
