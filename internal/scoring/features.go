package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"ocean-predict/internal/domain"
)

// MaxTextRunes es la ventana de analisis; el texto mas largo se corta antes de tokenizar.
const MaxTextRunes = 4000

// FeatureCounts es el perfil superficial y lexico de un texto, calculado por peticion.
type FeatureCounts struct {
	WordCount         int
	SentenceCount     int
	AvgWordLength     float64
	AvgSentenceLength float64
	Exclamations      int
	Questions         int

	// Markers[rasgo][categoria] cuenta palabras completas; MarkerTotals guarda
	// la suma ponderada por rasgo.
	Markers      map[domain.Trait]map[string]int
	MarkerTotals domain.TraitVector

	Positive     int
	Negative     int
	FirstPerson  int
	SecondPerson int
	ThirdPerson  int

	Coarse CoarseCounts
}

// CoarseCounts son los conteos de ThresholdStrategy, sobre su vocabulario fijo.
type CoarseCounts struct {
	Social       int
	Abstract     int
	Organization int
	Positive     int
	Negative     int
}

// Marker devuelve los aciertos de una categoria, 0 si no existe.
func (f FeatureCounts) Marker(t domain.Trait, category string) int {
	return f.Markers[t][category]
}

func (f FeatureCounts) density(n int) float64 {
	if f.WordCount == 0 {
		return 0
	}
	return float64(n) / float64(f.WordCount)
}

type markerRef struct {
	trait    domain.Trait
	category string
	weight   float64
}

// FeatureExtractor convierte texto en FeatureCounts. No cambia despues de
// construirse y se puede usar desde varias goroutines.
type FeatureExtractor struct {
	markers  map[string][]markerRef
	positive map[string]struct{}
	negative map[string]struct{}
	first    map[string]struct{}
	second   map[string]struct{}
	third    map[string]struct{}
}

func NewFeatureExtractor(lex Lexicon) *FeatureExtractor {
	x := &FeatureExtractor{
		markers:  make(map[string][]markerRef),
		positive: wordSet(lex.Positive),
		negative: wordSet(lex.Negative),
		first:    wordSet(lex.FirstPerson),
		second:   wordSet(lex.SecondPerson),
		third:    wordSet(lex.ThirdPerson),
	}
	for _, t := range domain.Traits {
		for _, cat := range lex.Markers[t] {
			ref := markerRef{trait: t, category: cat.Name, weight: cat.weight()}
			for w := range wordSet(cat.Words) {
				x.markers[w] = append(x.markers[w], ref)
			}
		}
	}
	return x
}

// Extract calcula FeatureCounts. Una entrada degenerada da conteos en cero.
func (x *FeatureExtractor) Extract(text string) FeatureCounts {
	text = TruncateText(text, MaxTextRunes)
	lower := strings.ToLower(text)

	fc := FeatureCounts{
		Markers:      make(map[domain.Trait]map[string]int, len(domain.Traits)),
		Exclamations: strings.Count(text, "!"),
		Questions:    strings.Count(text, "?"),
	}

	letters := 0
	for _, word := range Words(lower) {
		fc.WordCount++
		letters += utf8.RuneCountInString(word)

		for _, ref := range x.markers[word] {
			byCat := fc.Markers[ref.trait]
			if byCat == nil {
				byCat = make(map[string]int)
				fc.Markers[ref.trait] = byCat
			}
			byCat[ref.category]++
			fc.MarkerTotals = fc.MarkerTotals.With(ref.trait, fc.MarkerTotals.Get(ref.trait)+ref.weight)
		}
		if _, ok := x.positive[word]; ok {
			fc.Positive++
		}
		if _, ok := x.negative[word]; ok {
			fc.Negative++
		}
		if _, ok := x.first[word]; ok {
			fc.FirstPerson++
		}
		if _, ok := x.second[word]; ok {
			fc.SecondPerson++
		}
		if _, ok := x.third[word]; ok {
			fc.ThirdPerson++
		}
		countCoarse(&fc.Coarse, word)
	}

	fc.SentenceCount = len(Sentences(text))
	if fc.WordCount > 0 {
		fc.AvgWordLength = float64(letters) / float64(fc.WordCount)
		fc.AvgSentenceLength = float64(fc.WordCount) / float64(max(fc.SentenceCount, 1))
	}
	return fc
}

// Words separa por espacios y recorta la puntuacion de cada token.
// Se descartan los tokens sin letras ni digitos.
func Words(text string) []string {
	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// CountWords es len(Words(text)).
func CountWords(text string) int {
	return len(Words(text))
}

// Sentences corta en '.', '!' y '?' y descarta segmentos vacios.
func Sentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := parts[:0]
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// TruncateText conserva como maximo n runas de s.
func TruncateText(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func countCoarse(c *CoarseCounts, word string) {
	if _, ok := coarseSocial[word]; ok {
		c.Social++
	}
	if _, ok := coarseAbstract[word]; ok {
		c.Abstract++
	}
	if _, ok := coarseOrganization[word]; ok {
		c.Organization++
	}
	if _, ok := coarsePositive[word]; ok {
		c.Positive++
	}
	if _, ok := coarseNegative[word]; ok {
		c.Negative++
	}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}
