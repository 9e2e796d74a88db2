package scoring

import "ocean-predict/internal/domain"

// MarkerCategory es una lista de palabras con nombre que sirve de senal debil para un rasgo.
type MarkerCategory struct {
	Name   string
	Words  []string
	Weight float64
}

// Lexicon reune los vocabularios contra los que compara el extractor.
// El extractor lo indexa al construirse; cambios posteriores no lo afectan.
type Lexicon struct {
	Markers      map[domain.Trait][]MarkerCategory
	Positive     []string
	Negative     []string
	FirstPerson  []string
	SecondPerson []string
	ThirdPerson  []string
}

// Nombres de categorias del lexico por defecto.
const (
	CategoryAbstract     = "abstract"
	CategoryOrganization = "organization"
	CategorySocial       = "social"
)

// DefaultLexicon arma el vocabulario incluido. Cada llamada devuelve una copia
// nueva. Los pesos de categoria valen 1.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Markers: map[domain.Trait][]MarkerCategory{
			domain.Openness: {
				{Name: CategoryAbstract, Words: []string{"idea", "ideas", "concept", "concepts", "theory", "theories", "abstract", "philosophy", "meaning", "imagine"}},
				{Name: "intellectual", Words: []string{"think", "thinking", "learn", "learning", "knowledge", "analyze", "research", "read", "reading", "study"}},
				{Name: "creative", Words: []string{"creative", "create", "art", "artistic", "design", "invent", "music", "write", "writing", "poetry"}},
				{Name: "curiosity", Words: []string{"curious", "curiosity", "explore", "exploring", "discover", "wonder", "travel", "novel", "experiment"}},
			},
			domain.Conscientiousness: {
				{Name: CategoryOrganization, Words: []string{"plan", "plans", "planning", "organize", "organized", "schedule", "detail", "details", "system", "order", "list"}},
				{Name: "achievement", Words: []string{"goal", "goals", "achieve", "achievement", "accomplish", "success", "finish", "complete", "deadline"}},
				{Name: "discipline", Words: []string{"discipline", "disciplined", "routine", "focus", "focused", "prepare", "prepared", "responsible", "diligent", "careful"}},
				{Name: "orderly", Words: []string{"tidy", "neat", "clean", "precise", "punctual", "thorough", "structured", "efficient"}},
			},
			domain.Extraversion: {
				{Name: CategorySocial, Words: []string{"we", "us", "our", "together", "friend", "friends", "people", "party", "parties", "social", "team"}},
				{Name: "energy", Words: []string{"excited", "exciting", "energy", "energetic", "fun", "active", "adventure", "thrill", "lively"}},
				{Name: "assertive", Words: []string{"lead", "leader", "leading", "confident", "outgoing", "speak", "talk", "talking", "loud"}},
			},
			domain.Agreeableness: {
				{Name: "warmth", Words: []string{"kind", "kindness", "care", "caring", "warm", "gentle", "sweet", "friendly"}},
				{Name: "trust", Words: []string{"trust", "honest", "fair", "forgive", "respect", "loyal", "sincere"}},
				{Name: "cooperation", Words: []string{"help", "helping", "share", "sharing", "cooperate", "support", "agree", "compromise"}},
				{Name: "empathy", Words: []string{"empathy", "compassion", "listen", "feelings", "grateful", "thank", "thanks", "appreciate"}},
			},
			domain.Neuroticism: {
				{Name: "anxiety", Words: []string{"worry", "worried", "anxious", "anxiety", "nervous", "afraid", "fear", "stress", "stressed", "panic"}},
				{Name: "anger", Words: []string{"angry", "anger", "hate", "annoyed", "frustrated", "irritated", "mad", "upset"}},
				{Name: "sadness", Words: []string{"sad", "lonely", "depressed", "cry", "crying", "hurt", "hopeless", "miserable"}},
				{Name: "vulnerability", Words: []string{"overwhelmed", "insecure", "guilty", "ashamed", "doubt", "moody", "tense"}},
			},
		},
		Positive:     []string{"good", "great", "love", "like", "happy", "joy", "excited", "wonderful", "amazing", "enjoy", "glad", "fun"},
		Negative:     []string{"not", "never", "no", "bad", "hate", "dislike", "worry", "anxious", "stress", "sad", "terrible", "awful"},
		FirstPerson:  []string{"i", "me", "my", "mine", "myself"},
		SecondPerson: []string{"you", "your", "yours", "yourself"},
		ThirdPerson:  []string{"he", "she", "they", "him", "her", "them", "his", "hers", "their", "theirs"},
	}
}

func (c MarkerCategory) weight() float64 {
	if c.Weight == 0 {
		return 1
	}
	return c.Weight
}

// Vocabulario fijo de los conteos gruesos. No depende del Lexicon configurado.
var (
	coarseSocial       = wordSet([]string{"we", "us", "our", "together", "friend", "people", "party", "social"})
	coarseAbstract     = wordSet([]string{"idea", "think", "theory", "concept", "imagine", "philosophy", "creative"})
	coarseOrganization = wordSet([]string{"plan", "organize", "schedule", "detail", "prepare", "order", "system"})
	coarsePositive     = wordSet([]string{"good", "great", "love", "like", "happy", "joy", "excited", "wonderful"})
	coarseNegative     = wordSet([]string{"not", "never", "no", "bad", "hate", "dislike", "worry", "anxious", "stress"})
)
