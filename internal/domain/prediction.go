package domain

import "time"

const (
	InputTypeText   = "text"
	InputTypeSurvey = "survey"

	MethodSurvey       = "survey"
	MethodTextAnalysis = "text_analysis"
	MethodTextLexicon  = "text_lexicon"
)

// PredictionResult es la salida final del motor: puntajes, percentiles y rasgo dominante.
type PredictionResult struct {
	Scores      TraitVector `json:"scores"`
	Percentiles Percentiles `json:"percentiles"`
	Label       string      `json:"label"`
}

// Prediction es un resultado persistido junto con los metadatos de la entrada.
type Prediction struct {
	ID           string      `json:"id"`
	PublicID     string      `json:"public_id"`
	UserID       string      `json:"user_id"`
	InputType    string      `json:"input_type"`
	InputContent string      `json:"input_content"`
	Method       string      `json:"method"`
	Scores       TraitVector `json:"scores"`
	Percentiles  Percentiles `json:"percentiles"`
	Label        string      `json:"label"`
	Share        bool        `json:"share"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Result devuelve la parte calculada por el motor.
func (p Prediction) Result() PredictionResult {
	return PredictionResult{Scores: p.Scores, Percentiles: p.Percentiles, Label: p.Label}
}

// PredictionReport es una fila de reporte administrativo (prediccion + email del autor).
type PredictionReport struct {
	Prediction
	UserEmail string `json:"user_email,omitempty"`
}
