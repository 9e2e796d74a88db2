package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidInput es el error base al que se reduce todo ValidationError.
var ErrInvalidInput = errors.New("invalid scoring input")

// ValidationError describe una entrada que el llamador debe corregir.
// Required y Actual llevan conteos (palabras, respuestas, limites Likert) cuando aplican;
// Index apunta a la respuesta invalida de la encuesta, o vale -1.
type ValidationError struct {
	Field    string
	Reason   string
	Required int
	Actual   int
	Index    int
}

func (e *ValidationError) Error() string {
	switch {
	case e.Index >= 0:
		return fmt.Sprintf("%s[%d]: %s (got %d)", e.Field, e.Index, e.Reason, e.Actual)
	case e.Required > 0:
		return fmt.Sprintf("%s: %s (required %d, got %d)", e.Field, e.Reason, e.Required, e.Actual)
	default:
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func newValidationError(field, reason string, required, actual int) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Required: required, Actual: actual, Index: -1}
}
