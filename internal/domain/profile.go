package domain

import "time"

// Profile es el usuario autenticado tal como lo ve el servicio.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name,omitempty"`
	PublicHandle string    `json:"public_handle,omitempty"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// ProfileReport agrega el conteo de predicciones para exportaciones.
type ProfileReport struct {
	Profile
	TotalPredictions int `json:"total_predictions"`
}
