package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"time"

	"ocean-predict/internal/domain"
)

var ErrUnknownExport = errors.New("unknown export kind")

// Tipos de exportacion soportados por Export.
const (
	ExportPredictions = "predictions"
	ExportUsers       = "users"
	ExportGrouped     = "grouped"
)

const missingEmail = "N/A"

// ExportService arma los CSV del panel de administracion.
type ExportService struct {
	stats *StatsService
}

func NewExportService(stats *StatsService) *ExportService {
	return &ExportService{stats: stats}
}

// Filename devuelve el nombre sugerido para la descarga.
func Filename(kind string) string {
	switch kind {
	case ExportGrouped:
		return "grouped_by_personality.csv"
	case ExportUsers:
		return "users_export.csv"
	}
	return "predictions_export.csv"
}

func (s *ExportService) Export(ctx context.Context, kind string) ([]byte, error) {
	switch kind {
	case ExportPredictions, ExportUsers, ExportGrouped:
	default:
		return nil, ErrUnknownExport
	}
	data, err := s.stats.Load(ctx)
	if err != nil {
		return nil, err
	}
	return RenderCSV(kind, data)
}

// RenderCSV serializa data segun kind.
func RenderCSV(kind string, data AdminData) ([]byte, error) {
	var rows [][]string
	switch kind {
	case ExportPredictions:
		rows = predictionRows(data.Predictions)
	case ExportUsers:
		rows = userRows(data.Profiles)
	case ExportGrouped:
		rows = groupedRows(data.Predictions)
	default:
		return nil, ErrUnknownExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func predictionRows(preds []domain.PredictionReport) [][]string {
	rows := [][]string{{"ID", "User Email", "Type", "Label", "Created At", "O", "C", "E", "A", "N"}}
	for _, p := range preds {
		row := []string{p.ID, emailOrMissing(p.UserEmail), p.InputType, p.Label, formatTime(p.CreatedAt)}
		for _, t := range domain.Traits {
			row = append(row, strconv.FormatFloat(p.Scores.Get(t), 'f', -1, 64))
		}
		rows = append(rows, row)
	}
	return rows
}

func userRows(profiles []domain.ProfileReport) [][]string {
	rows := [][]string{{"ID", "Email", "Display Name", "Handle", "Created At", "Total Predictions"}}
	for _, u := range profiles {
		rows = append(rows, []string{
			u.ID,
			u.Email,
			u.DisplayName,
			u.PublicHandle,
			formatTime(u.CreatedAt),
			strconv.Itoa(u.TotalPredictions),
		})
	}
	return rows
}

// groupedRows cuenta predicciones por rasgo dominante y lista emails unicos en
// orden de aparicion.
func groupedRows(preds []domain.PredictionReport) [][]string {
	counts := make(map[domain.Trait]int, len(domain.Traits))
	emails := make(map[domain.Trait][]string, len(domain.Traits))
	seen := make(map[domain.Trait]map[string]bool, len(domain.Traits))
	for _, p := range preds {
		t, ok := domain.TraitFromName(p.Label)
		if !ok {
			continue
		}
		counts[t]++
		email := emailOrMissing(p.UserEmail)
		if seen[t] == nil {
			seen[t] = make(map[string]bool)
		}
		if !seen[t][email] {
			seen[t][email] = true
			emails[t] = append(emails[t], email)
		}
	}

	rows := [][]string{{"Personality Trait", "User Count", "User Emails"}}
	for _, t := range domain.Traits {
		rows = append(rows, []string{t.Name(), strconv.Itoa(counts[t]), strings.Join(emails[t], ", ")})
	}
	return rows
}

func emailOrMissing(email string) string {
	if strings.TrimSpace(email) == "" {
		return missingEmail
	}
	return email
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
