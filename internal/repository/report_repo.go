package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"ocean-predict/internal/domain"
)

// ReportRepository lee los datos agregados del panel de administracion.
type ReportRepository interface {
	ListPredictions(ctx context.Context) ([]domain.PredictionReport, error)
	ListProfiles(ctx context.Context) ([]domain.ProfileReport, error)
}

// SQLReportRepository usa database/sql sobre el driver stdlib de pgx.
type SQLReportRepository struct {
	DB *sql.DB
}

func NewSQLReportRepository(db *sql.DB) *SQLReportRepository {
	return &SQLReportRepository{DB: db}
}

func (r *SQLReportRepository) ListPredictions(ctx context.Context) ([]domain.PredictionReport, error) {
	const query = `
		SELECT p.id, p.user_id, COALESCE(pr.email, ''), p.input_type, p.method, p.label, p.scores, p.share, p.created_at
		FROM predictions p
		LEFT JOIN profiles pr ON pr.id = p.user_id
		ORDER BY p.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PredictionReport
	for rows.Next() {
		var (
			rep    domain.PredictionReport
			scores []byte
		)
		if err := rows.Scan(
			&rep.ID,
			&rep.UserID,
			&rep.UserEmail,
			&rep.InputType,
			&rep.Method,
			&rep.Label,
			&scores,
			&rep.Share,
			&rep.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(scores, &rep.Scores); err != nil {
			return nil, fmt.Errorf("decode scores for %s: %w", rep.ID, err)
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLReportRepository) ListProfiles(ctx context.Context) ([]domain.ProfileReport, error) {
	const query = `
		SELECT pr.id, pr.email, pr.display_name, COALESCE(pr.public_handle, ''), pr.is_admin, pr.created_at, COUNT(p.id)
		FROM profiles pr
		LEFT JOIN predictions p ON p.user_id = pr.id
		GROUP BY pr.id
		ORDER BY pr.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ProfileReport
	for rows.Next() {
		var rep domain.ProfileReport
		if err := rows.Scan(
			&rep.ID,
			&rep.Email,
			&rep.DisplayName,
			&rep.PublicHandle,
			&rep.IsAdmin,
			&rep.CreatedAt,
			&rep.TotalPredictions,
		); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
