package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"ocean-predict/internal/domain"
)

// PredictionRepository define el contrato de persistencia para predicciones.
type PredictionRepository interface {
	Create(ctx context.Context, prediction domain.Prediction) error
	GetByID(ctx context.Context, id string) (domain.Prediction, error)
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Prediction, error)
	GetByPublicID(ctx context.Context, publicID string) (domain.Prediction, error)
	ListSharedByHandle(ctx context.Context, handle string, limit int) ([]domain.Prediction, error)
	SetShare(ctx context.Context, userID, id string, share bool) error
	FindSimilar(ctx context.Context, userID, excludeID string, scores domain.TraitVector, k int) ([]domain.Prediction, error)
}

// PgPredictionRepository implementa PredictionRepository usando pgxpool.
type PgPredictionRepository struct {
	pool *pgxpool.Pool
}

func NewPgPredictionRepository(pool *pgxpool.Pool) *PgPredictionRepository {
	return &PgPredictionRepository{pool: pool}
}

const predictionColumns = `id, public_id, user_id, input_type, input_content, method, scores, percentiles, label, share, created_at`

func (r *PgPredictionRepository) Create(ctx context.Context, p domain.Prediction) error {
	const query = `
		INSERT INTO predictions (
			id, public_id, user_id, input_type, input_content, method, scores, percentiles, label, score_vector, share, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.PublicID,
		p.UserID,
		p.InputType,
		p.InputContent,
		p.Method,
		p.Scores,
		p.Percentiles,
		p.Label,
		pgvector.NewVector(p.Scores.Float32()),
		p.Share,
		p.CreatedAt,
	)
	return err
}

func (r *PgPredictionRepository) GetByID(ctx context.Context, id string) (domain.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`
	return scanPrediction(r.pool.QueryRow(ctx, query, id))
}

func (r *PgPredictionRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Prediction, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT ` + predictionColumns + `
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPredictions(rows)
}

// GetByPublicID solo devuelve predicciones compartidas.
func (r *PgPredictionRepository) GetByPublicID(ctx context.Context, publicID string) (domain.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE public_id = $1 AND share = TRUE`
	return scanPrediction(r.pool.QueryRow(ctx, query, publicID))
}

func (r *PgPredictionRepository) ListSharedByHandle(ctx context.Context, handle string, limit int) ([]domain.Prediction, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `
		SELECT id, public_id, user_id, input_type, '' AS input_content, method, scores, percentiles, label, TRUE AS share, created_at
		FROM shared_predictions
		WHERE public_handle = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, handle, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPredictions(rows)
}

// SetShare devuelve pgx.ErrNoRows si la prediccion no existe o es de otro usuario.
func (r *PgPredictionRepository) SetShare(ctx context.Context, userID, id string, share bool) error {
	const query = `UPDATE predictions SET share = $3 WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, userID, share)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// FindSimilar busca por distancia euclidiana entre las predicciones propias y las
// compartidas por otros. El texto de entrada ajeno nunca se devuelve.
func (r *PgPredictionRepository) FindSimilar(ctx context.Context, userID, excludeID string, scores domain.TraitVector, k int) ([]domain.Prediction, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT id, public_id, user_id, input_type,
			CASE WHEN user_id = $1 THEN input_content ELSE '' END,
			method, scores, percentiles, label, share, created_at
		FROM predictions
		WHERE id <> $2 AND (user_id = $1 OR share = TRUE)
		ORDER BY score_vector <-> $3
		LIMIT $4
	`
	rows, err := r.pool.Query(ctx, query, userID, excludeID, pgvector.NewVector(scores.Float32()), k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPredictions(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrediction(row rowScanner) (domain.Prediction, error) {
	var p domain.Prediction
	err := row.Scan(
		&p.ID,
		&p.PublicID,
		&p.UserID,
		&p.InputType,
		&p.InputContent,
		&p.Method,
		&p.Scores,
		&p.Percentiles,
		&p.Label,
		&p.Share,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Prediction{}, err
	}
	return p, err
}

func scanPredictions(rows pgxRows) ([]domain.Prediction, error) {
	var out []domain.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// pgxRows es lo minimo de pgx.Rows que necesita scanPredictions.
type pgxRows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
	Close()
}
