package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ocean-predict/internal/domain"
)

// ProfileRepository define el contrato de persistencia para perfiles.
type ProfileRepository interface {
	Ensure(ctx context.Context, profile domain.Profile) (domain.Profile, error)
	GetByID(ctx context.Context, id string) (domain.Profile, error)
	GetByHandle(ctx context.Context, handle string) (domain.Profile, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// Ensure inserta el perfil si no existe y devuelve la fila guardada. Un email
// vacio no pisa el existente.
func (r *PgProfileRepository) Ensure(ctx context.Context, profile domain.Profile) (domain.Profile, error) {
	const query = `
		INSERT INTO profiles (id, email, display_name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
			SET email = CASE WHEN EXCLUDED.email <> '' THEN EXCLUDED.email ELSE profiles.email END
		RETURNING id, email, display_name, COALESCE(public_handle, ''), is_admin, created_at
	`
	return scanProfile(r.pool.QueryRow(ctx, query,
		profile.ID,
		profile.Email,
		profile.DisplayName,
		profile.CreatedAt,
	))
}

func (r *PgProfileRepository) GetByID(ctx context.Context, id string) (domain.Profile, error) {
	const query = `
		SELECT id, email, display_name, COALESCE(public_handle, ''), is_admin, created_at
		FROM profiles
		WHERE id = $1
	`
	return scanProfile(r.pool.QueryRow(ctx, query, id))
}

func (r *PgProfileRepository) GetByHandle(ctx context.Context, handle string) (domain.Profile, error) {
	const query = `
		SELECT id, email, display_name, COALESCE(public_handle, ''), is_admin, created_at
		FROM profiles
		WHERE public_handle = $1
	`
	return scanProfile(r.pool.QueryRow(ctx, query, handle))
}

func scanProfile(row rowScanner) (domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.DisplayName,
		&p.PublicHandle,
		&p.IsAdmin,
		&p.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, err
	}
	return p, err
}
