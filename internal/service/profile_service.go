package service

import (
	"context"
	"errors"

	"ocean-predict/internal/repository"
)

// ErrForbidden se devuelve cuando el perfil no es administrador.
var ErrForbidden = errors.New("forbidden")

type ProfileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// RequireAdmin devuelve nil solo si el perfil existe y tiene is_admin.
func (s *ProfileService) RequireAdmin(ctx context.Context, userID string) error {
	if s.profiles == nil {
		return ErrForbidden
	}
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if !p.IsAdmin {
		return ErrForbidden
	}
	return nil
}
