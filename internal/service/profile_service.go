package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"tawsila/internal/metrics"
	"tawsila/internal/models"
)

var ErrNotWorkerRole = errors.New("availability applies to worker roles only")

type ProfileService struct {
	users   UserStore
	metrics *metrics.Metrics
	log     zerolog.Logger
}

func NewProfileService(users UserStore, m *metrics.Metrics, log zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, metrics: m, log: log}
}

// SwitchRole changes which held role drives the product. Targets outside
// the held set are rejected and the profile stays untouched.
func (s *ProfileService) SwitchRole(ctx context.Context, userID string, role models.Role) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if err := user.SwitchRole(role); err != nil {
		return models.User{}, err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}
	s.metrics.IncRoleSwitches()

	s.log.Info().
		Str("user_id", user.ID).
		Str("active_role", string(user.ActiveRole)).
		Msg("active role switched")
	return user, nil
}

// EnrollRole adds a role to the held set without touching the active role.
// Re-enrolling a held role succeeds without a write.
func (s *ProfileService) EnrollRole(ctx context.Context, userID string, role models.Role) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if user.HasRole(role) {
		return user, nil
	}
	user.EnrollRole(role)

	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// SetAvailability updates the dispatch-facing status. Only meaningful while
// the active role supplies services; buyers get a domain error.
func (s *ProfileService) SetAvailability(ctx context.Context, userID string, status models.Availability) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}

	if !user.ActiveRole.IsWorker() {
		return models.User{}, ErrNotWorkerRole
	}

	user.Availability = status
	if err := s.users.Update(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
