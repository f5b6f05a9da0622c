package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
)

// EliteTuningInput is one admin edit. Exactly the tunable fields are
// settable; point totals are owned by the scoring job and never touched
// here. Nil fields keep their stored value.
type EliteTuningInput struct {
	Name          string
	PointsPerLoss *int64
	Badge         *string
	Password      string
}

// AdminService covers the shared-password gated elite edits.
type AdminService struct {
	elites   elite.Repository
	password string
	logger   *logging.Logger
}

func NewAdminService(elites elite.Repository, password string, logger *logging.Logger) *AdminService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminService{elites: elites, password: password, logger: logger}
}

func (s *AdminService) ListElites(ctx context.Context) ([]elite.Elite, error) {
	ctx, span := startUsecaseSpan(ctx, "AdminService.ListElites")
	defer span.End()

	items, err := s.elites.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list elites: %v", ErrDependencyUnavailable, err)
	}
	return items, nil
}

// UpdateEliteTuning applies one admin edit after the shared-password check.
func (s *AdminService) UpdateEliteTuning(ctx context.Context, input EliteTuningInput) (elite.Elite, error) {
	ctx, span := startUsecaseSpan(ctx, "AdminService.UpdateEliteTuning")
	defer span.End()

	if s.password == "" {
		return elite.Elite{}, fmt.Errorf("%w: admin edits are disabled", ErrUnauthorized)
	}
	if subtle.ConstantTimeCompare([]byte(input.Password), []byte(s.password)) != 1 {
		s.logger.WarnContext(ctx, "rejected admin edit", "elite", input.Name)
		return elite.Elite{}, fmt.Errorf("%w: wrong admin password", ErrUnauthorized)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return elite.Elite{}, fmt.Errorf("%w: elite name is required", ErrInvalidInput)
	}
	if input.PointsPerLoss == nil && input.Badge == nil {
		return elite.Elite{}, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	if input.PointsPerLoss != nil && *input.PointsPerLoss < 0 {
		return elite.Elite{}, fmt.Errorf("%w: points per loss cannot be negative", ErrInvalidInput)
	}

	current, found, err := s.elites.GetByName(ctx, name)
	if err != nil {
		return elite.Elite{}, fmt.Errorf("%w: load elite %s: %v", ErrDependencyUnavailable, name, err)
	}
	if !found {
		return elite.Elite{}, fmt.Errorf("%w: elite %s", ErrNotFound, name)
	}

	pointsPerLoss := current.PointsPerLoss
	if input.PointsPerLoss != nil {
		pointsPerLoss = *input.PointsPerLoss
	}
	badge := current.Badge
	if input.Badge != nil {
		badge = strings.TrimSpace(*input.Badge)
	}

	if err := s.elites.UpdateTuning(ctx, name, pointsPerLoss, badge); err != nil {
		return elite.Elite{}, fmt.Errorf("%w: update elite %s: %v", ErrDependencyUnavailable, name, err)
	}
	s.logger.InfoContext(ctx, "elite tuning updated", "elite", name, "points_per_loss", pointsPerLoss, "badge", badge)

	current.PointsPerLoss = pointsPerLoss
	current.Badge = badge
	return current, nil
}
