package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buchshelf/buchshelf-server/internal/domain"
	domainerrors "github.com/buchshelf/buchshelf-server/internal/errors"
	"github.com/buchshelf/buchshelf-server/internal/store"
)

// GoalService manages per-identity yearly reading goals and derives progress
// from the finished shelf.
type GoalService struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewGoalService creates a new goal service.
func NewGoalService(s *store.Store, logger *slog.Logger) *GoalService {
	return &GoalService{
		store:  s,
		logger: logger,
		now:    time.Now,
	}
}

// SetGoal creates or replaces the current year's goal. Historical years stay
// readable but are never edited.
func (s *GoalService) SetGoal(ctx context.Context, identity string, target int) (*domain.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if target < domain.MinGoalTarget || target > domain.MaxGoalTarget {
		return nil, domainerrors.Validationf("target must be between %d and %d", domain.MinGoalTarget, domain.MaxGoalTarget)
	}

	goals, err := s.store.Goals(identity)
	if err != nil {
		return nil, err
	}

	year := s.now().UTC().Year()
	goal := domain.NewGoal(target, year)
	goals[year] = goal
	if err := s.store.SaveGoals(identity, goals); err != nil {
		return nil, fmt.Errorf("save goals: %w", err)
	}

	s.logger.Info("reading goal set",
		"identity", identity,
		"year", year,
		"target", target,
	)
	return &goal, nil
}

// Goals returns the identity's full year to goal mapping.
func (s *GoalService) Goals(ctx context.Context, identity string) (domain.Goals, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.Goals(identity)
}

// Years returns the years with goals, newest first.
func (s *GoalService) Years(ctx context.Context, identity string) ([]int, error) {
	goals, err := s.Goals(ctx, identity)
	if err != nil {
		return nil, err
	}
	return goals.Years(), nil
}

// Progress computes goal progress for a year. Zero year selects the current
// one. Only finished books stamped within the year count.
func (s *GoalService) Progress(ctx context.Context, identity string, year int) (*domain.GoalProgress, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.now().UTC().Year()
	}

	goals, err := s.store.Goals(identity)
	if err != nil {
		return nil, err
	}
	lib, err := s.store.Library(identity)
	if err != nil {
		return nil, err
	}

	progress := domain.Progress(goals, lib.Finished(), year)
	return &progress, nil
}
