package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/buchshelf/buchshelf-server/internal/domain"
)

func (s *Server) registerGoalRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "list-goals",
		Method:      http.MethodGet,
		Path:        "/api/v1/goals",
		Summary:     "List reading goals",
		Description: "Returns every year with a goal, newest first.",
		Tags:        []string{"Goals"},
	}, s.handleListGoals)

	huma.Register(s.api, huma.Operation{
		OperationID: "set-goal",
		Method:      http.MethodPut,
		Path:        "/api/v1/goals",
		Summary:     "Set the current year's goal",
		Tags:        []string{"Goals"},
	}, s.handleSetGoal)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-goal-progress",
		Method:      http.MethodGet,
		Path:        "/api/v1/goals/{year}/progress",
		Summary:     "Get goal progress for a year",
		Tags:        []string{"Goals"},
	}, s.handleGoalProgress)
}

// === DTOs ===

// SetGoalInput carries the yearly book target.
type SetGoalInput struct {
	Body struct {
		Target int `json:"target" doc:"Books to finish this year, 1..500"`
	}
}

// GoalYearInput selects a goal year. Zero means the current year.
type GoalYearInput struct {
	Year int `path:"year" doc:"Calendar year, 0 for the current year"`
}

// GoalsOutput lists goals by year, newest first.
type GoalsOutput struct {
	Body struct {
		Years []GoalEntry `json:"years"`
	}
}

// GoalEntry pairs a year with its goal.
type GoalEntry struct {
	Year int         `json:"year"`
	Goal domain.Goal `json:"goal"`
}

// GoalOutput wraps a single goal.
type GoalOutput struct {
	Body domain.Goal
}

// GoalProgressOutput wraps derived goal progress.
type GoalProgressOutput struct {
	Body domain.GoalProgress
}

// === Handlers ===

func (s *Server) handleListGoals(ctx context.Context, _ *struct{}) (*GoalsOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	goals, err := s.services.Goal.Goals(ctx, identity)
	if err != nil {
		return nil, err
	}
	out := &GoalsOutput{}
	out.Body.Years = make([]GoalEntry, 0, len(goals))
	for _, year := range goals.Years() {
		out.Body.Years = append(out.Body.Years, GoalEntry{Year: year, Goal: goals[year]})
	}
	return out, nil
}

func (s *Server) handleSetGoal(ctx context.Context, input *SetGoalInput) (*GoalOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	goal, err := s.services.Goal.SetGoal(ctx, identity, input.Body.Target)
	if err != nil {
		return nil, err
	}
	return &GoalOutput{Body: *goal}, nil
}

func (s *Server) handleGoalProgress(ctx context.Context, input *GoalYearInput) (*GoalProgressOutput, error) {
	identity, err := s.services.Auth.Identity(ctx)
	if err != nil {
		return nil, err
	}
	progress, err := s.services.Goal.Progress(ctx, identity, input.Year)
	if err != nil {
		return nil, err
	}
	return &GoalProgressOutput{Body: *progress}, nil
}
