package api

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buchshelf/buchshelf-server/internal/domain"
)

func TestSetGoal(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Put("/api/v1/goals", map[string]any{"target": 24})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var goal domain.Goal
	decode(t, resp, &goal)
	assert.Equal(t, 24, goal.Target)
	assert.Equal(t, time.Now().UTC().Year(), goal.StartDate.Year())

	// Setting again replaces the current year's target.
	resp = ts.api.Put("/api/v1/goals", map[string]any{"target": 12})
	require.Equal(t, http.StatusOK, resp.Code)

	decode(t, resp, &goal)
	assert.Equal(t, 12, goal.Target)
}

func TestSetGoalBounds(t *testing.T) {
	ts := setupTestServer(t, nil)

	for _, target := range []int{0, -3, 501} {
		resp := ts.api.Put("/api/v1/goals", map[string]any{"target": target})
		assert.Equal(t, http.StatusBadRequest, resp.Code, "target %d", target)
	}
}

func TestListGoals(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/goals")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Years []GoalEntry `json:"years"`
	}
	decode(t, resp, &body)
	assert.Empty(t, body.Years)

	resp = ts.api.Put("/api/v1/goals", map[string]any{"target": 24})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/goals")
	require.Equal(t, http.StatusOK, resp.Code)

	decode(t, resp, &body)
	require.Len(t, body.Years, 1)
	assert.Equal(t, time.Now().UTC().Year(), body.Years[0].Year)
	assert.Equal(t, 24, body.Years[0].Goal.Target)
}

func TestGoalProgress(t *testing.T) {
	ts := setupTestServer(t, nil)
	year := time.Now().UTC().Year()

	resp := ts.api.Put("/api/v1/goals", map[string]any{"target": 3})
	require.Equal(t, http.StatusOK, resp.Code)

	// Finishing a book stamps it into the current year.
	resp = ts.api.Put("/api/v1/library/finished", shelfBook("b1", "Dune"))
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/goals/" + strconv.Itoa(year) + "/progress")
	require.Equal(t, http.StatusOK, resp.Code)

	var progress domain.GoalProgress
	decode(t, resp, &progress)
	assert.Equal(t, year, progress.Year)
	assert.Equal(t, 3, progress.Target)
	assert.Equal(t, 1, progress.Count)
	assert.Equal(t, 33, progress.Percent)
	assert.Equal(t, "2 books to go", progress.PaceText)

	// Year zero selects the current year.
	resp = ts.api.Get("/api/v1/goals/0/progress")
	require.Equal(t, http.StatusOK, resp.Code)

	decode(t, resp, &progress)
	assert.Equal(t, year, progress.Year)
}

func TestGoalProgressWithoutGoal(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Get("/api/v1/goals/0/progress")
	require.Equal(t, http.StatusOK, resp.Code)

	var progress domain.GoalProgress
	decode(t, resp, &progress)
	assert.Equal(t, 0, progress.Target)
	assert.Equal(t, 0, progress.Percent)
	assert.Empty(t, progress.PaceText)
}

func TestGoalsScopedToAccount(t *testing.T) {
	ts := setupTestServer(t, nil)

	resp := ts.api.Put("/api/v1/goals", map[string]any{"target": 24})
	require.Equal(t, http.StatusOK, resp.Code)

	ts.signupAlice(t)

	resp = ts.api.Get("/api/v1/goals")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Years []GoalEntry `json:"years"`
	}
	decode(t, resp, &body)
	assert.Empty(t, body.Years, "account goals should not inherit guest goals")
}
