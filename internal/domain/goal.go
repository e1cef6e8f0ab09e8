package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Goal target bounds enforced when setting a yearly reading goal.
const (
	MinGoalTarget = 1
	MaxGoalTarget = 500
)

// Goal is one identity's reading target for a single year.
type Goal struct {
	Target    int       `json:"target"`
	StartDate time.Time `json:"start_date"` // Jan 1 of the goal's year, UTC
}

// Goals maps year to that year's goal. Only the current year's goal is ever
// created or edited, but past years stay queryable.
type Goals map[int]Goal

// Years returns all goal years, newest first.
func (g Goals) Years() []int {
	years := make([]int, 0, len(g))
	for y := range g {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// NewGoal builds a goal for the given year with its start pinned to Jan 1 UTC.
func NewGoal(target, year int) Goal {
	return Goal{
		Target:    target,
		StartDate: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// GoalProgress is the derived progress of one year's goal.
type GoalProgress struct {
	Year     int    `json:"year"`
	Target   int    `json:"target"`
	Count    int    `json:"count"`
	Percent  int    `json:"percent"`
	PaceText string `json:"pace_text"`
}

// Progress computes goal progress for a calendar year from the finished
// shelf. Pure: it reads its inputs and touches nothing else.
//
// Count includes only finished entries stamped within the year. Percent is
// 0 when no goal is set, otherwise capped at 100. PaceText mirrors the
// encouragement strings shown in the UI.
func Progress(goals Goals, finished []Book, year int) GoalProgress {
	var target int
	if goal, ok := goals[year]; ok {
		target = goal.Target
	}

	count := 0
	for i := range finished {
		if finished[i].FinishedIn(year) {
			count++
		}
	}

	percent := 0
	if target > 0 {
		percent = int(math.Round(float64(count) / float64(target) * 100))
		if percent > 100 {
			percent = 100
		}
	}

	return GoalProgress{
		Year:     year,
		Target:   target,
		Count:    count,
		Percent:  percent,
		PaceText: paceText(target, count),
	}
}

func paceText(target, count int) string {
	if target <= 0 {
		return ""
	}

	remaining := target - count
	switch {
	case remaining == 0:
		return "Goal completed! 🎉"
	case remaining > 0:
		return fmt.Sprintf("%d %s to go", remaining, pluralBooks(remaining))
	default:
		over := -remaining
		return fmt.Sprintf("Goal exceeded by %d %s!", over, pluralBooks(over))
	}
}

func pluralBooks(n int) string {
	if n == 1 {
		return "book"
	}
	return "books"
}
