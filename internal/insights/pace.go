package insights

import (
	"time"

	"github.com/bufferbudget/backend/internal/budget"
	"github.com/bufferbudget/backend/internal/money"
	"golang.org/x/exp/slices"
)

// atRiskCount is how many of the worst-pacing categories are surfaced.
const atRiskCount = 5

// CategoryPace is the pace-vs-plan standing of one category.
type CategoryPace struct {
	Type    string      `json:"categoryType"`
	Name    string      `json:"name"`
	Planned money.Money `json:"planned"`
	Actual  money.Money `json:"actual"`
	// PaceRatio is actual spend divided by the spend expected at this
	// point of the month if spending were linear against the plan.
	// Above 1 means spending faster than planned.
	PaceRatio float64 `json:"paceRatio"`
}

// PaceRanking ranks all non-income categories with a positive plan by
// their pace ratio, worst first.
//
// For the current calendar month the expected spend is prorated by
// today's position in the month, for any other month the month counts as
// complete.
func PaceRanking(b budget.Budget, now time.Time) []CategoryPace {
	progress := monthProgress(b.Month.Contains(now), now, b.Month.Days())

	ranking := make([]CategoryPace, 0, len(b.Categories))
	for _, category := range b.Categories {
		if category.IsIncome() || !category.Planned.IsPositive() {
			continue
		}

		expectedByNow := category.Planned.Float64() * progress
		if expectedByNow == 0 {
			continue
		}

		ranking = append(ranking, CategoryPace{
			Type:      category.Type,
			Name:      category.Name,
			Planned:   category.Planned,
			Actual:    category.Actual,
			PaceRatio: category.Actual.Float64() / expectedByNow,
		})
	}

	slices.SortStableFunc(ranking, func(a, b CategoryPace) int {
		switch {
		case a.PaceRatio > b.PaceRatio:
			return -1
		case a.PaceRatio < b.PaceRatio:
			return 1
		}
		return 0
	})

	return ranking
}

// AtRisk returns the up to five worst-pacing categories.
func AtRisk(b budget.Budget, now time.Time) []CategoryPace {
	ranking := PaceRanking(b, now)
	if len(ranking) > atRiskCount {
		ranking = ranking[:atRiskCount]
	}

	return ranking
}

func monthProgress(current bool, now time.Time, daysInMonth int) float64 {
	if !current {
		return 1
	}

	return float64(now.UTC().Day()) / float64(daysInMonth)
}
