// Package insights derives analytics from aggregated budget months:
// daily spending series, pace-vs-plan rankings, buffer projections,
// month-over-month trends and the savings rate.
//
// All functions are pure over their input aggregates. Currency sums stay
// exact Money, ratios and percentages are float64 for display only and
// are never used to derive an amount that is sent back upstream.
package insights

import (
	"github.com/bufferbudget/backend/internal/budget"
	"github.com/bufferbudget/backend/internal/models"
	"github.com/bufferbudget/backend/internal/money"
	"github.com/bufferbudget/backend/internal/types"
)

// DailyPoint is one day of a spending series.
type DailyPoint struct {
	Day        int         `json:"day"` // Day of month, starting at 1
	Date       types.Date  `json:"date"`
	Amount     money.Money `json:"amount"`
	Cumulative money.Money `json:"cumulative"`
}

// DailySpending buckets all active expense-typed transactions of the
// non-income categories by calendar day.
//
// The series is dense: one point per day of the month, including days
// with zero spend.
func DailySpending(b budget.Budget) []DailyPoint {
	return dailySeries(b, func(budget.Category) bool { return true })
}

// CategoryDailySpending is the daily series restricted to one category,
// used for burn-down pace charts. An income or unknown category type
// yields an all-zero series.
func CategoryDailySpending(b budget.Budget, categoryType string) []DailyPoint {
	return dailySeries(b, func(c budget.Category) bool { return c.Type == categoryType })
}

func dailySeries(b budget.Budget, include func(budget.Category) bool) []DailyPoint {
	days := b.Month.Days()
	amounts := make([]money.Money, days+1)

	for _, category := range b.Categories {
		if category.IsIncome() || !include(category) {
			continue
		}

		for _, item := range category.Items {
			for _, t := range item.Transactions {
				if t.Deleted() || t.Type != models.TypeExpense {
					continue
				}
				if !b.Month.ContainsDate(t.Date) {
					continue
				}

				day := t.Date.Day()
				amounts[day] = amounts[day].Add(t.Amount)
			}
		}
	}

	start := b.Month.Start()
	series := make([]DailyPoint, 0, days)
	cumulative := money.Zero

	for day := 1; day <= days; day++ {
		cumulative = cumulative.Add(amounts[day])
		series = append(series, DailyPoint{
			Day:        day,
			Date:       types.DateOf(start.AddDate(0, 0, day-1)),
			Amount:     amounts[day],
			Cumulative: cumulative,
		})
	}

	return series
}
