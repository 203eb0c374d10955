package insights

import (
	"time"

	"github.com/bufferbudget/backend/internal/budget"
	"github.com/bufferbudget/backend/internal/money"
	"github.com/bufferbudget/backend/internal/types"
)

// TrendDelta returns the percent change of a metric versus its prior
// value. The trend is undefined when the prior value is zero, a change
// from nothing is not a percentage.
func TrendDelta(current, prior money.Money) (float64, bool) {
	if prior.IsZero() {
		return 0, false
	}

	return (current.Float64() - prior.Float64()) / prior.Float64() * 100, true
}

// SavingsRate returns the percentage of the available money that was not
// spent: (totalAvailable - totalExpenses) / totalAvailable * 100, where
// totalAvailable is buffer + income actual. Undefined when nothing was
// available.
func SavingsRate(b budget.Budget) (float64, bool) {
	available := b.Buffer.Add(b.IncomeActual)
	if available.IsZero() {
		return 0, false
	}

	return available.Sub(b.ExpenseActual).Float64() / available.Float64() * 100, true
}

// Trends holds the month-over-month percent changes. A nil value means
// no trend, either because there is no prior month or because the prior
// value was zero.
type Trends struct {
	IncomeActual  *float64           `json:"incomeActual,omitempty"`
	ExpenseActual *float64           `json:"expenseActual,omitempty"`
	Categories    map[string]float64 `json:"categories,omitempty"` // Keyed by categoryType
}

// Result is the full insights view for one month.
type Result struct {
	Month       types.Month    `json:"month"`
	Daily       []DailyPoint   `json:"daily"`
	AtRisk      []CategoryPace `json:"atRisk"`
	Projection  Projection     `json:"projection"`
	Trends      Trends         `json:"trends"`
	SavingsRate *float64       `json:"savingsRate,omitempty"`
}

// Build assembles the insights for the current month. The prior month's
// aggregate is optional: without it no trends are produced, the rest of
// the report still renders (partial-failure tolerance).
func Build(current budget.Budget, prior *budget.Budget, now time.Time) Result {
	result := Result{
		Month:      current.Month,
		Daily:      DailySpending(current),
		AtRisk:     AtRisk(current, now),
		Projection: BufferProjection(current),
	}

	if rate, ok := SavingsRate(current); ok {
		result.SavingsRate = &rate
	}

	if prior != nil {
		result.Trends = buildTrends(current, *prior)
	}

	return result
}

func buildTrends(current, prior budget.Budget) Trends {
	trends := Trends{}

	if delta, ok := TrendDelta(current.IncomeActual, prior.IncomeActual); ok {
		trends.IncomeActual = &delta
	}

	if delta, ok := TrendDelta(current.ExpenseActual, prior.ExpenseActual); ok {
		trends.ExpenseActual = &delta
	}

	for _, category := range current.Categories {
		priorCategory, ok := prior.Category(category.Type)
		if !ok {
			continue
		}

		if delta, ok := TrendDelta(category.Actual, priorCategory.Actual); ok {
			if trends.Categories == nil {
				trends.Categories = make(map[string]float64)
			}
			trends.Categories[category.Type] = delta
		}
	}

	return trends
}
