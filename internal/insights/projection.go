package insights

import (
	"github.com/bufferbudget/backend/internal/budget"
	"github.com/bufferbudget/backend/internal/money"
)

// Projection is the buffer-flow projection for a budget month.
type Projection struct {
	Underspent          money.Money `json:"underspent"`
	Overspent           money.Money `json:"overspent"`
	LeftToBudget        money.Money `json:"leftToBudget"`
	ProjectedNextBuffer money.Money `json:"projectedNextBuffer"`
}

// BufferProjection computes what flows into next month's buffer.
//
// Underspent and overspent are sums of per-item clamped deltas, not
// category-level nets: an overspent item must not cancel an underspent
// one within the same category. The saving category is excluded from
// both, its contributions are intentional allocations rather than
// discretionary spend. Left-to-budget still counts saving's plan, every
// dollar assigned to saving is a dollar that cannot be left over.
func BufferProjection(b budget.Budget) Projection {
	var underspent, overspent money.Money

	for _, category := range b.Categories {
		if category.IsIncome() || category.IsSaving() {
			continue
		}

		for _, item := range category.Items {
			underspent = underspent.Add(item.Planned.Sub(item.Actual).ClampNonNegative())
			overspent = overspent.Add(item.Actual.Sub(item.Planned).ClampNonNegative())
		}
	}

	leftToBudget := b.Buffer.
		Add(b.IncomePlanned).
		Sub(b.ExpensePlanned).
		ClampNonNegative()

	return Projection{
		Underspent:          underspent,
		Overspent:           overspent,
		LeftToBudget:        leftToBudget,
		ProjectedNextBuffer: underspent.Sub(overspent).Add(leftToBudget),
	}
}
