// Package budget computes the derived numbers for a budget month.
//
// Aggregation is a pure function over an immutable snapshot: it never
// persists anything and is recomputed on every read. The same snapshot
// always yields the same aggregate.
package budget

import (
	"strings"

	"github.com/bufferbudget/backend/internal/models"
	"github.com/bufferbudget/backend/internal/money"
	"github.com/bufferbudget/backend/internal/types"
	"github.com/google/uuid"
)

// Budget is a fully aggregated budget month.
type Budget struct {
	ID         uuid.UUID   `json:"id"`
	Month      types.Month `json:"month"`
	Buffer     money.Money `json:"buffer"`
	Categories []Category  `json:"categories"` // In display order, see Order

	IncomePlanned  money.Money `json:"incomePlanned"`
	IncomeActual   money.Money `json:"incomeActual"`
	ExpensePlanned money.Money `json:"expensePlanned"` // All non-income categories, including saving
	ExpenseActual  money.Money `json:"expenseActual"`
}

// Category is a category with its computed planned and actual sums.
type Category struct {
	ID      uuid.UUID   `json:"id"`
	Type    string      `json:"categoryType"`
	Name    string      `json:"name"`
	Emoji   string      `json:"emoji,omitempty"`
	Planned money.Money `json:"planned"`
	Actual  money.Money `json:"actual"`
	Items   []Item      `json:"items"`

	income bool
	saving bool
}

// IsIncome reports whether the category holds income items.
func (c Category) IsIncome() bool { return c.income }

// IsSaving reports whether the category is the saving category.
func (c Category) IsSaving() bool { return c.saving }

// Item is an item with its computed actual and derived status.
type Item struct {
	models.Item

	Actual       money.Money `json:"actual"`
	Remaining    money.Money `json:"remaining"` // planned - actual, negative when over budget
	IsOverBudget bool        `json:"isOverBudget"`
	Progress     float64     `json:"progress"` // actual / planned, 0 when nothing is planned
}

// Aggregate computes all derived numbers for a budget snapshot, bottom-up
// from transactions to items to categories to the budget totals.
func Aggregate(b models.Budget) Budget {
	result := Budget{
		ID:         b.ID,
		Month:      b.Month,
		Buffer:     b.Buffer,
		Categories: make([]Category, 0, len(b.Categories)),
	}

	for _, key := range Order(b.Categories) {
		category := aggregateCategory(b.Categories[key])
		result.Categories = append(result.Categories, category)

		if category.income {
			result.IncomePlanned = result.IncomePlanned.Add(category.Planned)
			result.IncomeActual = result.IncomeActual.Add(category.Actual)
		} else {
			result.ExpensePlanned = result.ExpensePlanned.Add(category.Planned)
			result.ExpenseActual = result.ExpenseActual.Add(category.Actual)
		}
	}

	return result
}

func aggregateCategory(c models.Category) Category {
	category := Category{
		ID:     c.ID,
		Type:   c.Type,
		Name:   c.Name,
		Emoji:  c.Emoji,
		Items:  make([]Item, 0, len(c.Items)),
		income: c.IsIncome(),
		saving: c.IsSaving(),
	}

	for _, item := range c.Items {
		aggregated := aggregateItem(item, category.income)
		category.Items = append(category.Items, aggregated)

		category.Planned = category.Planned.Add(item.Planned)
		category.Actual = category.Actual.Add(aggregated.Actual)
	}

	return category
}

func aggregateItem(item models.Item, income bool) Item {
	actual := money.Zero

	for _, t := range item.Transactions {
		if t.Deleted() {
			continue
		}

		actual = actual.Add(signed(t.Amount, t.Type, income))
	}

	// Split shares carry no delete flag of their own and are not
	// filtered here, matching the direct-transaction-only filter of the
	// upstream model
	for _, s := range item.SplitTransactions {
		actual = actual.Add(signed(s.Amount, s.ParentType, income))
	}

	remaining := item.Planned.Sub(actual)

	progress := 0.0
	if item.Planned.IsPositive() {
		progress = actual.Float64() / item.Planned.Float64()
	}
	// Refunds can net an item below zero, progress stops at empty
	if progress < 0 {
		progress = 0
	}

	return Item{
		Item:         item,
		Actual:       actual,
		Remaining:    remaining,
		IsOverBudget: actual.GreaterThan(item.Planned),
		Progress:     progress,
	}
}

// signed applies the polarity rule: a transaction whose type matches the
// category polarity adds, a disagreeing one subtracts. A refund (an
// expense-typed reversal in an income category, or vice versa) nets out
// without a separate refund entity.
func signed(amount money.Money, t models.TransactionType, income bool) money.Money {
	matches := t == models.TypeExpense
	if income {
		matches = t == models.TypeIncome
	}

	if matches {
		return amount
	}

	return amount.Neg()
}

// Category returns the aggregated category with the given type key and
// whether it exists.
func (b Budget) Category(categoryType string) (Category, bool) {
	for _, c := range b.Categories {
		if strings.EqualFold(c.Type, categoryType) {
			return c, true
		}
	}

	return Category{}, false
}
