package reconcile

import (
	"github.com/bufferbudget/backend/internal/budget"
	"github.com/bufferbudget/backend/internal/models"
	"github.com/google/uuid"
)

// merchantMap builds the merchant → item lookup from the current month's
// already-categorized direct transactions.
//
// Iteration runs over categories in display order, items in payload
// order, transactions in payload order. When a merchant maps to more
// than one item, the last write wins.
func merchantMap(b models.Budget) map[string]uuid.UUID {
	merchants := make(map[string]uuid.UUID)

	for _, key := range budget.Order(b.Categories) {
		for _, item := range b.Categories[key].Items {
			for _, t := range item.Transactions {
				if t.Deleted() || t.Merchant == "" {
					continue
				}

				merchants[t.Merchant] = item.ID
			}
		}
	}

	return merchants
}

// suggest resolves the quick-categorization suggestion for an
// uncategorized transaction.
//
// The upstream hint is only trusted when it refers to an item that
// exists in the current month's budget. Item ids are not month-stable,
// so a stale hint would silently categorize into last month's (possibly
// deleted) item. When no hint survives, the merchant lookup decides.
func suggest(t models.Transaction, b models.Budget, merchants map[string]uuid.UUID) *uuid.UUID {
	if t.SuggestedBudgetItemID != nil && b.HasItem(*t.SuggestedBudgetItemID) {
		id := *t.SuggestedBudgetItemID
		return &id
	}

	if t.Merchant == "" {
		return nil
	}

	if id, ok := merchants[t.Merchant]; ok {
		return &id
	}

	return nil
}
