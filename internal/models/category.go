package models

import (
	"strings"

	"github.com/bufferbudget/backend/internal/money"
	"github.com/google/uuid"
)

// Category types with fixed semantics. Every other type is a
// user-chosen custom slug.
const (
	CategoryTypeIncome = "income"
	CategoryTypeSaving = "saving"
)

// Category groups the budget items of one budget.
type Category struct {
	ID    uuid.UUID `json:"id"`
	Type  string    `json:"categoryType"` // Stable lowercase identifier, e.g. "income", "food" or a custom slug
	Name  string    `json:"name"`
	Order *int      `json:"order,omitempty"` // Only used for custom categories
	Emoji string    `json:"emoji,omitempty"`
	Items []Item    `json:"items"`
}

// IsIncome reports whether the category holds income items.
func (c Category) IsIncome() bool {
	return normalizeKey(c.Type) == CategoryTypeIncome
}

// IsSaving reports whether the category is the saving category.
//
// Saving is expense-like for planned/actual summation, but excluded from
// the underspent/overspent buffer flow: saving contributions are
// intentional allocations, not discretionary spend.
func (c Category) IsSaving() bool {
	return normalizeKey(c.Type) == CategoryTypeSaving
}

// Item is a single planned line inside a category.
type Item struct {
	ID                 uuid.UUID     `json:"id"`
	Name               string        `json:"name"`
	Planned            money.Money   `json:"planned"`
	Order              int           `json:"order"`
	RecurringPaymentID *uuid.UUID    `json:"recurringPaymentId,omitempty"` // Set when the item is funded by a recurring payment
	Transactions       []Transaction `json:"transactions"`
	SplitTransactions  []SplitShare  `json:"splitTransactions"` // Shares of other transactions allocated to this item
}

// normalizeKey lowercases a category key for comparison and map use.
func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
