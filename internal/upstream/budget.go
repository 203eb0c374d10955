package upstream

import (
	"context"
	"net/http"

	"github.com/bufferbudget/backend/internal/models"
	"github.com/bufferbudget/backend/internal/money"
	"github.com/bufferbudget/backend/internal/types"
	"github.com/google/uuid"
)

// GetBudget fetches the hydrated budget for a month:
// categories → items → transactions → splits.
func (c *Client) GetBudget(ctx context.Context, month types.Month) (models.Budget, error) {
	var budget models.Budget
	err := c.do(ctx, http.MethodGet, "/v1/budget", monthQuery(month), nil, &budget)
	return budget, err
}

// GetUncategorizedTransactions fetches the bank-sync feed for a month.
// The upstream applies a ±7 day window around the month, the reconciler
// re-applies it defensively.
func (c *Client) GetUncategorizedTransactions(ctx context.Context, month types.Month) ([]models.Transaction, error) {
	var feed []models.Transaction
	err := c.do(ctx, http.MethodGet, "/v1/transactions/uncategorized", monthQuery(month), nil, &feed)
	return feed, err
}

// GetDeletedTransactions fetches the soft-deleted transactions of a month.
func (c *Client) GetDeletedTransactions(ctx context.Context, month types.Month) ([]models.Transaction, error) {
	var feed []models.Transaction
	err := c.do(ctx, http.MethodGet, "/v1/transactions/deleted", monthQuery(month), nil, &feed)
	return feed, err
}

// UpdateBudgetBuffer sets the manually-entered starting cushion of a
// month's budget and returns the updated budget.
func (c *Client) UpdateBudgetBuffer(ctx context.Context, month types.Month, buffer money.Money) (models.Budget, error) {
	body := map[string]money.Money{"buffer": buffer}

	var budget models.Budget
	err := c.do(ctx, http.MethodPatch, "/v1/budget/buffer", monthQuery(month), body, &budget)
	return budget, err
}

// CategoryEditable are the user-configurable fields of a category.
type CategoryEditable struct {
	Type  string `json:"categoryType"`
	Name  string `json:"name"`
	Order *int   `json:"order,omitempty"`
	Emoji string `json:"emoji,omitempty"`
}

// CreateCategory creates a category in a month's budget.
func (c *Client) CreateCategory(ctx context.Context, month types.Month, editable CategoryEditable) (models.Category, error) {
	var category models.Category
	err := c.do(ctx, http.MethodPost, "/v1/categories", monthQuery(month), editable, &category)
	return category, err
}

// DeleteCategory deletes a category. The server detaches the items'
// transactions to uncategorized, nothing is reconciled client-side.
func (c *Client) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/v1/categories/"+id.String(), nil, nil, nil)
}

// ItemEditable are the user-configurable fields of a budget item.
type ItemEditable struct {
	CategoryID         uuid.UUID   `json:"categoryId"`
	Name               string      `json:"name"`
	Planned            money.Money `json:"planned"`
	Order              int         `json:"order"`
	RecurringPaymentID *uuid.UUID  `json:"recurringPaymentId,omitempty"`
}

// CreateItem creates a budget item.
func (c *Client) CreateItem(ctx context.Context, editable ItemEditable) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodPost, "/v1/items", nil, editable, &item)
	return item, err
}

// UpdateItem updates a budget item.
func (c *Client) UpdateItem(ctx context.Context, id uuid.UUID, editable ItemEditable) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, http.MethodPatch, "/v1/items/"+id.String(), nil, editable, &item)
	return item, err
}

// DeleteItem deletes a budget item.
func (c *Client) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/v1/items/"+id.String(), nil, nil, nil)
}
