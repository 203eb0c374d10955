package upstream

import (
	"context"
	"net/http"

	"github.com/bufferbudget/backend/internal/models"
	"github.com/bufferbudget/backend/internal/money"
	"github.com/bufferbudget/backend/internal/types"
	"github.com/google/uuid"
)

// TransactionEditable are the user-configurable fields of a transaction.
type TransactionEditable struct {
	BudgetItemID    *uuid.UUID             `json:"budgetItemId"`
	LinkedAccountID *uuid.UUID             `json:"linkedAccountId,omitempty"`
	Date            types.Date             `json:"date"`
	Description     string                 `json:"description"`
	Amount          money.Money            `json:"amount"`
	Type            models.TransactionType `json:"type"`
	Merchant        string                 `json:"merchant,omitempty"`
	IsNonEarned     bool                   `json:"isNonEarned"`
}

// GetTransaction returns a single transaction by ID.
func (c *Client) GetTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodGet, "/v1/transactions/"+id.String(), nil, nil, &transaction)
	return transaction, err
}

// CreateTransaction creates a transaction and returns the stored entity.
func (c *Client) CreateTransaction(ctx context.Context, editable TransactionEditable) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodPost, "/v1/transactions", nil, editable, &transaction)
	return transaction, err
}

// UpdateTransaction updates a transaction and returns the stored entity.
func (c *Client) UpdateTransaction(ctx context.Context, id uuid.UUID, editable TransactionEditable) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodPatch, "/v1/transactions/"+id.String(), nil, editable, &transaction)
	return transaction, err
}

// DeleteTransaction soft-deletes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/v1/transactions/"+id.String(), nil, nil, nil)
}

// RestoreTransaction restores a soft-deleted transaction.
func (c *Client) RestoreTransaction(ctx context.Context, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodPost, "/v1/transactions/"+id.String()+"/restore", nil, nil, &transaction)
	return transaction, err
}

// SplitEditable is one share of a split to create.
type SplitEditable struct {
	BudgetItemID uuid.UUID   `json:"budgetItemId"`
	Amount       money.Money `json:"amount"`
	Description  string      `json:"description,omitempty"`
	IsNonEarned  bool        `json:"isNonEarned"`
}

// CreateSplits divides a transaction across budget items. The parent
// becomes a split parent, its returned entity carries the created
// shares.
func (c *Client) CreateSplits(ctx context.Context, parentID uuid.UUID, shares []SplitEditable) (models.Transaction, error) {
	var transaction models.Transaction
	err := c.do(ctx, http.MethodPost, "/v1/transactions/"+parentID.String()+"/splits", nil, shares, &transaction)
	return transaction, err
}

// DeleteSplit removes one share of a split.
func (c *Client) DeleteSplit(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/v1/splits/"+id.String(), nil, nil, nil)
}
