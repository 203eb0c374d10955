package models

import (
	"time"

	"github.com/bufferbudget/backend/internal/money"
	"github.com/bufferbudget/backend/internal/types"
	"github.com/google/uuid"
)

// TransactionType is the polarity of a transaction.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// Transaction is a single ledger entry.
//
// A transaction with a non-empty Splits list is a split parent: its
// BudgetItemID is null and its monetary contribution flows to items only
// through the splits, never directly.
type Transaction struct {
	ID                    uuid.UUID       `json:"id"`
	BudgetItemID          *uuid.UUID      `json:"budgetItemId"`              // nil: uncategorized or split parent
	LinkedAccountID       *uuid.UUID      `json:"linkedAccountId,omitempty"` // nil: manually entered
	Date                  types.Date      `json:"date"`
	Description           string          `json:"description"`
	Amount                money.Money     `json:"amount"` // Non-negative magnitude, polarity comes from Type
	Type                  TransactionType `json:"type"`
	Merchant              string          `json:"merchant,omitempty"`
	DeletedAt             *time.Time      `json:"deletedAt,omitempty"`
	IsNonEarned           bool            `json:"isNonEarned"` // Reporting classification only, not an arithmetic modifier
	SuggestedBudgetItemID *uuid.UUID      `json:"suggestedBudgetItemId,omitempty"`
	Splits                []SplitShare    `json:"splits,omitempty"`
}

// Deleted reports whether the transaction is soft-deleted.
func (t Transaction) Deleted() bool {
	return t.DeletedAt != nil
}

// IsSplitParent reports whether the transaction has been divided across
// budget items.
func (t Transaction) IsSplitParent() bool {
	return len(t.Splits) > 0
}

// IsManual reports whether the transaction was entered by hand instead of
// synced from a linked bank account.
func (t Transaction) IsManual() bool {
	return t.LinkedAccountID == nil
}

// SplitShare is one item's portion of a split parent transaction.
type SplitShare struct {
	ID                  uuid.UUID       `json:"id"`
	ParentTransactionID uuid.UUID       `json:"parentTransactionId"`
	BudgetItemID        uuid.UUID       `json:"budgetItemId"`
	Amount              money.Money     `json:"amount"`
	Description         string          `json:"description,omitempty"`
	IsNonEarned         bool            `json:"isNonEarned"`
	ParentType          TransactionType `json:"parentType,omitempty"`        // Polarity of the parent, present when hydrated
	ParentTransaction   *Transaction    `json:"parentTransaction,omitempty"` // Embedded parent, present when hydrated
}
