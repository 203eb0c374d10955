// Package reconcile classifies the transactions of a budget month.
//
// Given the bank-sync feed of uncategorized transactions and the hydrated
// budget for the month, it produces disjoint sets of uncategorized and
// categorized transactions, reconstructs split parents from the shares
// scattered across items, and generates quick-categorization suggestions.
//
// The status of a transaction is computed exactly once here, as a tagged
// kind, so no consumer re-derives it ad hoc.
package reconcile

import (
	"encoding/json"
	"fmt"

	"github.com/bufferbudget/backend/internal/budget"
	"github.com/bufferbudget/backend/internal/models"
	"github.com/google/uuid"
)

// Kind is the reconciliation status of a transaction.
type Kind int

const (
	// KindDirect is a transaction assigned to exactly one budget item.
	KindDirect Kind = iota
	// KindSplitParent is a transaction divided across budget items. Its
	// contribution flows through its splits, never directly.
	KindSplitParent
	// KindUncategorized is a transaction without an item assignment.
	KindUncategorized
)

// String returns the kind as a lowercase identifier.
func (k Kind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindSplitParent:
		return "splitParent"
	case KindUncategorized:
		return "uncategorized"
	}

	return "unknown"
}

// MarshalJSON implements the json.Marshaler interface.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "direct":
		*k = KindDirect
	case "splitParent":
		*k = KindSplitParent
	case "uncategorized":
		*k = KindUncategorized
	default:
		return fmt.Errorf("%q is not a transaction kind", s)
	}

	return nil
}

// Entry is a transaction with its computed reconciliation status.
type Entry struct {
	models.Transaction

	Kind Kind `json:"kind"`
	// SuggestedItemID is the quick-categorization suggestion. It always
	// refers to an item of the reconciled month's budget, stale upstream
	// suggestions are discarded.
	SuggestedItemID *uuid.UUID `json:"suggestedItemId,omitempty"`
}

// Result holds the disjoint transaction sets for one month.
type Result struct {
	Uncategorized []Entry `json:"uncategorized"`
	Categorized   []Entry `json:"categorized"`
}

// feedWindowDays is the slack around the month for the bank-sync feed.
// The upstream API applies the same window, it is re-applied here
// defensively.
const feedWindowDays = 7

// Reconcile classifies the uncategorized feed against the hydrated
// budget of b.Month.
func Reconcile(feed []models.Transaction, b models.Budget) Result {
	parents := splitParentIDs(feed, b)

	windowStart := b.Month.Start().AddDate(0, 0, -feedWindowDays)
	windowEnd := b.Month.Start().AddDate(0, 1, feedWindowDays)

	var result Result

	uncategorized := make(map[uuid.UUID]struct{})
	suggestions := merchantMap(b)

	for _, t := range feed {
		if t.BudgetItemID != nil || t.Deleted() {
			continue
		}

		// A split parent is never uncategorized, even when the raw feed
		// still carries it
		if _, ok := parents[t.ID]; ok {
			continue
		}

		date := t.Date.Time()
		if date.Before(windowStart) || !date.Before(windowEnd) {
			continue
		}

		uncategorized[t.ID] = struct{}{}
		result.Uncategorized = append(result.Uncategorized, Entry{
			Transaction:     t,
			Kind:            KindUncategorized,
			SuggestedItemID: suggest(t, b, suggestions),
		})
	}

	result.Categorized = categorized(b, uncategorized)

	return result
}

// categorized walks the budget's items and collects every active direct
// transaction, then reconstructs one synthetic entry per split parent.
func categorized(b models.Budget, uncategorized map[uuid.UUID]struct{}) []Entry {
	var entries []Entry

	// shares of each split parent are scattered across multiple items,
	// collect them per parent id in first-seen order
	parentOrder := make([]uuid.UUID, 0)
	parentTx := make(map[uuid.UUID]models.Transaction)
	parentShares := make(map[uuid.UUID][]models.SplitShare)

	for _, key := range budget.Order(b.Categories) {
		for _, item := range b.Categories[key].Items {
			for _, t := range item.Transactions {
				if t.Deleted() {
					continue
				}
				if _, ok := uncategorized[t.ID]; ok {
					continue
				}

				entries = append(entries, Entry{Transaction: t, Kind: KindDirect})
			}

			for _, share := range item.SplitTransactions {
				if share.ParentTransaction == nil {
					// Not hydrated with parent context, nothing to
					// reconstruct from
					continue
				}

				id := share.ParentTransactionID
				if _, ok := parentTx[id]; !ok {
					parentOrder = append(parentOrder, id)
					parentTx[id] = *share.ParentTransaction
				}
				parentShares[id] = append(parentShares[id], share)
			}
		}
	}

	for _, id := range parentOrder {
		parent := parentTx[id]
		if parent.Deleted() {
			continue
		}

		parent.BudgetItemID = nil
		parent.Splits = parentShares[id]

		entries = append(entries, Entry{Transaction: parent, Kind: KindSplitParent})
	}

	return entries
}

// splitParentIDs collects the ids of all transactions known to be split
// parents, from the shares in the budget and from the feed itself.
func splitParentIDs(feed []models.Transaction, b models.Budget) map[uuid.UUID]struct{} {
	parents := make(map[uuid.UUID]struct{})

	for _, category := range b.Categories {
		for _, item := range category.Items {
			for _, share := range item.SplitTransactions {
				parents[share.ParentTransactionID] = struct{}{}
			}
		}
	}

	for _, t := range feed {
		if t.IsSplitParent() {
			parents[t.ID] = struct{}{}
		}
	}

	return parents
}

// Deleted filters the deleted-transactions feed down to entries for the
// explicit "show deleted" view.
func Deleted(feed []models.Transaction) []Entry {
	entries := make([]Entry, 0, len(feed))
	for _, t := range feed {
		if !t.Deleted() {
			continue
		}

		kind := KindDirect
		switch {
		case t.IsSplitParent():
			kind = KindSplitParent
		case t.BudgetItemID == nil:
			kind = KindUncategorized
		}

		entries = append(entries, Entry{Transaction: t, Kind: kind})
	}

	return entries
}
