// Package split validates multi-way transaction splits while the user
// edits them.
//
// An imbalance is not an error, it is a first-class validation state
// that blocks submission. Nothing here persists, the server receives a
// split only after the validator reports it submittable.
package split

import (
	"fmt"

	"github.com/bufferbudget/backend/internal/money"
	"github.com/google/uuid"
)

// tolerance absorbs rounding dust: a split counts as balanced when the
// remainder is under one cent.
var tolerance = money.MustParse("0.01")

// minShares is the smallest number of complete shares a split needs, a
// single share is not a split.
const minShares = 2

// Share is one working row of a split edit: the chosen item, if any, and
// the amount as the user typed it.
type Share struct {
	ItemID *uuid.UUID `json:"budgetItemId"`
	Amount string     `json:"amount"`
}

// amount parses the typed amount. Text that does not parse yet (the
// user may still be typing) contributes zero.
func (s Share) amount() money.Money {
	m, err := money.Parse(s.Amount)
	if err != nil {
		return money.Zero
	}

	return m
}

// complete reports whether the share has both a chosen item and a
// positive amount.
func (s Share) complete() bool {
	return s.ItemID != nil && s.amount().IsPositive()
}

// Result is the validation state of a split edit.
type Result struct {
	Total     money.Money `json:"total"`     // Sum of all parsed share amounts
	Remaining money.Money `json:"remaining"` // Parent amount minus total, may be negative
	Balanced  bool        `json:"balanced"`
	// Submittable is true when the split is balanced and at least two
	// shares have both a chosen item and a positive amount.
	Submittable bool `json:"submittable"`
}

// Validate checks a working list of shares against the parent
// transaction's amount.
func Validate(parent money.Money, shares []Share) Result {
	total := money.Zero
	complete := 0

	for _, share := range shares {
		total = total.Add(share.amount())
		if share.complete() {
			complete++
		}
	}

	remaining := parent.Sub(total)
	balanced := remaining.Abs().LessThan(tolerance)

	return Result{
		Total:       total,
		Remaining:   remaining,
		Balanced:    balanced,
		Submittable: balanced && complete >= minShares,
	}
}

// AutoBalance returns the amount that makes the share at index absorb
// the current remainder: its parsed amount plus whatever is left.
func AutoBalance(parent money.Money, shares []Share, index int) (money.Money, error) {
	if index < 0 || index >= len(shares) {
		return money.Zero, fmt.Errorf("share index %d out of range", index)
	}

	result := Validate(parent, shares)

	return shares[index].amount().Add(result.Remaining), nil
}
