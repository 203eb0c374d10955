// Package models contains the wire models for upstream API payloads.
//
// The package owns decoding and sanitizing only. All derived numbers
// (actuals, totals, ordering) are computed by the budget package from
// whatever snapshot it is given, on every read.
package models

import (
	"encoding/json"
	"time"

	"github.com/bufferbudget/backend/internal/money"
	"github.com/bufferbudget/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Budget is one budget month for one user.
type Budget struct {
	ID         uuid.UUID   `json:"id"`
	Month      types.Month `json:"-"`
	Buffer     money.Money `json:"buffer"` // Manually set starting cushion, independent of any category
	CreatedAt  time.Time   `json:"createdAt"`
	Categories Categories  `json:"categories"`
}

// budgetWire mirrors the upstream payload, which carries the month as a
// zero-based index plus a year instead of a single month field.
type budgetWire struct {
	ID         uuid.UUID   `json:"id"`
	Month      int         `json:"month"` // 0-11
	Year       int         `json:"year"`
	Buffer     money.Money `json:"buffer"`
	CreatedAt  time.Time   `json:"createdAt"`
	Categories Categories  `json:"categories"`
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (b *Budget) UnmarshalJSON(data []byte) error {
	var wire budgetWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*b = Budget{
		ID:         wire.ID,
		Month:      types.NewMonth(wire.Year, time.Month(wire.Month+1)),
		Buffer:     wire.Buffer,
		CreatedAt:  wire.CreatedAt,
		Categories: wire.Categories,
	}

	if b.Categories == nil {
		b.Categories = Categories{}
	}

	return nil
}

// MarshalJSON implements the json.Marshaler interface.
func (b Budget) MarshalJSON() ([]byte, error) {
	return json.Marshal(budgetWire{
		ID:         b.ID,
		Month:      int(b.Month.Start().Month()) - 1,
		Year:       b.Month.Start().Year(),
		Buffer:     b.Buffer,
		CreatedAt:  b.CreatedAt,
		Categories: b.Categories,
	})
}

// Item returns the item with the given ID and whether it exists in the
// budget.
func (b Budget) Item(id uuid.UUID) (Item, bool) {
	for _, category := range b.Categories {
		for _, item := range category.Items {
			if item.ID == id {
				return item, true
			}
		}
	}

	return Item{}, false
}

// HasItem reports whether an item with the given ID exists in the budget.
func (b Budget) HasItem(id uuid.UUID) bool {
	_, ok := b.Item(id)
	return ok
}

// Categories maps the categoryType key to its Category.
//
// Keys are lowercase and unique per budget. Decoding enforces the
// invariant: keys are lowercased, the first occurrence of a key wins and
// later duplicates are dropped with a warning.
type Categories map[string]Category

// UnmarshalJSON implements the json.Unmarshaler interface.
func (c *Categories) UnmarshalJSON(data []byte) error {
	var raw map[string]Category
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	// Sorted iteration keeps duplicate resolution deterministic
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	result := make(Categories, len(raw))
	for _, rawKey := range keys {
		category := raw[rawKey]
		key := normalizeKey(rawKey)

		if _, ok := result[key]; ok {
			log.Warn().Str("categoryType", key).Msg("duplicate category key in upstream payload, keeping the first")
			continue
		}

		// The payload key is authoritative for the category type
		if category.Type == "" {
			category.Type = key
		}

		result[key] = category
	}

	*c = result
	return nil
}
