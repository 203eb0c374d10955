package budget

import (
	"strings"

	"github.com/bufferbudget/backend/internal/models"
	"golang.org/x/exp/slices"
)

// defaultRank is the fixed relative order of the default category set.
// Categories in this set always sort before custom categories.
var defaultRank = map[string]int{
	"giving":         0,
	"household":      1,
	"transportation": 2,
	"food":           3,
	"personal":       4,
	"insurance":      5,
}

// customOrderFallback sorts customs without an explicit order last among
// the custom categories.
const customOrderFallback = 999

// Order returns the category keys in display order:
//
//  1. the income category first, always
//  2. default categories in their fixed relative order
//  3. custom categories by their explicit order, ascending
//  4. the saving category last, always
//
// The sort is a pure function of the category set and cheap enough to be
// recomputed on every render.
func Order(categories models.Categories) []string {
	keys := make([]string, 0, len(categories))
	for key := range categories {
		keys = append(keys, key)
	}

	// Alphabetical base order makes ties deterministic
	slices.Sort(keys)

	slices.SortStableFunc(keys, func(a, b string) int {
		classA, rankA := classify(categories[a])
		classB, rankB := classify(categories[b])

		if classA != classB {
			return classA - classB
		}

		return rankA - rankB
	})

	return keys
}

// Category display classes, in sort order.
const (
	classIncome = iota
	classDefault
	classCustom
	classSaving
)

func classify(c models.Category) (class, rank int) {
	key := strings.ToLower(strings.TrimSpace(c.Type))

	switch {
	case key == models.CategoryTypeIncome:
		return classIncome, 0
	case key == models.CategoryTypeSaving:
		return classSaving, 0
	}

	if rank, ok := defaultRank[key]; ok {
		return classDefault, rank
	}

	rank = customOrderFallback
	if c.Order != nil {
		rank = *c.Order
	}

	return classCustom, rank
}
