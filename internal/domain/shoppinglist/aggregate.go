package shoppinglist

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrAmountOverflow means an ingredient total does not fit in int64.
var ErrAmountOverflow = errors.New("shopping list amount overflows int64")

// Line is one ingredient line of one recipe in a user's cart.
type Line struct {
	RecipeID        int64  `db:"recipe_id"`
	IngredientID    int64  `db:"ingredient_id"`
	Name            string `db:"name"`
	MeasurementUnit string `db:"measurement_unit"`
	Amount          int64  `db:"amount"`
}

// Item is one entry of the shopping list: the total of one catalog
// ingredient across every recipe in the cart.
type Item struct {
	IngredientID    int64  `json:"id"`
	Name            string `json:"name"`
	TotalAmount     int64  `json:"total_amount"`
	MeasurementUnit string `json:"measurement_unit"`
}

// Aggregate groups lines by ingredient id and sums their amounts. Two
// catalog entries that share a name stay separate items. The result is
// ordered by ingredient id and is never nil. A total that would wrap
// returns ErrAmountOverflow instead.
func Aggregate(lines []Line) ([]Item, error) {
	index := make(map[int64]int, len(lines))
	items := make([]Item, 0, len(lines))

	for _, l := range lines {
		if i, ok := index[l.IngredientID]; ok {
			sum, err := addAmount(items[i].TotalAmount, l.Amount)
			if err != nil {
				return nil, fmt.Errorf("ingredient %d: %w", l.IngredientID, err)
			}
			items[i].TotalAmount = sum
			continue
		}
		index[l.IngredientID] = len(items)
		items = append(items, Item{
			IngredientID:    l.IngredientID,
			Name:            l.Name,
			TotalAmount:     l.Amount,
			MeasurementUnit: l.MeasurementUnit,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].IngredientID < items[j].IngredientID })
	return items, nil
}

func addAmount(a, b int64) (int64, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}
