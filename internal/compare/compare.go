// Package compare ranks an in-memory item list for two users who weigh price against
// performance differently. Nothing here is persisted.
package compare

import (
	"cmp"
	"slices"

	"shopscore/internal/models"

	"github.com/google/uuid"
)

// Weights holds one user's price weight; the value weight is its complement.
type Weights struct {
	Price float64
}

func NewWeights(price float64) Weights {
	return Weights{Price: min(max(price, 0), 1)}
}

func (w Weights) Value() float64 {
	return 1 - w.Price
}

// Ranked pairs an item with both users' scores.
type Ranked struct {
	Item   models.ComparisonItem
	ScoreA float64
	ScoreB float64
}

// Comparator holds the session's items. Names are not validated.
type Comparator struct {
	items []models.ComparisonItem
}

func New() *Comparator {
	return &Comparator{}
}

func (c *Comparator) AddItem(category, name string, price float64, performance int) models.ComparisonItem {
	item := models.ComparisonItem{
		ID:          uuid.NewString(),
		Category:    category,
		Name:        name,
		Price:       price,
		Performance: performance,
	}
	c.items = append(c.items, item)
	return item
}

// RemoveItem drops the item with the given id and reports whether it existed.
func (c *Comparator) RemoveItem(id string) bool {
	n := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(it models.ComparisonItem) bool { return it.ID == id })
	return len(c.items) != n
}

func (c *Comparator) Items() []models.ComparisonItem {
	return slices.Clone(c.items)
}

func (c *Comparator) Len() int {
	return len(c.items)
}

// NormPrice maps a price into (0, 1], cheaper being higher.
func NormPrice(price float64) float64 {
	return 1 / (price + 1)
}

func NormValue(performance int) float64 {
	return float64(performance) / 10
}

func ComputeScore(item models.ComparisonItem, weightPrice, weightValue float64) float64 {
	return weightPrice*NormPrice(item.Price) + weightValue*NormValue(item.Performance)
}

// Rank scores every item for both users and orders the result by user A, highest first.
func (c *Comparator) Rank(a, b Weights) []Ranked {
	ranked := make([]Ranked, 0, len(c.items))
	for _, it := range c.items {
		ranked = append(ranked, Ranked{
			Item:   it,
			ScoreA: ComputeScore(it, a.Price, a.Value()),
			ScoreB: ComputeScore(it, b.Price, b.Value()),
		})
	}
	slices.SortStableFunc(ranked, func(x, y Ranked) int {
		return cmp.Compare(y.ScoreA, x.ScoreA)
	})
	return ranked
}
