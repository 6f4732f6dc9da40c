// Package scoring decides whether a product is worth buying at a newly observed price and
// shelf life, relative to what was registered for it.
//
//	score = ease * (registered price / observed price) * (observed shelf life / registered shelf life)
//
// A score at or above the registered ease rating means buy.
package scoring

import (
	"errors"
	"math"

	"shopscore/internal/models"
)

// ErrDivisionGuard is returned when a price or shelf life in the formula's denominators is zero.
var ErrDivisionGuard = errors.New("price and shelf life must be non-zero to compute a score")

// ErrOutOfRange is returned when the inputs are valid but the score overflows, as with a
// vanishingly small price.
var ErrOutOfRange = errors.New("score is too large to represent")

type Decision string

const (
	Buy        Decision = "buy"
	Reconsider Decision = "reconsider"
)

// Formula is the human-readable form of the score, shown next to results.
const Formula = "score = ease × (registered price / price) × (shelf life / registered shelf life)"

type Result struct {
	Record         models.ProductRecord
	PriceRatio     float64
	ShelfLifeRatio float64
	Score          float64
	Decision       Decision
}

// Evaluate scores an offer against the stored record. Negative or non-finite inputs are a
// ValidationError.
func Evaluate(stored models.ProductRecord, price float64, shelfLife int) (Result, error) {
	switch {
	case math.IsNaN(price) || math.IsInf(price, 0):
		return Result{}, &models.ValidationError{Field: "price", Reason: "must be a finite number"}
	case price < 0:
		return Result{}, &models.ValidationError{Field: "price", Reason: "must not be negative"}
	case shelfLife < 0:
		return Result{}, &models.ValidationError{Field: "shelf_life", Reason: "must not be negative"}
	}
	if price == 0 || stored.Price == 0 || stored.ShelfLife == 0 {
		return Result{}, ErrDivisionGuard
	}

	priceRatio := stored.Price / price
	shelfRatio := float64(shelfLife) / float64(stored.ShelfLife)
	score := float64(stored.Ease) * priceRatio * shelfRatio
	if math.IsInf(score, 0) || math.IsNaN(score) {
		return Result{}, ErrOutOfRange
	}

	decision := Reconsider
	if score >= float64(stored.Ease) {
		decision = Buy
	}

	return Result{
		Record:         stored,
		PriceRatio:     priceRatio,
		ShelfLifeRatio: shelfRatio,
		Score:          score,
		Decision:       decision,
	}, nil
}
