package tui

import (
	"math"
	"strconv"
	"strings"

	"shopscore/internal/models"

	"github.com/shopspring/decimal"
)

func formatPrice(v float64) string {
	return formatScore(v) + "円"
}

// formatScore rounds to two places; decimal cannot hold Inf or NaN, so those print as is.
func formatScore(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// parsePrice accepts an empty field as zero, matching a number input that was left untouched.
func parsePrice(field, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &models.ValidationError{Field: field, Reason: "must be a number"}
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &models.ValidationError{Field: field, Reason: "must be a finite number"}
	}
	if v < 0 {
		return 0, &models.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return v, nil
}

func parseDays(field, s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, &models.ValidationError{Field: field, Reason: "must be a whole number of days"}
	}
	if v < 0 {
		return 0, &models.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return v, nil
}

// ratingBar draws a 1–10 rating as a row of blocks.
func ratingBar(v int) string {
	return strings.Repeat("■", v) + strings.Repeat("□", 10-v)
}

func cycle(i, delta, n int) int {
	return ((i+delta)%n + n) % n
}

func clampRating(v int) int {
	return min(max(v, 1), 10)
}
