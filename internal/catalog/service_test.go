package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"shopscore/internal/models"
	"shopscore/internal/store"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	return NewService(store.NewFileStore[models.ProductRecord](path, nil), nil), path
}

func mustRegister(t *testing.T, s *Service, in Input) models.ProductRecord {
	t.Helper()
	reg, err := s.Register(in)
	require.NoError(t, err)
	return reg.Record
}

func names(records []models.ProductRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ProductName)
	}
	return out
}

func TestRegisterRoundTrip(t *testing.T) {
	s, _ := newTestService(t)

	in := Input{Category: "葉物", Name: "  ほうれん草 ", Price: 158.5, ShelfLife: 3, Ease: 7, Comment: "茹でて冷凍 OK"}
	rec := mustRegister(t, s, in)
	assert.Equal(t, "ほうれん草", rec.ProductName)

	listing, err := s.List(SortNone, false)
	require.NoError(t, err)
	want := []models.ProductRecord{{
		Category:    "葉物",
		ProductName: "ほうれん草",
		Price:       158.5,
		ShelfLife:   3,
		Ease:        7,
		Comment:     "茹でて冷凍 OK",
	}}
	if diff := cmp.Diff(want, listing.Records); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, listing.Warning)
}

func TestRegisterEmptyNameLeavesStoreUnchanged(t *testing.T) {
	s, path := newTestService(t)
	mustRegister(t, s, Input{Category: "肉", Name: "鶏むね", Price: 300, ShelfLife: 2, Ease: 8})
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := s.Register(Input{Category: "肉", Name: name, Price: 100, ShelfLife: 1, Ease: 5})
		var verr *models.ValidationError
		require.True(t, errors.As(err, &verr), "expected ValidationError for %q, got %v", name, err)
		assert.Equal(t, "product_name", verr.Field)
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestRegisterRejectsOutOfRangeNumbers(t *testing.T) {
	s, _ := newTestService(t)

	cases := map[string]Input{
		"price":      {Name: "x", Price: -1, Ease: 5},
		"shelf_life": {Name: "x", ShelfLife: -1, Ease: 5},
		"ease":       {Name: "x", Ease: 11},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := s.Register(in)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}

	listing, err := s.List(SortNone, false)
	require.NoError(t, err)
	assert.Empty(t, listing.Records)
}

func TestRegisterRejectsNonFinitePrice(t *testing.T) {
	s, _ := newTestService(t)
	for _, price := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := s.Register(Input{Category: "その他", Name: "x", Price: price, Ease: 5})
		var verr *models.ValidationError
		require.ErrorAs(t, err, &verr, "price %v", price)
		assert.Equal(t, "price", verr.Field)
	}
}

func TestListSorting(t *testing.T) {
	s, _ := newTestService(t)
	mustRegister(t, s, Input{Category: "魚", Name: "鮭", Price: 400, ShelfLife: 2, Ease: 6})
	mustRegister(t, s, Input{Category: "根菜", Name: "人参", Price: 100, ShelfLife: 14, Ease: 9})
	mustRegister(t, s, Input{Category: "果物", Name: "林檎", Price: 100, ShelfLife: 20, Ease: 6})

	tests := []struct {
		key  SortKey
		desc bool
		want []string
	}{
		{SortNone, false, []string{"鮭", "人参", "林檎"}},
		{SortCategory, false, []string{"林檎", "人参", "鮭"}},
		{SortCategory, true, []string{"鮭", "人参", "林檎"}},
		{SortPrice, false, []string{"人参", "林檎", "鮭"}},
		{SortPrice, true, []string{"鮭", "人参", "林檎"}},
		{SortShelfLife, true, []string{"林檎", "人参", "鮭"}},
		{SortEase, false, []string{"鮭", "林檎", "人参"}},
		{SortEase, true, []string{"人参", "鮭", "林檎"}},
	}
	for _, tt := range tests {
		listing, err := s.List(tt.key, tt.desc)
		require.NoError(t, err)
		assert.Equal(t, tt.want, names(listing.Records), "key=%s desc=%v", tt.key, tt.desc)
	}

	// Sorting never changes the stored order.
	listing, err := s.List(SortNone, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"鮭", "人参", "林檎"}, names(listing.Records))
}

func TestDeleteRemovesAllMatchesAndIsIdempotent(t *testing.T) {
	s, _ := newTestService(t)
	mustRegister(t, s, Input{Category: "肉", Name: "豚こま", Price: 250, ShelfLife: 2, Ease: 9})
	mustRegister(t, s, Input{Category: "根菜", Name: "玉ねぎ", Price: 50, ShelfLife: 30, Ease: 10})
	mustRegister(t, s, Input{Category: "肉", Name: "豚こま", Price: 230, ShelfLife: 3, Ease: 9})
	mustRegister(t, s, Input{Category: "その他", Name: "豚こま", Price: 1, ShelfLife: 1, Ease: 1})

	_, err := s.List(SortPrice, true)
	require.NoError(t, err)

	removed, err := s.Delete("豚こま", "肉")
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	listing, err := s.List(SortNone, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"玉ねぎ", "豚こま"}, names(listing.Records))
	assert.Equal(t, "その他", listing.Records[1].Category)

	removed, err = s.Delete("豚こま", "肉")
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDeleteOnMissingStoreIsNoop(t *testing.T) {
	s, path := newTestService(t)
	removed, err := s.Delete("none", "肉")
	require.NoError(t, err)
	assert.Zero(t, removed)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestFindPrefersMostRecent(t *testing.T) {
	s, _ := newTestService(t)
	mustRegister(t, s, Input{Category: "果物", Name: "バナナ", Price: 120, ShelfLife: 4, Ease: 8})
	mustRegister(t, s, Input{Category: "果物", Name: "バナナ", Price: 98, ShelfLife: 5, Ease: 9})

	rec, err := s.Find(" バナナ ")
	require.NoError(t, err)
	assert.Equal(t, 98.0, rec.Price)

	_, err = s.Find("メロン")
	var nf *models.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "メロン", nf.Name)
}

func TestListSurfacesRecoveryWarning(t *testing.T) {
	s, path := newTestService(t)
	require.NoError(t, os.WriteFile(path, []byte(`[{"category":`), 0644))

	listing, err := s.List(SortNone, false)
	require.NoError(t, err)
	assert.Empty(t, listing.Records)
	assert.NotEmpty(t, listing.Warning)
}

func TestRegisterOverCorruptStoreWarns(t *testing.T) {
	s, path := newTestService(t)
	require.NoError(t, os.WriteFile(path, []byte(`[{"category":`), 0644))

	reg, err := s.Register(Input{Category: "肉", Name: "鶏もも", Price: 280, ShelfLife: 2, Ease: 8})
	require.NoError(t, err)
	assert.Contains(t, reg.Warning, path)
	assert.Contains(t, reg.Warning, "overwritten")

	// The file is readable again, so the next registration is quiet.
	reg, err = s.Register(Input{Category: "肉", Name: "鶏むね", Price: 300, ShelfLife: 2, Ease: 8})
	require.NoError(t, err)
	assert.Empty(t, reg.Warning)

	listing, err := s.List(SortNone, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"鶏もも", "鶏むね"}, names(listing.Records))
}

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey(" Price ")
	require.NoError(t, err)
	assert.Equal(t, SortPrice, key)

	key, err = ParseSortKey("")
	require.NoError(t, err)
	assert.Equal(t, SortNone, key)

	_, err = ParseSortKey("name")
	assert.Error(t, err)
}
