package tui

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"shopscore/internal/catalog"
	"shopscore/internal/compare"
	"shopscore/internal/models"
	"shopscore/internal/scoring"
	"shopscore/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSubmitSavesAndClears(t *testing.T) {
	svc := newServices(t)
	m := NewRegisterModel(svc.Catalog)

	m.Update(key(tea.KeyRight)) // 葉物
	m.Update(key(tea.KeyTab))
	m.Update(runes("キャベツ"))
	m.Update(key(tea.KeyTab))
	m.Update(runes("198"))
	m.Update(key(tea.KeyTab))
	m.Update(runes("10"))
	m.Update(key(tea.KeyTab))
	m.Update(key(tea.KeyRight)) // ease 6
	m.Update(key(tea.KeyTab))
	m.Update(runes("千切り"))
	m.Update(key(tea.KeyEnter))

	require.NoError(t, m.err)
	require.NotNil(t, m.saved)

	listing, err := svc.Catalog.List(catalog.SortNone, false)
	require.NoError(t, err)
	require.Len(t, listing.Records, 1)
	assert.Equal(t, models.ProductRecord{
		Category:    "葉物",
		ProductName: "キャベツ",
		Price:       198,
		ShelfLife:   10,
		Ease:        6,
		Comment:     "千切り",
	}, listing.Records[0])

	assert.Empty(t, m.nameInput.Value())
	assert.Equal(t, defaultEase, m.ease)
	assert.Equal(t, 0, m.categoryIdx)
	assert.Contains(t, m.View(), "キャベツ")
}

func TestRegisterEmptyNameShowsError(t *testing.T) {
	svc := newServices(t)
	m := NewRegisterModel(svc.Catalog)
	m.priceInput.SetValue("100")

	m.Update(key(tea.KeyEnter))

	var verr *models.ValidationError
	require.ErrorAs(t, m.err, &verr)
	assert.Equal(t, "100", m.priceInput.Value(), "form is kept on error")

	listing, err := svc.Catalog.List(catalog.SortNone, false)
	require.NoError(t, err)
	assert.Empty(t, listing.Records)
}

func TestRegisterRejectsBadPrice(t *testing.T) {
	m := NewRegisterModel(newServices(t).Catalog)
	m.nameInput.SetValue("卵")
	m.priceInput.SetValue("twelve")

	m.Update(key(tea.KeyEnter))

	var verr *models.ValidationError
	require.ErrorAs(t, m.err, &verr)
	assert.Equal(t, "price", verr.Field)
}

func TestRegisterEaseIsClamped(t *testing.T) {
	m := NewRegisterModel(newServices(t).Catalog)
	m.focused = regEase
	for i := 0; i < 20; i++ {
		m.Update(key(tea.KeyRight))
	}
	assert.Equal(t, 10, m.ease)
	for i := 0; i < 20; i++ {
		m.Update(key(tea.KeyLeft))
	}
	assert.Equal(t, 1, m.ease)
}

func seedCatalog(t *testing.T, svc *catalog.Service) {
	t.Helper()
	for _, in := range []catalog.Input{
		{Category: "魚", Name: "鮭", Price: 400, ShelfLife: 2, Ease: 6},
		{Category: "根菜", Name: "人参", Price: 100, ShelfLife: 14, Ease: 9},
		{Category: "魚", Name: "鮭", Price: 380, ShelfLife: 3, Ease: 6},
	} {
		_, err := svc.Register(in)
		require.NoError(t, err)
	}
}

func TestCatalogSortCycling(t *testing.T) {
	svc := newServices(t)
	seedCatalog(t, svc.Catalog)
	m := NewCatalogModel(svc.Catalog)
	m.Reload()
	require.Len(t, m.records, 3)
	assert.Equal(t, "鮭", m.records[0].ProductName)

	m.Update(runes("s")) // category
	m.Update(runes("s")) // price
	assert.Equal(t, catalog.SortPrice, m.sortKey())
	assert.Equal(t, "人参", m.records[0].ProductName)

	m.Update(runes("r"))
	assert.True(t, m.descending)
	assert.Equal(t, 400.0, m.records[0].Price)
}

func TestCatalogDeleteWithConfirmation(t *testing.T) {
	svc := newServices(t)
	seedCatalog(t, svc.Catalog)
	m := NewCatalogModel(svc.Catalog)
	m.Reload()

	m.Update(runes("d"))
	require.True(t, m.confirming)
	m.Update(runes("n"))
	assert.False(t, m.confirming)
	assert.Len(t, m.records, 3)

	m.Update(runes("d"))
	m.Update(runes("y"))
	require.NoError(t, m.err)
	require.Len(t, m.records, 1)
	assert.Equal(t, "人参", m.records[0].ProductName)
	assert.Contains(t, m.View(), "Deleted 2 record(s)")
}

func TestEvaluateScreen(t *testing.T) {
	svc := newServices(t)
	_, err := svc.Catalog.Register(catalog.Input{Category: "肉", Name: "牛こま", Price: 100, ShelfLife: 10, Ease: 8})
	require.NoError(t, err)

	t.Run("buy", func(t *testing.T) {
		m := NewEvaluateModel(svc.Catalog)
		m.Update(runes("牛こま"))
		m.Update(key(tea.KeyTab))
		m.Update(runes("50"))
		m.Update(key(tea.KeyTab))
		m.Update(runes("20"))
		m.Update(key(tea.KeyEnter))

		require.NoError(t, m.err)
		require.NotNil(t, m.result)
		assert.InDelta(t, 32.0, m.result.Score, 1e-9)
		assert.Equal(t, scoring.Buy, m.result.Decision)
		assert.Contains(t, m.View(), "32.00")
	})

	t.Run("reconsider", func(t *testing.T) {
		m := NewEvaluateModel(svc.Catalog)
		m.nameInput.SetValue("牛こま")
		m.priceInput.SetValue("200")
		m.shelfInput.SetValue("5")
		m.Update(key(tea.KeyEnter))

		require.NotNil(t, m.result)
		assert.Equal(t, scoring.Reconsider, m.result.Decision)
	})

	t.Run("zero price", func(t *testing.T) {
		m := NewEvaluateModel(svc.Catalog)
		m.nameInput.SetValue("牛こま")
		m.shelfInput.SetValue("5")
		m.Update(key(tea.KeyEnter))

		assert.True(t, errors.Is(m.err, scoring.ErrDivisionGuard))
		assert.Nil(t, m.result)
		assert.NotNil(t, m.record, "registered record is still shown")
	})

	t.Run("unknown product", func(t *testing.T) {
		m := NewEvaluateModel(svc.Catalog)
		m.nameInput.SetValue("鰻")
		m.priceInput.SetValue("10")
		m.Update(key(tea.KeyEnter))

		var nf *models.NotFoundError
		assert.ErrorAs(t, m.err, &nf)
		assert.Contains(t, m.View(), "not registered")
	})
}

func TestEvaluateScreenOverflowingScore(t *testing.T) {
	svc := newServices(t)
	_, err := svc.Catalog.Register(catalog.Input{Category: "肉", Name: "牛こま", Price: 100, ShelfLife: 10, Ease: 8})
	require.NoError(t, err)

	m := NewEvaluateModel(svc.Catalog)
	m.nameInput.SetValue("牛こま")
	m.priceInput.SetValue("1e-310")
	m.shelfInput.SetValue("20")
	m.Update(key(tea.KeyEnter))

	require.ErrorIs(t, m.err, scoring.ErrOutOfRange)
	assert.Nil(t, m.result)
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestEvaluateScreenRejectsNonFinitePrice(t *testing.T) {
	svc := newServices(t)
	_, err := svc.Catalog.Register(catalog.Input{Category: "肉", Name: "牛こま", Price: 100, ShelfLife: 10, Ease: 8})
	require.NoError(t, err)

	for _, in := range []string{"inf", "-Inf", "NaN"} {
		m := NewEvaluateModel(svc.Catalog)
		m.nameInput.SetValue("牛こま")
		m.priceInput.SetValue(in)
		m.shelfInput.SetValue("20")
		m.Update(key(tea.KeyEnter))

		var verr *models.ValidationError
		require.ErrorAs(t, m.err, &verr, "price %q", in)
		assert.Equal(t, "price", verr.Field)
		assert.NotPanics(t, func() { _ = m.View() })
	}
}

func TestFormatNonFinite(t *testing.T) {
	assert.Equal(t, "+Inf", formatScore(math.Inf(1)))
	assert.Equal(t, "NaN円", formatPrice(math.NaN()))
	assert.Equal(t, "198.00円", formatPrice(198))
}

func TestRegisterScreenShowsOverwriteWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))

	m := NewRegisterModel(catalog.NewService(store.NewFileStore[models.ProductRecord](path, nil), nil))
	m.Reload()
	require.NotEmpty(t, m.warning)

	m.nameInput.SetValue("大根")
	m.Update(key(tea.KeyEnter))
	require.NoError(t, m.err)
	assert.Contains(t, m.warning, "overwritten")
	assert.Contains(t, m.View(), "overwritten")
}

func TestBoardScreenPosts(t *testing.T) {
	svc := newServices(t)
	m := NewBoardModel(svc.Board)
	m.Reload()

	m.Update(runes("hello"))
	m.Update(key(tea.KeyCtrlS))
	require.NoError(t, m.err)
	m.Update(runes("world"))
	m.Update(key(tea.KeyCtrlS))
	require.NoError(t, m.err)

	require.Len(t, m.posts, 2)
	assert.Equal(t, "world", m.posts[0].Text)
	assert.Equal(t, "hello", m.posts[1].Text)
	assert.Empty(t, m.editor.Value())
	assert.True(t, m.posted)
}

func TestBoardScreenRejectsBlank(t *testing.T) {
	svc := newServices(t)
	m := NewBoardModel(svc.Board)

	m.Update(runes("   "))
	m.Update(key(tea.KeyCtrlS))

	var verr *models.ValidationError
	require.ErrorAs(t, m.err, &verr)
	posts, _, err := svc.Board.List()
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestCompareScreen(t *testing.T) {
	m := NewCompareModel(compare.New())

	m.Update(key(tea.KeyTab))
	m.Update(runes("ノートPC"))
	m.Update(key(tea.KeyTab))
	m.Update(runes("9"))
	m.Update(key(tea.KeyTab))
	for i := 0; i < 5; i++ {
		m.Update(key(tea.KeyRight))
	}
	m.Update(key(tea.KeyEnter))
	require.NoError(t, m.err)

	ranked := m.Ranked()
	require.Len(t, ranked, 1)
	assert.Equal(t, "ノートPC", ranked[0].Item.Name)
	assert.Equal(t, 10, ranked[0].Item.Performance)
	assert.InDelta(t, 0.55, ranked[0].ScoreA, 1e-9)
	assert.InDelta(t, 0.55, ranked[0].ScoreB, 1e-9)

	// User A leans fully towards price.
	m.Update(key(tea.KeyTab))
	for i := 0; i < 10; i++ {
		m.Update(key(tea.KeyRight))
	}
	assert.InDelta(t, 1.0, m.weightA.Price, 1e-9)
	assert.InDelta(t, 0.1, m.Ranked()[0].ScoreA, 1e-9)
	assert.InDelta(t, 0.55, m.Ranked()[0].ScoreB, 1e-9)
}

func TestCompareScreenAllowsEmptyNameAndRemoval(t *testing.T) {
	m := NewCompareModel(compare.New())
	m.Update(key(tea.KeyEnter))
	require.NoError(t, m.err)
	require.Len(t, m.Ranked(), 1)
	assert.Contains(t, m.View(), "(unnamed)")

	m.Update(key(tea.KeyCtrlD))
	assert.Empty(t, m.Ranked())
}

func TestCompareScreenRejectsNonFinitePrice(t *testing.T) {
	m := NewCompareModel(compare.New())
	m.priceInput.SetValue("inf")
	m.Update(key(tea.KeyEnter))

	var verr *models.ValidationError
	require.ErrorAs(t, m.err, &verr)
	assert.Empty(t, m.Ranked())
	assert.NotPanics(t, func() { _ = m.View() })
}

func TestCompareScreenQuits(t *testing.T) {
	m := NewCompareModel(compare.New())
	_, cmd := m.Update(key(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
