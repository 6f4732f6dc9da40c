package catalog

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"shopscore/internal/models"
	"shopscore/internal/store"

	"go.uber.org/zap"
)

type SortKey string

const (
	SortNone      SortKey = ""
	SortCategory  SortKey = "category"
	SortPrice     SortKey = "price"
	SortShelfLife SortKey = "shelf_life"
	SortEase      SortKey = "ease"
)

// SortKeys lists the selectable keys in the order the UI cycles through them.
var SortKeys = []SortKey{SortNone, SortCategory, SortPrice, SortShelfLife, SortEase}

func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(SortKeys, key) {
		return key, nil
	}
	return SortNone, fmt.Errorf("unknown sort key %q (use category, price, shelf_life or ease)", s)
}

// Input is the register form as submitted.
type Input struct {
	Category  string
	Name      string
	Price     float64
	ShelfLife int
	Ease      int
	Comment   string
}

// Listing is a read view of the catalog. Warning is set when the store had to be recovered.
type Listing struct {
	Records []models.ProductRecord
	Warning string
}

type Service struct {
	store  *store.FileStore[models.ProductRecord]
	logger *zap.Logger
}

func NewService(st *store.FileStore[models.ProductRecord], logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger}
}

// Registration is a stored record. Warning is set when an unreadable store file was replaced.
type Registration struct {
	Record  models.ProductRecord
	Warning string
}

func (s *Service) Register(in Input) (Registration, error) {
	if err := validate(in); err != nil {
		return Registration{}, err
	}

	res, err := s.store.Load()
	if err != nil {
		return Registration{}, err
	}

	record := models.ProductRecord{
		Category:    in.Category,
		ProductName: strings.TrimSpace(in.Name),
		Price:       in.Price,
		ShelfLife:   in.ShelfLife,
		Ease:        in.Ease,
		Comment:     in.Comment,
	}

	if err := s.store.Save(append(res.Records, record)); err != nil {
		return Registration{}, fmt.Errorf("failed to save product: %w", err)
	}

	s.logger.Info("Registered product",
		zap.String("name", record.ProductName),
		zap.String("category", record.Category))
	return Registration{Record: record, Warning: res.OverwriteWarning()}, nil
}

func validate(in Input) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return &models.ValidationError{Field: "product_name", Reason: "must not be empty"}
	case math.IsNaN(in.Price) || math.IsInf(in.Price, 0):
		return &models.ValidationError{Field: "price", Reason: "must be a finite number"}
	case in.Price < 0:
		return &models.ValidationError{Field: "price", Reason: "must not be negative"}
	case in.ShelfLife < 0:
		return &models.ValidationError{Field: "shelf_life", Reason: "must not be negative"}
	case in.Ease < 1 || in.Ease > 10:
		return &models.ValidationError{Field: "ease", Reason: "must be between 1 and 10"}
	}
	return nil
}

// List returns the records ordered by key. The stored order is left untouched.
func (s *Service) List(key SortKey, descending bool) (Listing, error) {
	res, err := s.store.Load()
	if err != nil {
		return Listing{}, err
	}

	records := slices.Clone(res.Records)
	if key != SortNone {
		compare, err := comparator(key)
		if err != nil {
			return Listing{}, err
		}
		if descending {
			asc := compare
			compare = func(a, b models.ProductRecord) int { return asc(b, a) }
		}
		slices.SortStableFunc(records, compare)
	}

	return Listing{Records: records, Warning: res.Warning}, nil
}

func comparator(key SortKey) (func(a, b models.ProductRecord) int, error) {
	switch key {
	case SortCategory:
		return func(a, b models.ProductRecord) int { return cmp.Compare(a.Category, b.Category) }, nil
	case SortPrice:
		return func(a, b models.ProductRecord) int { return cmp.Compare(a.Price, b.Price) }, nil
	case SortShelfLife:
		return func(a, b models.ProductRecord) int { return cmp.Compare(a.ShelfLife, b.ShelfLife) }, nil
	case SortEase:
		return func(a, b models.ProductRecord) int { return cmp.Compare(a.Ease, b.Ease) }, nil
	}
	return nil, fmt.Errorf("unknown sort key %q", key)
}

// Delete removes every stored record with the given identity. The store is re-read so that a
// sorted view held by the caller never leaks into the persisted order.
func (s *Service) Delete(name, category string) (int, error) {
	res, err := s.store.Load()
	if err != nil {
		return 0, err
	}

	kept := slices.DeleteFunc(slices.Clone(res.Records), func(p models.ProductRecord) bool {
		return p.Matches(name, category)
	})
	removed := len(res.Records) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.Save(kept); err != nil {
		return 0, fmt.Errorf("failed to save after delete: %w", err)
	}

	s.logger.Info("Deleted products",
		zap.String("name", name),
		zap.String("category", category),
		zap.Int("removed", removed))
	return removed, nil
}

// Find looks a product up by exact trimmed name. When several records share the name the
// most recently registered one wins.
func (s *Service) Find(name string) (models.ProductRecord, error) {
	res, err := s.store.Load()
	if err != nil {
		return models.ProductRecord{}, err
	}

	want := strings.TrimSpace(name)
	for i := len(res.Records) - 1; i >= 0; i-- {
		if strings.TrimSpace(res.Records[i].ProductName) == want {
			return res.Records[i], nil
		}
	}
	return models.ProductRecord{}, &models.NotFoundError{Name: want}
}
