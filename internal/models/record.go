package models

// Categories offered by the register form and the CLI, in display order.
var Categories = []string{"根菜", "葉物", "果物", "肉", "魚", "その他"}

type ProductRecord struct {
	Category    string  `json:"category" csv:"category" bson:"category"`
	ProductName string  `json:"product_name" csv:"product_name" bson:"product_name"`
	Price       float64 `json:"price" csv:"price" bson:"price"`
	ShelfLife   int     `json:"shelf_life" csv:"shelf_life" bson:"shelf_life"`
	Ease        int     `json:"ease" csv:"ease" bson:"ease"`
	Comment     string  `json:"comment,omitempty" csv:"comment,omitempty" bson:"comment,omitempty"`
}

// Matches reports whether the record has the given identity.
func (p ProductRecord) Matches(name, category string) bool {
	return p.ProductName == name && p.Category == category
}

type BoardPost struct {
	Text string `json:"text"`
}

// ComparisonItem lives only in memory for the lifetime of a comparator session.
type ComparisonItem struct {
	ID          string
	Category    string
	Name        string
	Price       float64
	Performance int
}

// IsCategory reports whether c is one of the known categories.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
