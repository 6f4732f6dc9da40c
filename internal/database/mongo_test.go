package database

import (
	"testing"

	"shopscore/internal/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestProductDocumentBSONShape(t *testing.T) {
	doc := productDocument{
		Position:      3,
		ProductRecord: models.ProductRecord{Category: "肉", ProductName: "ひき肉", Price: 320, ShelfLife: 1, Ease: 6},
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, int32(3), m["position"])
	assert.Equal(t, "ひき肉", m["product_name"])
	assert.Equal(t, 320.0, m["price"])
	assert.NotContains(t, m, "comment")
	assert.NotContains(t, m, "productrecord")
}

func TestDocumentsRoundTripKeepsOrder(t *testing.T) {
	records := []models.ProductRecord{
		{Category: "果物", ProductName: "梨", Price: 250, ShelfLife: 7, Ease: 7},
		{Category: "葉物", ProductName: "小松菜", Price: 128, ShelfLife: 3, Ease: 8, Comment: "味噌汁"},
	}

	docs := toDocuments(records)
	require.Len(t, docs, 2)

	decoded := make([]productDocument, 0, len(docs))
	for _, d := range docs {
		raw, err := bson.Marshal(d)
		require.NoError(t, err)
		var pd productDocument
		require.NoError(t, bson.Unmarshal(raw, &pd))
		decoded = append(decoded, pd)
	}
	assert.Equal(t, 0, decoded[0].Position)
	assert.Equal(t, 1, decoded[1].Position)

	if diff := cmp.Diff(records, fromDocuments(decoded)); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromDocumentsEmpty(t *testing.T) {
	assert.Empty(t, fromDocuments(nil))
	assert.NotNil(t, fromDocuments(nil))
}
