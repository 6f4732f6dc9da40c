package database

import (
	"context"
	"fmt"
	"time"

	"shopscore/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoDB mirrors the product store into a collection. The JSON file stays the source of
// truth; the collection is a copy that can be pushed to and pulled from.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	logger   *zap.Logger
}

// productDocument keeps the store order, which Mongo does not guarantee on its own.
type productDocument struct {
	Position             int `bson:"position"`
	models.ProductRecord `bson:",inline"`
}

func NewMongoDB(uri, dbName string, logger *zap.Logger) (*MongoDB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", dbName))

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
		logger:   logger,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// ReplaceProducts makes the collection an exact copy of records.
func (m *MongoDB) ReplaceProducts(collectionName string, records []models.ProductRecord) (int, error) {
	collection := m.Database.Collection(collectionName)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to clear collection %s: %w", collectionName, err)
	}

	if len(records) == 0 {
		m.logger.Info("Cleared product mirror",
			zap.String("collection", collectionName),
			zap.Int64("deleted", deleted.DeletedCount))
		return 0, nil
	}

	result, err := collection.InsertMany(ctx, toDocuments(records))
	if err != nil {
		return 0, fmt.Errorf("failed to insert products: %w", err)
	}

	m.logger.Info("Replaced product mirror",
		zap.String("collection", collectionName),
		zap.Int64("deleted", deleted.DeletedCount),
		zap.Int("inserted", len(result.InsertedIDs)))
	return len(result.InsertedIDs), nil
}

// FetchProducts reads the mirrored products back in store order.
func (m *MongoDB) FetchProducts(collectionName string) ([]models.ProductRecord, error) {
	collection := m.Database.Collection(collectionName)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	m.logger.Info("Fetched product mirror",
		zap.String("collection", collectionName),
		zap.Int("products", len(docs)))
	return fromDocuments(docs), nil
}

func (m *MongoDB) ListCollections() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	names, err := m.Database.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	return names, nil
}

func toDocuments(records []models.ProductRecord) []interface{} {
	docs := make([]interface{}, 0, len(records))
	for i, r := range records {
		docs = append(docs, productDocument{Position: i, ProductRecord: r})
	}
	return docs
}

func fromDocuments(docs []productDocument) []models.ProductRecord {
	records := make([]models.ProductRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, d.ProductRecord)
	}
	return records
}
