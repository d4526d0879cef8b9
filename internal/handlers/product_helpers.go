package handlers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

func normalizeIntField(raw bson.M, key string) {
	if val, ok := raw[key]; ok {
		switch typed := val.(type) {
		case int32:
			raw[key] = int(typed)
		case int64:
			raw[key] = int(typed)
		case float64:
			raw[key] = int(typed)
		case int:
			raw[key] = typed
		default:
			raw[key] = 0
		}
	} else {
		raw[key] = 0
	}
}

// normalizeProductDocument tolerates numeric-type drift in documents migrated
// from the old key-value store, where stock and sold were written as doubles.
func normalizeProductDocument(raw bson.M) (models.Product, error) {
	normalizeIntField(raw, "stock")
	normalizeIntField(raw, "sold")

	data, err := bson.Marshal(raw)
	if err != nil {
		return models.Product{}, err
	}

	var p models.Product
	if err := bson.Unmarshal(data, &p); err != nil {
		return models.Product{}, err
	}

	p.InStock = p.Stock > 0

	return p, nil
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]models.Product, error) {
	products := make([]models.Product, 0)

	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, err
		}

		product, err := normalizeProductDocument(raw)
		if err != nil {
			return nil, err
		}

		products = append(products, product)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return products, nil
}
