package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names used across handlers.
const (
	ColProducts     = "products"
	ColOffers       = "offers"
	ColSlider       = "slider"
	ColOrders       = "orders"
	ColCustomOrders = "customorders"
	ColSettings     = "settings"
	ColVisitors     = "visitorevents"
	ColProductViews = "productviews"
	ColAdmins       = "admins"
)

func Connect(uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	return client, nil
}
