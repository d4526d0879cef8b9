package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(ColProducts).Indexes()

	groupIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "productGroup", Value: 1}},
		Options: options.Index().SetName("productGroup_index"),
	}
	categoryIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "menuCategory", Value: 1}},
		Options: options.Index().SetName("menuCategory_index"),
	}

	log.Println("EnsureProductIndexes: creating product indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{groupIndex, categoryIndex})
	if err != nil {
		log.Println("EnsureProductIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection(ColOrders).Indexes()

	trackingIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "trackingCode", Value: 1}},
		Options: options.Index().
			SetName("trackingCode_unique").
			SetUnique(true),
	}
	statusIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("status_createdAt_index"),
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{trackingIndex, statusIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: index error:", err)
		return err
	}
	return nil
}

func EnsureAnalyticsIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dateIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetName("date_index"),
	}

	log.Println("EnsureAnalyticsIndexes: creating event-log indexes")
	for _, name := range []string{ColVisitors, ColProductViews} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, dateIndex); err != nil {
			log.Println("EnsureAnalyticsIndexes: index error on", name, ":", err)
			return err
		}
	}
	return nil
}

func EnsureAdminIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureAdminIndexes: creating email_unique index")
	_, err := db.Collection(ColAdmins).Indexes().CreateOne(ctx, emailIndex)
	if err != nil {
		log.Println("EnsureAdminIndexes: email index error:", err)
		return err
	}
	return nil
}
