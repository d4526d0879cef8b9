package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// VisitorEvent is one append-only storefront visit record. VisitorID is a
// client-generated pseudo-identity, unique per browser profile, not per human.
type VisitorEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VisitorID string             `bson:"visitorId" json:"visitorId"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Timestamp int64              `bson:"timestamp" json:"timestamp"`
}

// ProductViewEvent records a product (or offer) detail-page view. Products and
// offers share the same view-event namespace.
type ProductViewEvent struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID string             `bson:"productId" json:"productId"`
	VisitorID string             `bson:"visitorId" json:"visitorId"`
	Date      string             `bson:"date" json:"date"` // YYYY-MM-DD
	Timestamp int64              `bson:"timestamp" json:"timestamp"`
}

// CollectionPeriod is the singleton rolling analytics window stored in the
// settings collection under a fixed key.
type CollectionPeriod struct {
	ID        string `bson:"_id" json:"-"`
	StartDate int64  `bson:"startDate" json:"startDate"` // unix millis
	EndDate   int64  `bson:"endDate" json:"endDate"`     // unix millis
}
