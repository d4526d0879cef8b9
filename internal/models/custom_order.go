package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CustomOrderStatus string

const (
	CustomPending     CustomOrderStatus = "pending"
	CustomReviewing   CustomOrderStatus = "reviewing"
	CustomPriceQuoted CustomOrderStatus = "price_quoted"
	CustomConfirmed   CustomOrderStatus = "confirmed"
	CustomOrdered     CustomOrderStatus = "ordered"
	CustomDelivered   CustomOrderStatus = "delivered"
	CustomCancelled   CustomOrderStatus = "cancelled"
)

var customOrderStatuses = map[CustomOrderStatus]struct{}{
	CustomPending:     {},
	CustomReviewing:   {},
	CustomPriceQuoted: {},
	CustomConfirmed:   {},
	CustomOrdered:     {},
	CustomDelivered:   {},
	CustomCancelled:   {},
}

func (s CustomOrderStatus) Valid() bool {
	_, ok := customOrderStatuses[s]
	return ok
}

func (s CustomOrderStatus) Terminal() bool {
	return s == CustomDelivered || s == CustomCancelled
}

type UrgencyLevel string

const (
	UrgencyNormal UrgencyLevel = "normal"
	UrgencyUrgent UrgencyLevel = "urgent"
)

func (u UrgencyLevel) Valid() bool {
	return u == UrgencyNormal || u == UrgencyUrgent
}

// CustomOrder is a bespoke product request, independent of the catalog order
// lifecycle. Optional fields use omitempty so absent values are not persisted
// as nulls.
type CustomOrder struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName       string             `bson:"customerName" json:"customerName"`
	Phone              string             `bson:"phone" json:"phone"`
	Email              string             `bson:"email,omitempty" json:"email,omitempty"`
	ProductName        string             `bson:"productName" json:"productName"`
	ProductCategory    string             `bson:"productCategory" json:"productCategory"`
	ProductDescription string             `bson:"productDescription,omitempty" json:"productDescription,omitempty"`
	ReferenceLink      string             `bson:"referenceLink,omitempty" json:"referenceLink,omitempty"`
	ProductImageURL    string             `bson:"productImageUrl,omitempty" json:"productImageUrl,omitempty"`
	ExpectedBudget     float64            `bson:"expectedBudget" json:"expectedBudget"`
	Quantity           int                `bson:"quantity" json:"quantity"`
	UrgencyLevel       UrgencyLevel       `bson:"urgencyLevel" json:"urgencyLevel"`
	DeliveryZone       DeliveryZone       `bson:"deliveryZone" json:"deliveryZone"`
	DeliveryCharge     float64            `bson:"deliveryCharge" json:"deliveryCharge"`
	Status             CustomOrderStatus  `bson:"status" json:"status"`
	AdminNotes         string             `bson:"adminNotes,omitempty" json:"adminNotes,omitempty"`
	AdditionalNotes    string             `bson:"additionalNotes,omitempty" json:"additionalNotes,omitempty"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
}
