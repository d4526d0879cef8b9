package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Offer is a combo/bundle listing. Description is rendered as markdown by the
// storefront.
type Offer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Images        StringList         `bson:"images" json:"images"`
	ComboPrice    float64            `bson:"comboPrice" json:"comboPrice"`
	OriginalPrice float64            `bson:"originalPrice,omitempty" json:"originalPrice,omitempty"`
	Stock         int                `bson:"stock" json:"stock"`
	Sold          int                `bson:"sold" json:"sold"`
	Colors        StringList         `bson:"colors,omitempty" json:"colors,omitempty"`
	Warranty      string             `bson:"warranty,omitempty" json:"warranty,omitempty"`
	CouponCodes   *CouponCodes       `bson:"couponCodes,omitempty" json:"couponCodes,omitempty"`
	InStock       bool               `bson:"-" json:"inStock"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
