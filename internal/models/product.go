package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Price            float64            `bson:"price" json:"price"`
	Images           StringList         `bson:"images" json:"images"`
	Stock            int                `bson:"stock" json:"stock"`
	Sold             int                `bson:"sold" json:"sold"`
	MenuCategory     string             `bson:"menuCategory" json:"menuCategory"`
	FeaturedCategory string             `bson:"featuredCategory" json:"featuredCategory"`
	ButtonText       string             `bson:"buttonText,omitempty" json:"buttonText,omitempty"`
	ButtonURL        string             `bson:"buttonUrl,omitempty" json:"buttonUrl,omitempty"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Colors           StringList         `bson:"colors,omitempty" json:"colors,omitempty"`
	ProductGroup     string             `bson:"productGroup,omitempty" json:"productGroup,omitempty"`
	Brand            string             `bson:"brand,omitempty" json:"brand,omitempty"`
	Warranty         string             `bson:"warranty,omitempty" json:"warranty,omitempty"`
	CouponCodes      *CouponCodes       `bson:"couponCodes,omitempty" json:"couponCodes,omitempty"`
	InStock          bool               `bson:"-" json:"inStock"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}
