package models

// CouponKind tags the three coupon variants a product or offer can carry.
type CouponKind string

const (
	CouponPriceReduction      CouponKind = "price_reduction"
	CouponFreeDeliveryInside  CouponKind = "free_delivery_inside"
	CouponFreeDeliveryOutside CouponKind = "free_delivery_outside"
)

// CouponCodes is the optional coupon bundle embedded in Product and Offer
// documents. Each field is an independent code; at most one coupon is applied
// per order.
type CouponCodes struct {
	InsideDhakaCode      string  `bson:"insideDhakaCode,omitempty" json:"insideDhakaCode,omitempty"`
	OutsideDhakaCode     string  `bson:"outsideDhakaCode,omitempty" json:"outsideDhakaCode,omitempty"`
	PriceReductionCode   string  `bson:"priceReductionCode,omitempty" json:"priceReductionCode,omitempty"`
	PriceReductionAmount float64 `bson:"priceReductionAmount,omitempty" json:"priceReductionAmount,omitempty"`
}

// Coupon is a resolved coupon: a code matched against a cart's bundles.
type Coupon struct {
	Code   string
	Kind   CouponKind
	Amount float64 // only meaningful for CouponPriceReduction
}

// AppliedCoupon is the coupon record snapshotted onto an order.
type AppliedCoupon struct {
	Code           string     `bson:"code" json:"code"`
	Type           CouponKind `bson:"type" json:"type"`
	DiscountAmount float64    `bson:"discountAmount" json:"discountAmount"`
}
