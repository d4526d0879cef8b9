package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus follows the six-stage fulfilment pipeline. Cancelled is terminal
// and reachable from any non-terminal state.
type OrderStatus string

const (
	OrderPlaced         OrderStatus = "placed"
	OrderConfirmed      OrderStatus = "confirmed"
	OrderPacked         OrderStatus = "packed"
	OrderShipped        OrderStatus = "shipped"
	OrderOutForDelivery OrderStatus = "out_for_delivery"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderPlaced:         {},
	OrderConfirmed:      {},
	OrderPacked:         {},
	OrderShipped:        {},
	OrderOutForDelivery: {},
	OrderDelivered:      {},
	OrderCancelled:      {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatuses[s]
	return ok
}

func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransition reports whether an admin may move an order from one status to
// another. Terminal orders are immutable; everything else may be re-staged,
// including cancellation.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if !to.Valid() || s.Terminal() || s == to {
		return false
	}
	return true
}

// DeliveryZone selects one of the two fixed delivery-charge tiers.
type DeliveryZone string

const (
	ZoneInsideDhaka  DeliveryZone = "inside_dhaka"
	ZoneOutsideDhaka DeliveryZone = "outside_dhaka"
)

func (z DeliveryZone) Valid() bool {
	return z == ZoneInsideDhaka || z == ZoneOutsideDhaka
}

// OrderItemSource distinguishes catalog lines from combo-offer lines; they
// live in different collections but share the orders namespace.
type OrderItemSource string

const (
	ItemSourceProduct OrderItemSource = "product"
	ItemSourceOffer   OrderItemSource = "offer"
)

// OrderItem snapshots name, price and warranty at order time so later catalog
// edits never change historical orders.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName string             `bson:"productName" json:"productName"`
	Price       float64            `bson:"price" json:"price"`
	Qty         int                `bson:"qty" json:"qty"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`
	Warranty    string             `bson:"warranty,omitempty" json:"warranty,omitempty"`
	Source      OrderItemSource    `bson:"source" json:"source"`
}

type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrackingCode   string             `bson:"trackingCode" json:"trackingCode"`
	CustomerName   string             `bson:"customerName" json:"customerName"`
	Phone          string             `bson:"phone" json:"phone"`
	Address        string             `bson:"address" json:"address"`
	Items          []OrderItem        `bson:"items" json:"items"`
	Subtotal       float64            `bson:"subtotal" json:"subtotal"`
	DeliveryCharge float64            `bson:"deliveryCharge" json:"deliveryCharge"`
	DeliveryZone   DeliveryZone       `bson:"deliveryZone" json:"deliveryZone"`
	Discount       float64            `bson:"discount" json:"discount"`
	Total          float64            `bson:"total" json:"total"`
	AppliedCoupon  *AppliedCoupon     `bson:"appliedCoupon,omitempty" json:"appliedCoupon,omitempty"`
	Status         OrderStatus        `bson:"status" json:"status"`
	Notes          string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
