package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

/* =========================
   REQUEST DTOs
========================= */

type createOrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Qty       int    `json:"qty" binding:"required"`
	Color     string `json:"color"`
	Source    string `json:"source"` // "product" (default) or "offer"
}

type createOrderRequest struct {
	CustomerName string                   `json:"customerName" binding:"required"`
	Phone        string                   `json:"phone" binding:"required"`
	Address      string                   `json:"address" binding:"required"`
	Notes        string                   `json:"notes"`
	DeliveryZone string                   `json:"deliveryZone" binding:"required"`
	CouponCode   string                   `json:"couponCode"`
	Items        []createOrderItemRequest `json:"items" binding:"required"`
}

// orderLine is a validated request line ready for the transaction.
type orderLine struct {
	ID     primitive.ObjectID
	Qty    int
	Color  string
	Source models.OrderItemSource
}

/* =========================
   TYPED OUTCOMES
========================= */

type outOfStockError struct {
	ID        primitive.ObjectID
	Available int
	Requested int
}

func (e outOfStockError) Error() string {
	return "insufficient stock"
}

type itemNotFoundError struct {
	ID     primitive.ObjectID
	Source models.OrderItemSource
}

func (e itemNotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Source)
}

// createOrderFailure maps a checkout transaction error to its HTTP response.
func createOrderFailure(err error) (int, gin.H) {
	var stockErr outOfStockError
	if errors.As(err, &stockErr) {
		return http.StatusConflict, gin.H{
			"error":     "insufficient_stock",
			"productId": stockErr.ID.Hex(),
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		}
	}
	var notFoundErr itemNotFoundError
	if errors.As(err, &notFoundErr) {
		return http.StatusNotFound, gin.H{
			"error":     "not_found",
			"productId": notFoundErr.ID.Hex(),
		}
	}
	return http.StatusInternalServerError, gin.H{"error": "db error"}
}

/* =========================
   STOCK CLAIM
========================= */

// stockClaimFilter matches the catalog document only while it still holds
// qty units. Two concurrent orders for the last unit cannot both match.
func stockClaimFilter(id primitive.ObjectID, qty int) bson.M {
	return bson.M{"_id": id, "stock": bson.M{"$gte": qty}}
}

// stockClaimUpdate moves qty units from stock to sold.
func stockClaimUpdate(qty int) bson.M {
	return bson.M{"$inc": bson.M{"stock": -qty, "sold": qty}}
}

/* =========================
   VALIDATION
========================= */

func validateOrderRequest(req createOrderRequest) ([]orderLine, models.DeliveryZone, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, "", errors.New("customerName is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return nil, "", errors.New("phone is required")
	}
	if strings.TrimSpace(req.Address) == "" {
		return nil, "", errors.New("address is required")
	}
	if len(req.Items) == 0 {
		return nil, "", errors.New("at least one item is required")
	}

	zone := models.DeliveryZone(req.DeliveryZone)
	if !zone.Valid() {
		return nil, "", errors.New("invalid deliveryZone")
	}

	lines := make([]orderLine, 0, len(req.Items))
	for _, item := range req.Items {
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, "", errors.New("invalid productId")
		}
		if item.Qty <= 0 {
			return nil, "", errors.New("quantity must be greater than zero")
		}

		source := models.ItemSourceProduct
		switch item.Source {
		case "", string(models.ItemSourceProduct):
		case string(models.ItemSourceOffer):
			source = models.ItemSourceOffer
		default:
			return nil, "", errors.New("invalid item source")
		}

		lines = append(lines, orderLine{
			ID:     id,
			Qty:    item.Qty,
			Color:  strings.TrimSpace(item.Color),
			Source: source,
		})
	}

	return lines, zone, nil
}

// generateTrackingCode mints the public order id customers quote on the
// phone: MZ-<timestamp base36>-<random>.
func generateTrackingCode(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return strings.ToUpper(fmt.Sprintf("MZ-%s-%s", ts, random))
}

/* =========================
   CREATE ORDER
========================= */

func CreateOrder(db *mongo.Database, charges DeliveryCharges) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		lines, zone, err := validateOrderRequest(req)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		now := time.Now()
		order := models.Order{
			TrackingCode: generateTrackingCode(now),
			CustomerName: strings.TrimSpace(req.CustomerName),
			Phone:        strings.TrimSpace(req.Phone),
			Address:      strings.TrimSpace(req.Address),
			DeliveryZone: zone,
			Status:       models.OrderPlaced,
			Notes:        strings.TrimSpace(req.Notes),
			CreatedAt:    now,
		}

		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			items := make([]models.OrderItem, 0, len(lines))
			priced := make([]PricedLine, 0, len(lines))

			for _, line := range lines {
				var snapshot models.OrderItem
				var pricedLine PricedLine
				var err error

				switch line.Source {
				case models.ItemSourceOffer:
					snapshot, pricedLine, err = reserveOfferLine(sessCtx, db, line)
				default:
					snapshot, pricedLine, err = reserveProductLine(sessCtx, db, line)
				}
				if err != nil {
					return nil, err
				}

				items = append(items, snapshot)
				priced = append(priced, pricedLine)
			}

			quote := priceCart(priced, zone, charges, req.CouponCode)
			order.Items = items
			order.Subtotal = quote.Subtotal
			order.DeliveryCharge = quote.DeliveryCharge
			order.Discount = quote.Discount
			order.Total = quote.Total
			order.AppliedCoupon = quote.Coupon

			res, err := db.Collection(database.ColOrders).InsertOne(sessCtx, order)
			if err != nil {
				return nil, err
			}
			if id, ok := res.InsertedID.(primitive.ObjectID); ok {
				order.ID = id
			}
			return nil, nil
		})
		if err != nil {
			status, body := createOrderFailure(err)
			if status == http.StatusInternalServerError {
				respondWithError(c, status, route, "db error")
				return
			}
			c.JSON(status, body)
			return
		}

		log.Printf("[%s] order %s created, total %.2f", route, order.TrackingCode, order.Total)
		c.JSON(http.StatusCreated, gin.H{
			"orderId":      order.ID.Hex(),
			"trackingCode": order.TrackingCode,
			"subtotal":     order.Subtotal,
			"discount":     order.Discount,
			"total":        order.Total,
			"message":      "order created",
		})
	}
}

// reserveProductLine snapshots a catalog product and atomically claims stock
// for it via the conditional stock-claim update.
func reserveProductLine(sessCtx mongo.SessionContext, db *mongo.Database, line orderLine) (models.OrderItem, PricedLine, error) {
	var product models.Product
	err := db.Collection(database.ColProducts).FindOne(sessCtx, bson.M{"_id": line.ID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return models.OrderItem{}, PricedLine{}, itemNotFoundError{ID: line.ID, Source: models.ItemSourceProduct}
	}
	if err != nil {
		return models.OrderItem{}, PricedLine{}, err
	}

	res, err := db.Collection(database.ColProducts).UpdateOne(
		sessCtx,
		stockClaimFilter(line.ID, line.Qty),
		stockClaimUpdate(line.Qty),
	)
	if err != nil {
		return models.OrderItem{}, PricedLine{}, err
	}
	if res.MatchedCount == 0 {
		return models.OrderItem{}, PricedLine{}, outOfStockError{ID: line.ID, Available: product.Stock, Requested: line.Qty}
	}

	item := models.OrderItem{
		ProductID:   line.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Qty:         line.Qty,
		Color:       line.Color,
		Warranty:    product.Warranty,
		Source:      models.ItemSourceProduct,
	}
	return item, PricedLine{UnitPrice: product.Price, Qty: line.Qty, Coupons: product.CouponCodes}, nil
}

// reserveOfferLine is the combo-offer counterpart of reserveProductLine.
func reserveOfferLine(sessCtx mongo.SessionContext, db *mongo.Database, line orderLine) (models.OrderItem, PricedLine, error) {
	var offer models.Offer
	err := db.Collection(database.ColOffers).FindOne(sessCtx, bson.M{"_id": line.ID}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		return models.OrderItem{}, PricedLine{}, itemNotFoundError{ID: line.ID, Source: models.ItemSourceOffer}
	}
	if err != nil {
		return models.OrderItem{}, PricedLine{}, err
	}

	res, err := db.Collection(database.ColOffers).UpdateOne(
		sessCtx,
		stockClaimFilter(line.ID, line.Qty),
		stockClaimUpdate(line.Qty),
	)
	if err != nil {
		return models.OrderItem{}, PricedLine{}, err
	}
	if res.MatchedCount == 0 {
		return models.OrderItem{}, PricedLine{}, outOfStockError{ID: line.ID, Available: offer.Stock, Requested: line.Qty}
	}

	item := models.OrderItem{
		ProductID:   line.ID,
		ProductName: offer.Title,
		Price:       offer.ComboPrice,
		Qty:         line.Qty,
		Color:       line.Color,
		Warranty:    offer.Warranty,
		Source:      models.ItemSourceOffer,
	}
	return item, PricedLine{UnitPrice: offer.ComboPrice, Qty: line.Qty, Coupons: offer.CouponCodes}, nil
}

/* =========================
   TRACK ORDER
========================= */

func TrackOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/track/:code"
		defer handlePanic(c, route)

		code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
		if code == "" {
			respondWithError(c, http.StatusBadRequest, route, "tracking code required")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var order models.Order
		err := db.Collection(database.ColOrders).FindOne(ctx, bson.M{"trackingCode": code}).Decode(&order)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
