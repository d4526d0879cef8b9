package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

type customOrderRequest struct {
	CustomerName       string  `json:"customerName"`
	Phone              string  `json:"phone"`
	Email              string  `json:"email"`
	ProductName        string  `json:"productName"`
	ProductCategory    string  `json:"productCategory"`
	ProductDescription string  `json:"productDescription"`
	ReferenceLink      string  `json:"referenceLink"`
	ProductImageURL    string  `json:"productImageUrl"`
	ExpectedBudget     float64 `json:"expectedBudget"`
	Quantity           int     `json:"quantity"`
	UrgencyLevel       string  `json:"urgencyLevel"`
	DeliveryZone       string  `json:"deliveryZone"`
	AdditionalNotes    string  `json:"additionalNotes"`
}

func validateCustomOrderRequest(req *customOrderRequest) string {
	if strings.TrimSpace(req.CustomerName) == "" {
		return "customerName is required"
	}
	if strings.TrimSpace(req.Phone) == "" {
		return "phone is required"
	}
	if strings.TrimSpace(req.ProductName) == "" {
		return "productName is required"
	}
	if strings.TrimSpace(req.ProductCategory) == "" {
		return "productCategory is required"
	}
	if req.ExpectedBudget <= 0 {
		return "expectedBudget must be positive"
	}
	if req.Quantity < 0 {
		return "quantity must not be negative"
	}
	if !models.DeliveryZone(req.DeliveryZone).Valid() {
		return "deliveryZone must be inside_dhaka or outside_dhaka"
	}
	if req.UrgencyLevel != "" && !models.UrgencyLevel(req.UrgencyLevel).Valid() {
		return "urgencyLevel must be normal or urgent"
	}
	return ""
}

// SubmitCustomOrder accepts a bespoke product request from the storefront.
// Custom orders never touch catalog stock; the admin quotes a price later.
func SubmitCustomOrder(db *mongo.Database, charges DeliveryCharges) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /custom-orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		var req customOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if msg := validateCustomOrderRequest(&req); msg != "" {
			respondWithError(c, http.StatusBadRequest, route, msg)
			return
		}

		zone := models.DeliveryZone(req.DeliveryZone)
		qty := req.Quantity
		if qty == 0 {
			qty = 1
		}
		urgency := models.UrgencyLevel(req.UrgencyLevel)
		if urgency == "" {
			urgency = models.UrgencyNormal
		}

		order := models.CustomOrder{
			CustomerName:       strings.TrimSpace(req.CustomerName),
			Phone:              strings.TrimSpace(req.Phone),
			Email:              strings.TrimSpace(req.Email),
			ProductName:        strings.TrimSpace(req.ProductName),
			ProductCategory:    strings.TrimSpace(req.ProductCategory),
			ProductDescription: strings.TrimSpace(req.ProductDescription),
			ReferenceLink:      strings.TrimSpace(req.ReferenceLink),
			ProductImageURL:    strings.TrimSpace(req.ProductImageURL),
			ExpectedBudget:     req.ExpectedBudget,
			Quantity:           qty,
			UrgencyLevel:       urgency,
			DeliveryZone:       zone,
			DeliveryCharge:     charges.For(zone),
			Status:             models.CustomPending,
			AdditionalNotes:    strings.TrimSpace(req.AdditionalNotes),
			CreatedAt:          time.Now().UTC(),
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColCustomOrders).InsertOne(ctx, order)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		order.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, order)
	}
}
