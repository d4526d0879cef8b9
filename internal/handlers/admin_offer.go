package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

type OfferCreateRequest struct {
	Title         string              `json:"title" binding:"required"`
	Description   string              `json:"description"`
	Images        []string            `json:"images"`
	ComboPrice    float64             `json:"comboPrice" binding:"required"`
	OriginalPrice float64             `json:"originalPrice"`
	Stock         int                 `json:"stock"`
	Colors        []string            `json:"colors"`
	Warranty      string              `json:"warranty"`
	CouponCodes   *models.CouponCodes `json:"couponCodes"`
}

type OfferUpdateRequest struct {
	Title         *string             `json:"title"`
	Description   *string             `json:"description"`
	Images        *[]string           `json:"images"`
	ComboPrice    *float64            `json:"comboPrice"`
	OriginalPrice *float64            `json:"originalPrice"`
	Stock         *int                `json:"stock"`
	Colors        *[]string           `json:"colors"`
	Warranty      *string             `json:"warranty"`
	CouponCodes   *models.CouponCodes `json:"couponCodes"`
}

// validateOfferPrices keeps the displayed savings honest: an original price,
// when present, must exceed the combo price.
func validateOfferPrices(comboPrice, originalPrice float64) error {
	if comboPrice <= 0 {
		return errInvalidComboPrice
	}
	if originalPrice != 0 && originalPrice <= comboPrice {
		return errInvalidOriginalPrice
	}
	return nil
}

var (
	errInvalidComboPrice    = &offerValidationError{"invalid comboPrice"}
	errInvalidOriginalPrice = &offerValidationError{"originalPrice must be greater than comboPrice"}
)

type offerValidationError struct{ msg string }

func (e *offerValidationError) Error() string { return e.msg }

func CreateOffer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/offers"
		defer handlePanic(c, route)

		var req OfferCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		title := strings.TrimSpace(req.Title)
		if title == "" {
			respondWithError(c, http.StatusBadRequest, route, "title required")
			return
		}
		if err := validateOfferPrices(req.ComboPrice, req.OriginalPrice); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		if req.Stock < 0 {
			respondWithError(c, http.StatusBadRequest, route, "stock must be zero or greater")
			return
		}
		if err := validateCouponCodes(req.CouponCodes); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		offer := models.Offer{
			Title:         title,
			Description:   strings.TrimSpace(req.Description),
			Images:        models.StringList(normalizeImageList(req.Images)),
			ComboPrice:    req.ComboPrice,
			OriginalPrice: req.OriginalPrice,
			Stock:         req.Stock,
			Colors:        models.StringList(normalizeImageList(req.Colors)),
			Warranty:      strings.TrimSpace(req.Warranty),
			CouponCodes:   req.CouponCodes,
			CreatedAt:     time.Now(),
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColOffers).InsertOne(ctx, offer)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		offer.ID = res.InsertedID.(primitive.ObjectID)
		offer.InStock = offer.Stock > 0
		c.JSON(http.StatusCreated, offer)
	}
}

func UpdateOffer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/offers/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req OfferUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		var existing models.Offer
		err = db.Collection(database.ColOffers).FindOne(ctx, bson.M{"_id": id}).Decode(&existing)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		comboPrice := existing.ComboPrice
		if req.ComboPrice != nil {
			comboPrice = *req.ComboPrice
		}
		originalPrice := existing.OriginalPrice
		if req.OriginalPrice != nil {
			originalPrice = *req.OriginalPrice
		}
		if err := validateOfferPrices(comboPrice, originalPrice); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		updateSet := bson.M{}
		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				respondWithError(c, http.StatusBadRequest, route, "title required")
				return
			}
			updateSet["title"] = title
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Images != nil {
			updateSet["images"] = normalizeImageList(*req.Images)
		}
		if req.ComboPrice != nil {
			updateSet["comboPrice"] = *req.ComboPrice
		}
		if req.OriginalPrice != nil {
			updateSet["originalPrice"] = *req.OriginalPrice
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				respondWithError(c, http.StatusBadRequest, route, "stock must be zero or greater")
				return
			}
			updateSet["stock"] = *req.Stock
		}
		if req.Colors != nil {
			updateSet["colors"] = normalizeImageList(*req.Colors)
		}
		if req.Warranty != nil {
			updateSet["warranty"] = strings.TrimSpace(*req.Warranty)
		}
		if req.CouponCodes != nil {
			if err := validateCouponCodes(req.CouponCodes); err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			updateSet["couponCodes"] = req.CouponCodes
		}

		if len(updateSet) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		_, err = db.Collection(database.ColOffers).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateSet})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "offer updated"})
	}
}

func DeleteOffer(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/offers/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColOffers).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "offer not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "offer deleted"})
	}
}
