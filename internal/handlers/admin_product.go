package handlers

import (
	"fmt"
	"log"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

/* =======================
   REQUEST MODELS
======================= */

type ProductCreateRequest struct {
	Name             string              `json:"name" binding:"required"`
	Price            float64             `json:"price" binding:"required"`
	Images           []string            `json:"images"`
	Stock            int                 `json:"stock"`
	MenuCategory     string              `json:"menuCategory" binding:"required"`
	FeaturedCategory string              `json:"featuredCategory"`
	ButtonText       string              `json:"buttonText"`
	ButtonURL        string              `json:"buttonUrl"`
	Description      string              `json:"description"`
	Colors           []string            `json:"colors"`
	ProductGroup     string              `json:"productGroup"`
	Brand            string              `json:"brand"`
	Warranty         string              `json:"warranty"`
	CouponCodes      *models.CouponCodes `json:"couponCodes"`
}

type ProductUpdateRequest struct {
	Name             *string             `json:"name"`
	Price            *float64            `json:"price"`
	Images           *[]string           `json:"images"`
	Stock            *int                `json:"stock"`
	MenuCategory     *string             `json:"menuCategory"`
	FeaturedCategory *string             `json:"featuredCategory"`
	ButtonText       *string             `json:"buttonText"`
	ButtonURL        *string             `json:"buttonUrl"`
	Description      *string             `json:"description"`
	Colors           *[]string           `json:"colors"`
	ProductGroup     *string             `json:"productGroup"`
	Brand            *string             `json:"brand"`
	Warranty         *string             `json:"warranty"`
	CouponCodes      *models.CouponCodes `json:"couponCodes"`
}

/* =======================
   HELPERS
======================= */

// validateCouponCodes rejects bundles where a price-reduction code is present
// without a usable discount amount.
func validateCouponCodes(codes *models.CouponCodes) error {
	if codes == nil {
		return nil
	}
	if strings.TrimSpace(codes.PriceReductionCode) != "" && codes.PriceReductionAmount <= 0 {
		return fmt.Errorf("priceReductionAmount must be greater than 0 when priceReductionCode is set")
	}
	if strings.TrimSpace(codes.PriceReductionCode) == "" && codes.PriceReductionAmount != 0 {
		return fmt.Errorf("priceReductionAmount requires priceReductionCode")
	}
	return nil
}

func normalizeImageList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

/* =======================
   LIST (ADMIN)
======================= */

func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": search, "$options": "i"}},
				{"brand": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
			}
		}
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["menuCategory"] = category
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		total, err := db.Collection(database.ColProducts).CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		totalPages := int64(0)
		if total > 0 {
			totalPages = int64(math.Ceil(float64(total) / float64(limit)))
		}

		opts := options.Find().
			SetSkip((page - 1) * limit).
			SetLimit(limit).
			SetSort(bson.D{{Key: "createdAt", Value: -1}})

		cursor, err := db.Collection(database.ColProducts).Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"data": products,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
			},
		})
	}
}

/* =======================
   CREATE
======================= */

func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		name := strings.TrimSpace(req.Name)
		if name == "" {
			respondWithError(c, http.StatusBadRequest, route, "name required")
			return
		}
		if req.Price <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "invalid price")
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

		product := models.Product{
			Name:             name,
			Price:            req.Price,
			Images:           models.StringList(normalizeImageList(req.Images)),
			Stock:            req.Stock,
			MenuCategory:     strings.TrimSpace(req.MenuCategory),
			FeaturedCategory: strings.TrimSpace(req.FeaturedCategory),
			ButtonText:       strings.TrimSpace(req.ButtonText),
			ButtonURL:        strings.TrimSpace(req.ButtonURL),
			Description:      strings.TrimSpace(req.Description),
			Colors:           models.StringList(normalizeImageList(req.Colors)),
			ProductGroup:     strings.TrimSpace(req.ProductGroup),
			Brand:            strings.TrimSpace(req.Brand),
			Warranty:         strings.TrimSpace(req.Warranty),
			CouponCodes:      req.CouponCodes,
			CreatedAt:        time.Now(),
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColProducts).InsertOne(ctx, product)
		if err != nil {
			log.Println("CreateProduct insert error:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		product.ID = res.InsertedID.(primitive.ObjectID)
		product.InStock = product.Stock > 0
		c.JSON(http.StatusCreated, product)
	}
}

/* =======================
   UPDATE
======================= */

func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		updateSet := bson.M{}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				respondWithError(c, http.StatusBadRequest, route, "name required")
				return
			}
			updateSet["name"] = name
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "invalid price")
				return
			}
			updateSet["price"] = *req.Price
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				respondWithError(c, http.StatusBadRequest, route, "stock must be zero or greater")
				return
			}
			updateSet["stock"] = *req.Stock
		}
		if req.Images != nil {
			updateSet["images"] = normalizeImageList(*req.Images)
		}
		if req.MenuCategory != nil {
			updateSet["menuCategory"] = strings.TrimSpace(*req.MenuCategory)
		}
		if req.FeaturedCategory != nil {
			updateSet["featuredCategory"] = strings.TrimSpace(*req.FeaturedCategory)
		}
		if req.ButtonText != nil {
			updateSet["buttonText"] = strings.TrimSpace(*req.ButtonText)
		}
		if req.ButtonURL != nil {
			updateSet["buttonUrl"] = strings.TrimSpace(*req.ButtonURL)
		}
		if req.Description != nil {
			updateSet["description"] = strings.TrimSpace(*req.Description)
		}
		if req.Colors != nil {
			updateSet["colors"] = normalizeImageList(*req.Colors)
		}
		if req.ProductGroup != nil {
			updateSet["productGroup"] = strings.TrimSpace(*req.ProductGroup)
		}
		if req.Brand != nil {
			updateSet["brand"] = strings.TrimSpace(*req.Brand)
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

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColProducts).UpdateOne(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": updateSet},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product updated"})
	}
}

/* =======================
   DELETE
======================= */

func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColProducts).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
