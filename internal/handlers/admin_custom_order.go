package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

func GetAllCustomOrders(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/custom-orders"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		filter := bson.M{}
		if status := c.Query("status"); status != "" {
			if !models.CustomOrderStatus(status).Valid() {
				respondWithError(c, http.StatusBadRequest, route, "invalid status filter")
				return
			}
			filter["status"] = status
		}
		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"customerName": bson.M{"$regex": search, "$options": "i"}},
				{"phone": bson.M{"$regex": search, "$options": "i"}},
				{"productName": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		col := db.Collection(database.ColCustomOrders)

		total, err := col.CountDocuments(ctx, filter)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		opts := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip((page - 1) * limit).
			SetLimit(limit)

		cursor, err := col.Find(ctx, filter, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		orders := make([]models.CustomOrder, 0)
		if err := cursor.All(ctx, &orders); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		pendingCount, err := col.CountDocuments(ctx, bson.M{"status": models.CustomPending})
		if err != nil {
			pendingCount = 0
		}

		c.JSON(http.StatusOK, gin.H{
			"data": orders,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": (total + limit - 1) / limit,
			},
			"pendingCount": pendingCount,
		})
	}
}

type customOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateCustomOrderStatus moves a request between review stages. Delivered
// and cancelled requests are frozen.
func UpdateCustomOrderStatus(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/custom-orders/:id/status"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req customOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		next := models.CustomOrderStatus(req.Status)
		if !next.Valid() {
			respondWithError(c, http.StatusBadRequest, route, "unknown status")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		col := db.Collection(database.ColCustomOrders)

		var current models.CustomOrder
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&current); err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"error": "custom order not found"})
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if current.Status.Terminal() || current.Status == next {
			c.JSON(http.StatusConflict, gin.H{
				"error":  "invalid status transition",
				"status": current.Status,
			})
			return
		}

		res, err := col.UpdateOne(
			ctx,
			bson.M{"_id": id, "status": current.Status},
			bson.M{"$set": bson.M{"status": next}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "custom order changed concurrently"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": next})
	}
}

type customOrderNotesRequest struct {
	AdminNotes string `json:"adminNotes"`
}

func UpdateCustomOrderNotes(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PATCH /admin/api/custom-orders/:id/notes"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req customOrderNotesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColCustomOrders).UpdateOne(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"adminNotes": strings.TrimSpace(req.AdminNotes)}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "custom order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "notes updated"})
	}
}

func DeleteCustomOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/custom-orders/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColCustomOrders).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "custom order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "custom order deleted"})
	}
}
