package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/analytics"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

// dedupTTL keeps a seen-marker long enough to cover the whole calendar day it
// was set on, regardless of when during the day the first hit landed.
const dedupTTL = 48 * time.Hour

type trackVisitRequest struct {
	VisitorID string `json:"visitorId" binding:"required"`
}

type trackViewRequest struct {
	VisitorID string `json:"visitorId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
}

// seenToday marks (key, date) in redis and reports whether it was already
// marked. A nil client or a redis failure reports false so tracking degrades
// to at-least-once writes instead of dropping events.
func seenToday(c *gin.Context, rdb *redis.Client, key string) bool {
	if rdb == nil {
		return false
	}
	ok, err := rdb.SetNX(c.Request.Context(), key, 1, dedupTTL).Result()
	if err != nil {
		log.Printf("[TRACK] redis dedup unavailable: %v", err)
		return false
	}
	return !ok
}

func NewVisitorID(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"visitorId": "v_" + uuid.NewString()})
}

// TrackVisit records at most one visit event per visitor per UTC day.
func TrackVisit(db *mongo.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /track/visit"
		defer handlePanic(c, route)

		var req trackVisitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "visitorId is required")
			return
		}
		visitorID := strings.TrimSpace(req.VisitorID)
		if visitorID == "" {
			respondWithError(c, http.StatusBadRequest, route, "visitorId is required")
			return
		}

		now := time.Now().UTC()
		date := analytics.DateString(now)

		if seenToday(c, rdb, fmt.Sprintf("visit:%s:%s", visitorID, date)) {
			c.JSON(http.StatusOK, gin.H{"recorded": false})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		event := models.VisitorEvent{
			VisitorID: visitorID,
			Date:      date,
			Timestamp: now.UnixMilli(),
		}
		if _, err := db.Collection(database.ColVisitors).InsertOne(ctx, event); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"recorded": true})
	}
}

// TrackProductView records at most one view per visitor per product per UTC
// day. Offer views land here too, keyed by the offer id.
func TrackProductView(db *mongo.Database, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /track/view"
		defer handlePanic(c, route)

		var req trackViewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "visitorId and productId are required")
			return
		}
		visitorID := strings.TrimSpace(req.VisitorID)
		productID := strings.TrimSpace(req.ProductID)
		if visitorID == "" || productID == "" {
			respondWithError(c, http.StatusBadRequest, route, "visitorId and productId are required")
			return
		}

		now := time.Now().UTC()
		date := analytics.DateString(now)

		if seenToday(c, rdb, fmt.Sprintf("view:%s:%s:%s", visitorID, productID, date)) {
			c.JSON(http.StatusOK, gin.H{"recorded": false})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		event := models.ProductViewEvent{
			ProductID: productID,
			VisitorID: visitorID,
			Date:      date,
			Timestamp: now.UnixMilli(),
		}
		if _, err := db.Collection(database.ColProductViews).InsertOne(ctx, event); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"recorded": true})
	}
}
