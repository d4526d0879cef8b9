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

type sliderItemRequest struct {
	MediaURL    string `json:"mediaUrl" binding:"required"`
	Type        string `json:"type" binding:"required"`
	RedirectURL string `json:"redirectUrl"`
	Position    int    `json:"position"`
}

func validateSliderType(t string) bool {
	return t == models.SliderTypeImage || t == models.SliderTypeVideo
}

func GetSliderItems(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /slider"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "position", Value: 1}})
		cursor, err := db.Collection(database.ColSlider).Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		items := make([]models.SliderItem, 0)
		if err := cursor.All(ctx, &items); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

func CreateSliderItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/slider"
		defer handlePanic(c, route)

		var req sliderItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if !validateSliderType(req.Type) {
			respondWithError(c, http.StatusBadRequest, route, "type must be image or video")
			return
		}

		item := models.SliderItem{
			MediaURL:    strings.TrimSpace(req.MediaURL),
			Type:        req.Type,
			RedirectURL: strings.TrimSpace(req.RedirectURL),
			Position:    req.Position,
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColSlider).InsertOne(ctx, item)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		item.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, item)
	}
}

func UpdateSliderItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/slider/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		var req sliderItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid request body")
			return
		}
		if !validateSliderType(req.Type) {
			respondWithError(c, http.StatusBadRequest, route, "type must be image or video")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColSlider).UpdateOne(
			ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"mediaUrl":    strings.TrimSpace(req.MediaURL),
				"type":        req.Type,
				"redirectUrl": strings.TrimSpace(req.RedirectURL),
				"position":    req.Position,
			}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "slider item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "slider item updated"})
	}
}

func DeleteSliderItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/slider/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid id")
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		res, err := db.Collection(database.ColSlider).DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "slider item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "slider item deleted"})
	}
}
