package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/analytics"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

const topSoldLimit = 5

func minDate(a, b string) string {
	if a < b {
		return a
	}
	return b
}

func loadVisitorEvents(ctx context.Context, db *mongo.Database, since string) ([]models.VisitorEvent, error) {
	cursor, err := db.Collection(database.ColVisitors).Find(ctx, bson.M{"date": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := make([]models.VisitorEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func loadViewEvents(ctx context.Context, db *mongo.Database, since string) ([]models.ProductViewEvent, error) {
	cursor, err := db.Collection(database.ColProductViews).Find(ctx, bson.M{"date": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	events := make([]models.ProductViewEvent, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func loadOrdersSince(ctx context.Context, db *mongo.Database, since time.Time) ([]models.Order, error) {
	cursor, err := db.Collection(database.ColOrders).Find(ctx, bson.M{"createdAt": bson.M{"$gte": since}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	orders := make([]models.Order, 0)
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetAnalytics assembles the admin dashboard: distinct visitors, product
// views, sales and revenue across the four reporting windows, plus the
// best-seller ranking and the most viewed product of the current period.
// Reading the collection period may roll it forward if it has expired.
func GetAnalytics(db *mongo.Database, periods *analytics.PeriodStore, retentionDays int) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/analytics"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
		defer cancel()

		period, err := periods.Current(ctx)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "collection period unavailable")
			return
		}

		now := time.Now().UTC()
		ranges := analytics.RangesFor(now, period)

		// The last period reaches back furthest, but a young period can
		// still leave the 7-day window as the earliest bound.
		since := minDate(ranges.WeekStart, ranges.LastPeriodStart)

		visitorEvents, err := loadVisitorEvents(ctx, db, since)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		viewEvents, err := loadViewEvents(ctx, db, since)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		sinceTime, err := time.ParseInLocation("2006-01-02", since, time.UTC)
		if err != nil {
			sinceTime = now.AddDate(0, 0, -60)
		}
		orders, err := loadOrdersSince(ctx, db, sinceTime)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		// Dashboard reads double as a cleanup trigger between sweeps.
		go analytics.Cleanup(context.Background(), db, retentionDays)

		visitors := analytics.VisitorBuckets(visitorEvents, ranges)
		views := analytics.ViewBuckets(viewEvents, ranges)
		sales, revenue := analytics.SalesBuckets(orders, ranges)
		topSold := analytics.TopSoldProducts(orders, ranges, topSoldLimit)
		mostViewedID, mostViewedCount := analytics.MostViewed(viewEvents, ranges)

		c.JSON(http.StatusOK, gin.H{
			"period": gin.H{
				"startDate": period.StartDate,
				"endDate":   period.EndDate,
			},
			"visitors":   visitors,
			"views":      views,
			"sales":      sales,
			"revenue":    revenue,
			"topSold":    topSold,
			"mostViewed": gin.H{"productId": mostViewedID, "views": mostViewedCount},
		})
	}
}
