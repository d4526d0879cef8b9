package analytics

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
)

// Cleanup deletes visitor and view events older than the retention window.
// This is a maintenance sweep; failures are logged and never affect live
// aggregation.
// RetentionCutoff returns the oldest date string still kept; anything
// strictly older is eligible for deletion.
func RetentionCutoff(now time.Time, retentionDays int) string {
	return DateString(now.AddDate(0, 0, -retentionDays))
}

func Cleanup(ctx context.Context, db *mongo.Database, retentionDays int) {
	cutoff := RetentionCutoff(time.Now(), retentionDays)
	filter := bson.M{"date": bson.M{"$lt": cutoff}}

	for _, name := range []string{database.ColVisitors, database.ColProductViews} {
		res, err := db.Collection(name).DeleteMany(ctx, filter)
		if err != nil {
			log.Printf("[ANALYTICS] cleanup of %s failed: %v", name, err)
			continue
		}
		if res.DeletedCount > 0 {
			log.Printf("[ANALYTICS] cleanup removed %d records from %s", res.DeletedCount, name)
		}
	}
}

// StartRetentionSweep runs Cleanup once at startup and then daily until the
// context is cancelled.
func StartRetentionSweep(ctx context.Context, db *mongo.Database, retentionDays int) {
	go func() {
		Cleanup(ctx, db, retentionDays)

		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				Cleanup(ctx, db, retentionDays)
			}
		}
	}()
}
