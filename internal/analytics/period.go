package analytics

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/database"
	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

const periodKey = "collectionPeriod"

// PeriodStore manages the singleton rolling collection-period window in the
// settings collection. Rollover is a conditional single-document update so
// concurrent expiry detections converge on one canonical window.
type PeriodStore struct {
	col  *mongo.Collection
	days int
	now  func() time.Time
}

func NewPeriodStore(db *mongo.Database, days int) *PeriodStore {
	return &PeriodStore{
		col:  db.Collection(database.ColSettings),
		days: days,
		now:  time.Now,
	}
}

// NewWindow computes a fresh period starting at now.
func NewWindow(now time.Time, days int) models.CollectionPeriod {
	return models.CollectionPeriod{
		ID:        periodKey,
		StartDate: now.UnixMilli(),
		EndDate:   now.AddDate(0, 0, days).UnixMilli(),
	}
}

// Current returns the active collection period, creating or rolling it over
// as needed. A period read after its end date yields a new window starting at
// the read time, not at the old end date.
func (s *PeriodStore) Current(ctx context.Context) (models.CollectionPeriod, error) {
	now := s.now()

	var period models.CollectionPeriod
	err := s.col.FindOne(ctx, bson.M{"_id": periodKey}).Decode(&period)
	if err == mongo.ErrNoDocuments {
		return s.initialize(ctx, now)
	}
	if err != nil {
		return models.CollectionPeriod{}, err
	}

	if now.UnixMilli() <= period.EndDate {
		return period, nil
	}

	return s.rollover(ctx, now)
}

func (s *PeriodStore) initialize(ctx context.Context, now time.Time) (models.CollectionPeriod, error) {
	fresh := NewWindow(now, s.days)

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	// $setOnInsert keeps a concurrent initializer's window intact; every
	// caller reads back the one document that won.
	var period models.CollectionPeriod
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": periodKey},
		bson.M{"$setOnInsert": bson.M{
			"startDate": fresh.StartDate,
			"endDate":   fresh.EndDate,
		}},
		opts,
	).Decode(&period)
	if err != nil {
		return models.CollectionPeriod{}, err
	}
	return period, nil
}

func (s *PeriodStore) rollover(ctx context.Context, now time.Time) (models.CollectionPeriod, error) {
	fresh := NewWindow(now, s.days)

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// The endDate guard makes the rollover single-writer-wins: only one of
	// several concurrent expiry detections matches the stale document.
	var period models.CollectionPeriod
	err := s.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": periodKey, "endDate": bson.M{"$lt": now.UnixMilli()}},
		bson.M{"$set": bson.M{
			"startDate": fresh.StartDate,
			"endDate":   fresh.EndDate,
		}},
		opts,
	).Decode(&period)
	if err == mongo.ErrNoDocuments {
		// Lost the race; read the winner's window.
		err = s.col.FindOne(ctx, bson.M{"_id": periodKey}).Decode(&period)
	}
	if err != nil {
		return models.CollectionPeriod{}, err
	}
	return period, nil
}
