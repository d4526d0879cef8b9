package analytics

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

func testRanges(t *testing.T) (time.Time, Ranges) {
	t.Helper()
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	period := models.CollectionPeriod{
		StartDate: now.AddDate(0, 0, -15).UnixMilli(),
		EndDate:   now.AddDate(0, 0, 15).UnixMilli(),
	}
	return now, RangesFor(now, period)
}

func visitorEvent(visitorID string, date string) models.VisitorEvent {
	return models.VisitorEvent{VisitorID: visitorID, Date: date}
}

func TestRangesForLastPeriodPrecedesCurrent(t *testing.T) {
	now := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	period := models.CollectionPeriod{
		StartDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		EndDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC).UnixMilli(),
	}

	r := RangesFor(now, period)
	if r.PeriodStart != "2026-08-01" || r.PeriodEnd != "2026-08-31" {
		t.Fatalf("unexpected current period: %s .. %s", r.PeriodStart, r.PeriodEnd)
	}
	if r.LastPeriodEnd != "2026-07-31" {
		t.Fatalf("last period must end the day before the current one starts, got %s", r.LastPeriodEnd)
	}
	if r.LastPeriodStart != "2026-07-02" {
		t.Fatalf("last period must have identical length, got start %s", r.LastPeriodStart)
	}
}

func TestVisitorBucketsCountDistinctPerBucket(t *testing.T) {
	_, r := testRanges(t)

	events := []models.VisitorEvent{
		visitorEvent("a", r.Today),
		visitorEvent("a", r.Today), // duplicate same day
		visitorEvent("b", r.Today),
		visitorEvent("a", r.WeekStart), // same visitor, earlier in the week
		visitorEvent("c", r.PeriodStart),
		visitorEvent("d", r.LastPeriodStart),
	}

	got := VisitorBuckets(events, r)
	if got.Today != 2 {
		t.Fatalf("expected 2 distinct visitors today, got %d", got.Today)
	}
	if got.LastWeek != 2 {
		t.Fatalf("expected 2 distinct visitors last week, got %d", got.LastWeek)
	}
	if got.CurrentPeriod != 3 {
		t.Fatalf("expected 3 distinct visitors in current period, got %d", got.CurrentPeriod)
	}
	if got.LastPeriod != 1 {
		t.Fatalf("expected 1 distinct visitor in last period, got %d", got.LastPeriod)
	}
}

func TestVisitorBucketsMonotonicity(t *testing.T) {
	_, r := testRanges(t)

	events := []models.VisitorEvent{
		visitorEvent("a", r.Today),
		visitorEvent("b", r.WeekStart),
		visitorEvent("c", r.PeriodStart),
	}

	got := VisitorBuckets(events, r)
	if got.CurrentPeriod < got.Today {
		t.Fatalf("currentPeriod (%d) must be >= today (%d)", got.CurrentPeriod, got.Today)
	}
	if got.CurrentPeriod < got.LastWeek {
		t.Fatalf("currentPeriod (%d) must be >= lastWeek (%d)", got.CurrentPeriod, got.LastWeek)
	}
}

func TestMostViewedFirstEncounteredBreaksTies(t *testing.T) {
	_, r := testRanges(t)

	events := []models.ProductViewEvent{
		{ProductID: "p1", VisitorID: "a", Date: r.Today},
		{ProductID: "p2", VisitorID: "a", Date: r.Today},
		{ProductID: "p2", VisitorID: "b", Date: r.PeriodStart},
		{ProductID: "p1", VisitorID: "b", Date: r.Today},
		{ProductID: "p3", VisitorID: "c", Date: r.LastPeriodStart}, // outside window
	}

	id, count := MostViewed(events, r)
	if id != "p2" {
		t.Fatalf("expected p2 (first to reach the top count), got %s", id)
	}
	if count != 2 {
		t.Fatalf("expected 2 views, got %d", count)
	}
}

func TestMostViewedEmptyWindow(t *testing.T) {
	_, r := testRanges(t)

	id, count := MostViewed(nil, r)
	if id != "" || count != 0 {
		t.Fatalf("expected empty result, got %q / %d", id, count)
	}
}

func makeOrder(t *testing.T, status models.OrderStatus, createdAt time.Time, total float64, quantities map[string]int) models.Order {
	t.Helper()
	items := make([]models.OrderItem, 0, len(quantities))
	for hex, qty := range quantities {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			t.Fatalf("bad test object id %s: %v", hex, err)
		}
		items = append(items, models.OrderItem{ProductID: id, Qty: qty})
	}
	return models.Order{Status: status, CreatedAt: createdAt, Total: total, Items: items}
}

const (
	oidA = "65a000000000000000000001"
	oidB = "65a000000000000000000002"
	oidC = "65a000000000000000000003"
)

func TestSalesBucketsSkipPlacedAndCancelled(t *testing.T) {
	now, r := testRanges(t)

	orders := []models.Order{
		makeOrder(t, models.OrderConfirmed, now, 2080, map[string]int{oidA: 2}),
		makeOrder(t, models.OrderPlaced, now, 999, map[string]int{oidA: 1}),
		makeOrder(t, models.OrderCancelled, now, 500, map[string]int{oidB: 1}),
		makeOrder(t, models.OrderDelivered, now.AddDate(0, 0, -10), 1000, map[string]int{oidB: 3}),
	}

	sales, revenue := SalesBuckets(orders, r)
	if sales.Today != 2 {
		t.Fatalf("expected 2 units sold today, got %d", sales.Today)
	}
	if revenue.Today != 2080 {
		t.Fatalf("expected 2080 revenue today, got %v", revenue.Today)
	}
	if sales.CurrentPeriod != 5 {
		t.Fatalf("expected 5 units in current period, got %d", sales.CurrentPeriod)
	}
	if revenue.CurrentPeriod != 3080 {
		t.Fatalf("expected 3080 revenue in current period, got %v", revenue.CurrentPeriod)
	}
}

func TestTopSoldProductsRankingAndTieBreak(t *testing.T) {
	now, r := testRanges(t)

	orders := []models.Order{
		makeOrder(t, models.OrderConfirmed, now, 100, map[string]int{oidB: 3}),
		makeOrder(t, models.OrderShipped, now, 100, map[string]int{oidA: 3}),
		makeOrder(t, models.OrderDelivered, now, 100, map[string]int{oidC: 7}),
		makeOrder(t, models.OrderPlaced, now, 100, map[string]int{oidC: 50}), // not a valid sale
	}

	top := TopSoldProducts(orders, r, 5)
	if len(top) != 3 {
		t.Fatalf("expected 3 ranked products, got %d", len(top))
	}
	if top[0].ProductID != oidC || top[0].Qty != 7 {
		t.Fatalf("expected %s with qty 7 first, got %+v", oidC, top[0])
	}
	// Equal quantities fall back to productId ascending.
	if top[1].ProductID != oidA || top[2].ProductID != oidB {
		t.Fatalf("tie-break order wrong: %+v", top[1:])
	}
}

func TestTopSoldProductsTruncatesToN(t *testing.T) {
	now, r := testRanges(t)

	quantities := map[string]int{}
	for i := 0; i < 8; i++ {
		quantities[primitive.NewObjectID().Hex()] = i + 1
	}
	orders := []models.Order{makeOrder(t, models.OrderConfirmed, now, 100, quantities)}

	top := TopSoldProducts(orders, r, 5)
	if len(top) != 5 {
		t.Fatalf("expected top-5, got %d entries", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Qty > top[i-1].Qty {
			t.Fatalf("ranking not descending at %d: %+v", i, top)
		}
	}
}

func TestNewWindowScenario(t *testing.T) {
	// A period created at T with a 30-day length, read at T+31 days, must be
	// replaced by a window starting at the read time.
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	old := NewWindow(start, 30)

	readAt := start.AddDate(0, 0, 31)
	if readAt.UnixMilli() <= old.EndDate {
		t.Fatalf("test premise broken: period should be expired at read time")
	}

	fresh := NewWindow(readAt, 30)
	if fresh.StartDate != readAt.UnixMilli() {
		t.Fatalf("new window must start at the read time")
	}
	if fresh.EndDate != readAt.AddDate(0, 0, 30).UnixMilli() {
		t.Fatalf("new window must last the configured duration")
	}
}
