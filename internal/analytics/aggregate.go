package analytics

import (
	"sort"
	"time"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

// DateString renders the canonical YYYY-MM-DD bucket key for a timestamp.
// All event dates are bucketed in UTC.
func DateString(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Ranges holds the four overlapping reporting windows as inclusive date-string
// bounds. Date strings compare correctly with plain string ordering.
type Ranges struct {
	Today           string
	WeekStart       string
	PeriodStart     string
	PeriodEnd       string
	LastPeriodStart string
	LastPeriodEnd   string
}

// RangesFor derives the reporting windows from the current time and the
// rolling collection period. The last period is the immediately preceding
// window of identical length, ending the day before the current one starts.
func RangesFor(now time.Time, period models.CollectionPeriod) Ranges {
	start := time.UnixMilli(period.StartDate).UTC()
	end := time.UnixMilli(period.EndDate).UTC()

	lengthDays := int(end.Sub(start).Hours()/24 + 0.5)
	if lengthDays < 1 {
		lengthDays = 1
	}

	return Ranges{
		Today:           DateString(now),
		WeekStart:       DateString(now.AddDate(0, 0, -7)),
		PeriodStart:     DateString(start),
		PeriodEnd:       DateString(end),
		LastPeriodStart: DateString(start.AddDate(0, 0, -lengthDays)),
		LastPeriodEnd:   DateString(start.AddDate(0, 0, -1)),
	}
}

func (r Ranges) inToday(date string) bool {
	return date == r.Today
}

func (r Ranges) inLastWeek(date string) bool {
	return date >= r.WeekStart && date <= r.Today
}

func (r Ranges) inCurrentPeriod(date string) bool {
	return date >= r.PeriodStart && date <= r.PeriodEnd
}

func (r Ranges) inLastPeriod(date string) bool {
	return date >= r.LastPeriodStart && date <= r.LastPeriodEnd
}

// Buckets carries one count per reporting window. Windows overlap, so an
// event may contribute to several buckets at once.
type Buckets struct {
	Today         int `json:"today"`
	LastWeek      int `json:"lastWeek"`
	CurrentPeriod int `json:"currentPeriod"`
	LastPeriod    int `json:"lastPeriod"`
}

type RevenueBuckets struct {
	Today         float64 `json:"today"`
	LastWeek      float64 `json:"lastWeek"`
	CurrentPeriod float64 `json:"currentPeriod"`
	LastPeriod    float64 `json:"lastPeriod"`
}

// VisitorBuckets counts distinct visitor ids per window. Distinctness is per
// bucket independently.
func VisitorBuckets(events []models.VisitorEvent, r Ranges) Buckets {
	today := map[string]struct{}{}
	week := map[string]struct{}{}
	current := map[string]struct{}{}
	last := map[string]struct{}{}

	for _, e := range events {
		if r.inToday(e.Date) {
			today[e.VisitorID] = struct{}{}
		}
		if r.inLastWeek(e.Date) {
			week[e.VisitorID] = struct{}{}
		}
		if r.inCurrentPeriod(e.Date) {
			current[e.VisitorID] = struct{}{}
		}
		if r.inLastPeriod(e.Date) {
			last[e.VisitorID] = struct{}{}
		}
	}

	return Buckets{
		Today:         len(today),
		LastWeek:      len(week),
		CurrentPeriod: len(current),
		LastPeriod:    len(last),
	}
}

// ViewBuckets counts distinct viewing visitors per window, same shape as
// VisitorBuckets.
func ViewBuckets(events []models.ProductViewEvent, r Ranges) Buckets {
	today := map[string]struct{}{}
	week := map[string]struct{}{}
	current := map[string]struct{}{}
	last := map[string]struct{}{}

	for _, e := range events {
		if r.inToday(e.Date) {
			today[e.VisitorID] = struct{}{}
		}
		if r.inLastWeek(e.Date) {
			week[e.VisitorID] = struct{}{}
		}
		if r.inCurrentPeriod(e.Date) {
			current[e.VisitorID] = struct{}{}
		}
		if r.inLastPeriod(e.Date) {
			last[e.VisitorID] = struct{}{}
		}
	}

	return Buckets{
		Today:         len(today),
		LastWeek:      len(week),
		CurrentPeriod: len(current),
		LastPeriod:    len(last),
	}
}

// MostViewed returns the product (or offer) with the highest raw view count
// within the current period. Ties keep the first-encountered entity in event
// order. Returns "" when no views fall inside the window.
func MostViewed(events []models.ProductViewEvent, r Ranges) (string, int) {
	counts := map[string]int{}
	best := ""
	bestCount := 0

	for _, e := range events {
		if !r.inCurrentPeriod(e.Date) {
			continue
		}
		counts[e.ProductID]++
		if counts[e.ProductID] > bestCount {
			best = e.ProductID
			bestCount = counts[e.ProductID]
		}
	}

	return best, bestCount
}

// ValidSale reports whether an order counts toward sales and revenue. An
// order only contributes once acknowledged, so freshly placed and cancelled
// orders are excluded.
func ValidSale(o models.Order) bool {
	return o.Status != models.OrderPlaced && o.Status != models.OrderCancelled
}

// SalesBuckets aggregates sold quantity and revenue per window over valid
// sales only.
func SalesBuckets(orders []models.Order, r Ranges) (Buckets, RevenueBuckets) {
	var sales Buckets
	var revenue RevenueBuckets

	for _, o := range orders {
		if !ValidSale(o) {
			continue
		}

		date := DateString(o.CreatedAt)
		qty := 0
		for _, item := range o.Items {
			qty += item.Qty
		}

		if r.inToday(date) {
			sales.Today += qty
			revenue.Today += o.Total
		}
		if r.inLastWeek(date) {
			sales.LastWeek += qty
			revenue.LastWeek += o.Total
		}
		if r.inCurrentPeriod(date) {
			sales.CurrentPeriod += qty
			revenue.CurrentPeriod += o.Total
		}
		if r.inLastPeriod(date) {
			sales.LastPeriod += qty
			revenue.LastPeriod += o.Total
		}
	}

	return sales, revenue
}

// ProductSales is one row of the best-seller ranking.
type ProductSales struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// TopSoldProducts ranks products by quantity sold within the current period,
// descending, considering valid sales only. Ties are broken by productId
// ascending so the ranking is stable across runs.
func TopSoldProducts(orders []models.Order, r Ranges, n int) []ProductSales {
	totals := map[string]int{}

	for _, o := range orders {
		if !ValidSale(o) || !r.inCurrentPeriod(DateString(o.CreatedAt)) {
			continue
		}
		for _, item := range o.Items {
			totals[item.ProductID.Hex()] += item.Qty
		}
	}

	ranked := make([]ProductSales, 0, len(totals))
	for id, qty := range totals {
		ranked = append(ranked, ProductSales{ProductID: id, Qty: qty})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Qty != ranked[j].Qty {
			return ranked[i].Qty > ranked[j].Qty
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
