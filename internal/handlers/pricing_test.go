package handlers

import (
	"testing"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

var testCharges = DeliveryCharges{Inside: 80, Outside: 100}

func TestComputeQuoteNoCoupon(t *testing.T) {
	lines := []PricedLine{{UnitPrice: 1000, Qty: 2}}

	quote := computeQuote(lines, models.ZoneInsideDhaka, testCharges, nil)
	if quote.Subtotal != 2000 {
		t.Fatalf("expected subtotal 2000, got %v", quote.Subtotal)
	}
	if quote.DeliveryCharge != 80 {
		t.Fatalf("expected delivery charge 80, got %v", quote.DeliveryCharge)
	}
	if quote.Total != 2080 {
		t.Fatalf("expected total 2080, got %v", quote.Total)
	}
	if quote.Coupon != nil {
		t.Fatalf("expected no applied coupon, got %+v", quote.Coupon)
	}
}

func TestComputeQuotePriceReduction(t *testing.T) {
	lines := []PricedLine{{UnitPrice: 1000, Qty: 2}}
	coupon := &models.Coupon{Code: "SAVE300", Kind: models.CouponPriceReduction, Amount: 300}

	quote := computeQuote(lines, models.ZoneInsideDhaka, testCharges, coupon)
	if quote.Discount != 300 {
		t.Fatalf("expected discount 300, got %v", quote.Discount)
	}
	if quote.Total != 1780 {
		t.Fatalf("expected total 1780, got %v", quote.Total)
	}
	if quote.Coupon == nil || quote.Coupon.Type != models.CouponPriceReduction {
		t.Fatalf("expected applied price-reduction coupon, got %+v", quote.Coupon)
	}
}

func TestComputeQuoteFreeDeliveryInside(t *testing.T) {
	lines := []PricedLine{{UnitPrice: 1000, Qty: 2}}
	coupon := &models.Coupon{Code: "FREEDEL", Kind: models.CouponFreeDeliveryInside}

	quote := computeQuote(lines, models.ZoneInsideDhaka, testCharges, coupon)
	if quote.DeliveryCharge != 0 {
		t.Fatalf("expected zero delivery charge, got %v", quote.DeliveryCharge)
	}
	if quote.Total != 2000 {
		t.Fatalf("expected total 2000, got %v", quote.Total)
	}
}

func TestComputeQuoteFreeDeliveryZoneMismatch(t *testing.T) {
	lines := []PricedLine{{UnitPrice: 1000, Qty: 2}}
	coupon := &models.Coupon{Code: "FREEDEL", Kind: models.CouponFreeDeliveryInside}

	quote := computeQuote(lines, models.ZoneOutsideDhaka, testCharges, coupon)
	if quote.DeliveryCharge != 100 {
		t.Fatalf("zone mismatch must keep the charge, got %v", quote.DeliveryCharge)
	}
	if quote.Coupon != nil {
		t.Fatalf("zone mismatch must not record an applied coupon, got %+v", quote.Coupon)
	}
	if quote.Total != 2100 {
		t.Fatalf("expected total 2100, got %v", quote.Total)
	}
}

func TestComputeQuoteDiscountFloorsAtSubtotal(t *testing.T) {
	lines := []PricedLine{{UnitPrice: 100, Qty: 1}}
	coupon := &models.Coupon{Code: "BIG", Kind: models.CouponPriceReduction, Amount: 500}

	quote := computeQuote(lines, models.ZoneInsideDhaka, testCharges, coupon)
	if quote.Discount != 100 {
		t.Fatalf("discount must be capped at subtotal, got %v", quote.Discount)
	}
	if quote.Total != 80 {
		t.Fatalf("total must never drop below the delivery charge, got %v", quote.Total)
	}
}

func TestComputeQuoteIdempotent(t *testing.T) {
	lines := []PricedLine{{UnitPrice: 750, Qty: 3}, {UnitPrice: 120, Qty: 1}}
	coupon := &models.Coupon{Code: "SAVE50", Kind: models.CouponPriceReduction, Amount: 50}

	first := computeQuote(lines, models.ZoneOutsideDhaka, testCharges, coupon)
	second := computeQuote(lines, models.ZoneOutsideDhaka, testCharges, coupon)

	// Coupon is a fresh allocation per call, so compare by value, not pointer.
	firstFlat, secondFlat := first, second
	firstFlat.Coupon, secondFlat.Coupon = nil, nil
	if firstFlat != secondFlat {
		t.Fatalf("pricing must be pure: %+v vs %+v", first, second)
	}
	if (first.Coupon == nil) != (second.Coupon == nil) {
		t.Fatalf("applied coupon presence must be stable: %+v vs %+v", first.Coupon, second.Coupon)
	}
	if first.Coupon != nil && *first.Coupon != *second.Coupon {
		t.Fatalf("applied coupon must be value-identical: %+v vs %+v", *first.Coupon, *second.Coupon)
	}
}

func TestResolveCouponMatchesBundles(t *testing.T) {
	bundles := []*models.CouponCodes{
		nil,
		{PriceReductionCode: "SAVE300", PriceReductionAmount: 300},
		{InsideDhakaCode: "FREEIN", OutsideDhakaCode: "FREEOUT"},
	}

	coupon, ok := resolveCoupon("save300", bundles)
	if !ok || coupon.Kind != models.CouponPriceReduction || coupon.Amount != 300 {
		t.Fatalf("expected case-insensitive price-reduction match, got %+v ok=%v", coupon, ok)
	}

	coupon, ok = resolveCoupon("FREEOUT", bundles)
	if !ok || coupon.Kind != models.CouponFreeDeliveryOutside {
		t.Fatalf("expected outside free-delivery match, got %+v ok=%v", coupon, ok)
	}
}

func TestResolveCouponUnknownCodeIgnored(t *testing.T) {
	bundles := []*models.CouponCodes{{PriceReductionCode: "SAVE300", PriceReductionAmount: 300}}

	if _, ok := resolveCoupon("NOPE", bundles); ok {
		t.Fatal("unknown code must not resolve")
	}
	if _, ok := resolveCoupon("", bundles); ok {
		t.Fatal("empty code must not resolve")
	}
}

func TestPriceCartUnknownCouponNoHardFailure(t *testing.T) {
	lines := []PricedLine{{UnitPrice: 1000, Qty: 2, Coupons: &models.CouponCodes{PriceReductionCode: "SAVE300", PriceReductionAmount: 300}}}

	quote := priceCart(lines, models.ZoneInsideDhaka, testCharges, "WRONGCODE")
	if quote.Discount != 0 || quote.Total != 2080 {
		t.Fatalf("unknown coupon must be ignored, got %+v", quote)
	}
}

func TestPriceCartEmptyBundleCodesNeverMatchEmptyInput(t *testing.T) {
	lines := []PricedLine{{UnitPrice: 1000, Qty: 1, Coupons: &models.CouponCodes{}}}

	quote := priceCart(lines, models.ZoneInsideDhaka, testCharges, "")
	if quote.Coupon != nil {
		t.Fatalf("empty bundle must never match, got %+v", quote.Coupon)
	}
}
