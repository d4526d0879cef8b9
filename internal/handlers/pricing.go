package handlers

import (
	"strings"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

// DeliveryCharges holds the two fixed zone tiers. Values come from config,
// they are never computed.
type DeliveryCharges struct {
	Inside  float64
	Outside float64
}

func (d DeliveryCharges) For(zone models.DeliveryZone) float64 {
	if zone == models.ZoneOutsideDhaka {
		return d.Outside
	}
	return d.Inside
}

// PricedLine is one cart line as seen by the resolver: the server-side unit
// price and the coupon bundle of the underlying product or offer.
type PricedLine struct {
	UnitPrice float64
	Qty       int
	Coupons   *models.CouponCodes
}

// Quote is the result of pricing a cart. Total is always recomputed here;
// client-sent totals are never trusted.
type Quote struct {
	Subtotal       float64               `json:"subtotal"`
	DeliveryCharge float64               `json:"deliveryCharge"`
	Discount       float64               `json:"discount"`
	Total          float64               `json:"total"`
	Coupon         *models.AppliedCoupon `json:"appliedCoupon,omitempty"`
}

// resolveCoupon matches a submitted code against the coupon bundles carried by
// the cart's products and offers. Matching is case-insensitive; the first
// matching bundle wins. An empty or unknown code resolves to no coupon.
func resolveCoupon(code string, bundles []*models.CouponCodes) (models.Coupon, bool) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return models.Coupon{}, false
	}

	for _, bundle := range bundles {
		if bundle == nil {
			continue
		}
		switch {
		case strings.EqualFold(trimmed, bundle.InsideDhakaCode) && bundle.InsideDhakaCode != "":
			return models.Coupon{Code: bundle.InsideDhakaCode, Kind: models.CouponFreeDeliveryInside}, true
		case strings.EqualFold(trimmed, bundle.OutsideDhakaCode) && bundle.OutsideDhakaCode != "":
			return models.Coupon{Code: bundle.OutsideDhakaCode, Kind: models.CouponFreeDeliveryOutside}, true
		case strings.EqualFold(trimmed, bundle.PriceReductionCode) && bundle.PriceReductionCode != "":
			return models.Coupon{
				Code:   bundle.PriceReductionCode,
				Kind:   models.CouponPriceReduction,
				Amount: bundle.PriceReductionAmount,
			}, true
		}
	}
	return models.Coupon{}, false
}

// computeQuote prices a cart for a delivery zone with at most one coupon.
// Pure: same inputs always produce the same quote.
func computeQuote(lines []PricedLine, zone models.DeliveryZone, charges DeliveryCharges, coupon *models.Coupon) Quote {
	subtotal := 0.0
	for _, line := range lines {
		subtotal += line.UnitPrice * float64(line.Qty)
	}

	deliveryCharge := charges.For(zone)
	discount := 0.0
	var applied *models.AppliedCoupon

	if coupon != nil {
		switch coupon.Kind {
		case models.CouponPriceReduction:
			discount = coupon.Amount
			if discount > subtotal {
				discount = subtotal
			}
			if discount < 0 {
				discount = 0
			}
			applied = &models.AppliedCoupon{
				Code:           coupon.Code,
				Type:           coupon.Kind,
				DiscountAmount: discount,
			}
		case models.CouponFreeDeliveryInside:
			if zone == models.ZoneInsideDhaka {
				applied = &models.AppliedCoupon{
					Code:           coupon.Code,
					Type:           coupon.Kind,
					DiscountAmount: deliveryCharge,
				}
				deliveryCharge = 0
			}
		case models.CouponFreeDeliveryOutside:
			if zone == models.ZoneOutsideDhaka {
				applied = &models.AppliedCoupon{
					Code:           coupon.Code,
					Type:           coupon.Kind,
					DiscountAmount: deliveryCharge,
				}
				deliveryCharge = 0
			}
		}
	}

	discounted := subtotal - discount
	if discounted < 0 {
		discounted = 0
	}

	return Quote{
		Subtotal:       subtotal,
		DeliveryCharge: deliveryCharge,
		Discount:       discount,
		Total:          discounted + deliveryCharge,
		Coupon:         applied,
	}
}

// priceCart resolves the submitted coupon code against the cart's bundles and
// computes the quote. Unknown codes are ignored, not rejected.
func priceCart(lines []PricedLine, zone models.DeliveryZone, charges DeliveryCharges, couponCode string) Quote {
	bundles := make([]*models.CouponCodes, 0, len(lines))
	for _, line := range lines {
		bundles = append(bundles, line.Coupons)
	}

	if coupon, ok := resolveCoupon(couponCode, bundles); ok {
		return computeQuote(lines, zone, charges, &coupon)
	}
	return computeQuote(lines, zone, charges, nil)
}
