package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fraoulflixofficial-spec/mazz-studio-connect/internal/models"
)

func validOrderRequest() createOrderRequest {
	return createOrderRequest{
		CustomerName: "Rahim Uddin",
		Phone:        "01712345678",
		Address:      "House 12, Dhanmondi, Dhaka",
		DeliveryZone: "inside_dhaka",
		Items: []createOrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Qty: 2},
		},
	}
}

func TestValidateOrderRequestAccepts(t *testing.T) {
	lines, zone, err := validateOrderRequest(validOrderRequest())
	if err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if zone != models.ZoneInsideDhaka {
		t.Fatalf("expected inside_dhaka, got %s", zone)
	}
	if len(lines) != 1 || lines[0].Qty != 2 || lines[0].Source != models.ItemSourceProduct {
		t.Fatalf("unexpected lines: %+v", lines)
	}
}

func TestValidateOrderRequestRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*createOrderRequest)
	}{
		{"blank name", func(r *createOrderRequest) { r.CustomerName = "   " }},
		{"blank phone", func(r *createOrderRequest) { r.Phone = "" }},
		{"blank address", func(r *createOrderRequest) { r.Address = "" }},
		{"no items", func(r *createOrderRequest) { r.Items = nil }},
		{"bad zone", func(r *createOrderRequest) { r.DeliveryZone = "uptown" }},
		{"bad id", func(r *createOrderRequest) { r.Items[0].ProductID = "nope" }},
		{"zero qty", func(r *createOrderRequest) { r.Items[0].Qty = 0 }},
		{"negative qty", func(r *createOrderRequest) { r.Items[0].Qty = -1 }},
		{"bad source", func(r *createOrderRequest) { r.Items[0].Source = "bundle" }},
	}

	for _, tc := range cases {
		req := validOrderRequest()
		tc.mutate(&req)
		if _, _, err := validateOrderRequest(req); err == nil {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}
}

func TestValidateOrderRequestOfferSource(t *testing.T) {
	req := validOrderRequest()
	req.Items[0].Source = "offer"

	lines, _, err := validateOrderRequest(req)
	if err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
	if lines[0].Source != models.ItemSourceOffer {
		t.Fatalf("expected offer source, got %s", lines[0].Source)
	}
}

func TestGenerateTrackingCodeShape(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	code := generateTrackingCode(now)

	if !strings.HasPrefix(code, "MZ-") {
		t.Fatalf("expected MZ- prefix, got %s", code)
	}
	if code != strings.ToUpper(code) {
		t.Fatalf("expected uppercase code, got %s", code)
	}
	parts := strings.Split(code, "-")
	if len(parts) != 3 || len(parts[2]) != 6 {
		t.Fatalf("expected MZ-<ts>-<6 chars>, got %s", code)
	}
}

func TestStockClaimDocuments(t *testing.T) {
	id := primitive.NewObjectID()

	cases := []int{1, 3, 250}
	for _, qty := range cases {
		filter := stockClaimFilter(id, qty)
		wantFilter := bson.M{"_id": id, "stock": bson.M{"$gte": qty}}
		if !reflect.DeepEqual(filter, wantFilter) {
			t.Fatalf("qty %d: filter %v, want %v", qty, filter, wantFilter)
		}

		update := stockClaimUpdate(qty)
		wantUpdate := bson.M{"$inc": bson.M{"stock": -qty, "sold": qty}}
		if !reflect.DeepEqual(update, wantUpdate) {
			t.Fatalf("qty %d: update %v, want %v", qty, update, wantUpdate)
		}
	}
}

func TestStockClaimFilterExcludesDepletedStock(t *testing.T) {
	// The last-unit race: with stock 1 and two qty-1 claims, only the first
	// update can match because the winner drops stock to 0 and the filter
	// demands stock >= 1.
	filter := stockClaimFilter(primitive.NewObjectID(), 1)
	cond, ok := filter["stock"].(bson.M)
	if !ok {
		t.Fatalf("filter must constrain stock, got %v", filter)
	}
	min, ok := cond["$gte"].(int)
	if !ok || min != 1 {
		t.Fatalf("filter must require stock >= qty, got %v", cond)
	}
}

func TestCreateOrderFailureMapping(t *testing.T) {
	id := primitive.NewObjectID()

	status, body := createOrderFailure(outOfStockError{ID: id, Available: 1, Requested: 3})
	if status != http.StatusConflict {
		t.Fatalf("out-of-stock must map to 409, got %d", status)
	}
	if body["error"] != "insufficient_stock" || body["available"] != 1 || body["requested"] != 3 {
		t.Fatalf("unexpected out-of-stock body: %v", body)
	}
	if body["productId"] != id.Hex() {
		t.Fatalf("body must carry the product id, got %v", body)
	}

	status, body = createOrderFailure(itemNotFoundError{ID: id, Source: models.ItemSourceOffer})
	if status != http.StatusNotFound || body["error"] != "not_found" {
		t.Fatalf("not-found must map to 404 not_found, got %d %v", status, body)
	}

	// Wrapping must not hide the typed errors.
	wrapped := fmt.Errorf("transaction aborted: %w", outOfStockError{ID: id, Available: 0, Requested: 1})
	if status, _ = createOrderFailure(wrapped); status != http.StatusConflict {
		t.Fatalf("wrapped out-of-stock must still map to 409, got %d", status)
	}

	if status, _ = createOrderFailure(errors.New("connection reset")); status != http.StatusInternalServerError {
		t.Fatalf("unknown errors must map to 500, got %d", status)
	}
}

func TestGenerateTrackingCodeUniqueness(t *testing.T) {
	now := time.Now()
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		code := generateTrackingCode(now)
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate tracking code %s", code)
		}
		seen[code] = struct{}{}
	}
}
