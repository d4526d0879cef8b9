package handlers

import "testing"

func validCustomOrder() customOrderRequest {
	return customOrderRequest{
		CustomerName:    "Karima Akter",
		Phone:           "01898765432",
		ProductName:     "Custom gaming desk",
		ProductCategory: "furniture",
		ExpectedBudget:  15000,
		DeliveryZone:    "outside_dhaka",
	}
}

func TestValidateCustomOrderRequestAccepts(t *testing.T) {
	req := validCustomOrder()
	if msg := validateCustomOrderRequest(&req); msg != "" {
		t.Fatalf("expected valid request, got %q", msg)
	}

	req.UrgencyLevel = "urgent"
	req.Quantity = 3
	if msg := validateCustomOrderRequest(&req); msg != "" {
		t.Fatalf("expected valid request with optionals, got %q", msg)
	}
}

func TestValidateCustomOrderRequestRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*customOrderRequest)
	}{
		{"blank name", func(r *customOrderRequest) { r.CustomerName = " " }},
		{"blank phone", func(r *customOrderRequest) { r.Phone = "" }},
		{"blank product", func(r *customOrderRequest) { r.ProductName = "" }},
		{"blank category", func(r *customOrderRequest) { r.ProductCategory = "" }},
		{"zero budget", func(r *customOrderRequest) { r.ExpectedBudget = 0 }},
		{"negative budget", func(r *customOrderRequest) { r.ExpectedBudget = -500 }},
		{"negative qty", func(r *customOrderRequest) { r.Quantity = -1 }},
		{"bad zone", func(r *customOrderRequest) { r.DeliveryZone = "chittagong" }},
		{"bad urgency", func(r *customOrderRequest) { r.UrgencyLevel = "asap" }},
	}

	for _, tc := range cases {
		req := validCustomOrder()
		tc.mutate(&req)
		if msg := validateCustomOrderRequest(&req); msg == "" {
			t.Fatalf("%s: expected rejection", tc.name)
		}
	}
}
