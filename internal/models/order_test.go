package models

import "testing"

func TestOrderStatusTransitions(t *testing.T) {
	// Any non-terminal order may be re-staged, cancellation included.
	if !OrderPlaced.CanTransition(OrderConfirmed) {
		t.Fatalf("placed -> confirmed should be allowed")
	}
	if !OrderShipped.CanTransition(OrderConfirmed) {
		t.Fatalf("shipped -> confirmed (rollback) should be allowed")
	}
	if !OrderOutForDelivery.CanTransition(OrderCancelled) {
		t.Fatalf("out_for_delivery -> cancelled should be allowed")
	}

	// Terminal states are frozen.
	if OrderDelivered.CanTransition(OrderPlaced) {
		t.Fatalf("delivered orders must be immutable")
	}
	if OrderCancelled.CanTransition(OrderConfirmed) {
		t.Fatalf("cancelled orders must be immutable")
	}

	// No-op and unknown targets are rejected.
	if OrderPacked.CanTransition(OrderPacked) {
		t.Fatalf("same-status transition should be rejected")
	}
	if OrderPacked.CanTransition(OrderStatus("returned")) {
		t.Fatalf("unknown status should be rejected")
	}
}

func TestOrderStatusValid(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderPlaced, OrderConfirmed, OrderPacked,
		OrderShipped, OrderOutForDelivery, OrderDelivered, OrderCancelled,
	} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if OrderStatus("refunded").Valid() {
		t.Fatalf("refunded should not be valid")
	}
}

func TestCustomOrderStatusTerminal(t *testing.T) {
	if !CustomDelivered.Terminal() || !CustomCancelled.Terminal() {
		t.Fatalf("delivered and cancelled must be terminal")
	}
	for _, s := range []CustomOrderStatus{
		CustomPending, CustomReviewing, CustomPriceQuoted, CustomConfirmed, CustomOrdered,
	} {
		if s.Terminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}
