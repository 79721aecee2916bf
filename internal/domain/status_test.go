package domain

import (
	"errors"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

// legal lists every allowed edge; all other pairs must be rejected.
var legal = map[DeliveryStatus][]DeliveryStatus{
	DeliveryPending:        {DeliveryConfirmed, DeliveryProcessing, DeliveryShipped, DeliveryOutForDelivery, DeliveryDelivered, DeliveryCancelled},
	DeliveryConfirmed:      {DeliveryProcessing, DeliveryShipped, DeliveryOutForDelivery, DeliveryDelivered, DeliveryCancelled},
	DeliveryProcessing:     {DeliveryShipped, DeliveryOutForDelivery, DeliveryDelivered, DeliveryCancelled},
	DeliveryShipped:        {DeliveryOutForDelivery, DeliveryDelivered, DeliveryCancelled},
	DeliveryOutForDelivery: {DeliveryDelivered, DeliveryCancelled},
	DeliveryDelivered:      {DeliveryReturned},
	DeliveryCancelled:      {},
	DeliveryReturned:       {},
}

func TestIsLegalTransition_AllPairs(t *testing.T) {
	pairs := 0
	for _, cur := range AllDeliveryStatuses() {
		allowed := make(map[DeliveryStatus]bool)
		for _, s := range legal[cur] {
			allowed[s] = true
		}
		for _, tgt := range AllDeliveryStatuses() {
			pairs++
			got, err := IsLegalTransition(cur, tgt)
			if err != nil {
				t.Fatalf("%s -> %s: unexpected err %v", cur, tgt, err)
			}
			if got != allowed[tgt] {
				t.Fatalf("%s -> %s: expected %v, got %v", cur, tgt, allowed[tgt], got)
			}
		}
	}
	if pairs != 64 {
		t.Fatalf("expected 64 pairs, got %d", pairs)
	}
}

func TestIsLegalTransition_ReflexiveFalse(t *testing.T) {
	for _, s := range AllDeliveryStatuses() {
		ok, err := IsLegalTransition(s, s)
		if err != nil || ok {
			t.Fatalf("%s -> %s must be illegal, got %v %v", s, s, ok, err)
		}
	}
}

func TestIsLegalTransition_InvalidValue(t *testing.T) {
	if _, err := IsLegalTransition("LOST", DeliveryShipped); !errors.Is(err, ErrInvalidStatusValue) {
		t.Fatalf("expected invalid status for current, got %v", err)
	}
	if _, err := IsLegalTransition(DeliveryShipped, "shipped"); !errors.Is(err, ErrInvalidStatusValue) {
		t.Fatalf("expected invalid status for lower-case target, got %v", err)
	}
}

func TestAvailableNextStatuses(t *testing.T) {
	tests := []struct {
		name string
		cur  DeliveryStatus
		want []DeliveryStatus
	}{
		{name: "cancelled", cur: DeliveryCancelled, want: []DeliveryStatus{}},
		{name: "returned", cur: DeliveryReturned, want: []DeliveryStatus{}},
		{name: "delivered", cur: DeliveryDelivered, want: []DeliveryStatus{DeliveryReturned}},
		{name: "pending", cur: DeliveryPending, want: legal[DeliveryPending]},
		{name: "shipped", cur: DeliveryShipped, want: legal[DeliveryShipped]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AvailableNextStatuses(tt.cur)
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}

	pending, _ := AvailableNextStatuses(DeliveryPending)
	for _, s := range pending {
		if s == DeliveryReturned {
			t.Fatalf("PENDING must not offer RETURNED")
		}
	}

	if _, err := AvailableNextStatuses("nope"); !errors.Is(err, ErrInvalidStatusValue) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestParseStatuses(t *testing.T) {
	if s, err := ParseDeliveryStatus("OUT_FOR_DELIVERY"); err != nil || s != DeliveryOutForDelivery {
		t.Fatalf("parse delivery: %v %v", s, err)
	}
	if _, err := ParseDeliveryStatus("delivered"); !errors.Is(err, ErrInvalidStatusValue) {
		t.Fatalf("expected invalid for lower-case literal")
	}
	if _, err := ParsePaymentStatus("PAID"); err != nil {
		t.Fatalf("parse payment: %v", err)
	}
	if _, err := ParsePaymentStatus("SETTLED"); !errors.Is(err, ErrInvalidStatusValue) {
		t.Fatalf("expected invalid payment status")
	}
	if _, err := ParsePaymentMethod("CARD"); !errors.Is(err, ErrInvalidStatusValue) {
		t.Fatalf("expected invalid payment method")
	}
	if DeliveryOutForDelivery.Label() != "Out for Delivery" || PaymentRefunded.Label() != "Refunded" {
		t.Fatalf("labels")
	}
}

func TestSortByStatusAndCounts(t *testing.T) {
	orders := []Order{
		{ID: "a", DeliveryStatus: DeliveryReturned},
		{ID: "b", DeliveryStatus: DeliveryPending},
		{ID: "c", DeliveryStatus: "WEIRD"},
		{ID: "d", DeliveryStatus: DeliveryShipped},
		{ID: "e", DeliveryStatus: DeliveryPending},
	}
	sorted := SortByStatus(orders)
	var ids string
	for _, o := range sorted {
		ids += o.ID
	}
	if ids != "bedac" {
		t.Fatalf("unexpected order %q", ids)
	}
	if orders[0].ID != "a" {
		t.Fatalf("input mutated")
	}

	counts := StatusCounts(orders)
	if len(counts) < 8 || counts[DeliveryPending] != 2 || counts[DeliveryDelivered] != 0 {
		t.Fatalf("counts: %v", counts)
	}
}

func TestOrderTotals(t *testing.T) {
	o := Order{
		TotalAmount: decimal.RequireFromString("25.50"),
		OrderItems: []OrderItem{
			{ProductID: "p1", Quantity: 2, Price: decimal.RequireFromString("10.25")},
			{ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("5")},
		},
	}
	if !o.TotalConsistent() {
		t.Fatalf("expected consistent, items total %s", o.ItemsTotal())
	}
	o.TotalAmount = decimal.NewFromInt(30)
	if o.TotalConsistent() {
		t.Fatalf("expected inconsistent")
	}
	if (Order{}).CustomerName() != "Unknown" {
		t.Fatalf("customer name fallback")
	}
}
