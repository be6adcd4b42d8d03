package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrderStatusValues(t *testing.T) {
	cases := []struct {
		name     string
		got      OrderStatus
		value    string
		terminal bool
	}{
		{"pending", OrderStatusPending, "pending", false},
		{"preparing", OrderStatusPreparing, "preparing", false},
		{"out for delivery", OrderStatusOutForDelivery, "out-for-delivery", false},
		{"delivered", OrderStatusDelivered, "delivered", true},
		{"cancelled", OrderStatusCancelled, "cancelled", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
			if !tc.got.Valid() {
				t.Fatalf("expected %s to be valid", tc.got)
			}
			if tc.got.Terminal() != tc.terminal {
				t.Fatalf("unexpected terminal flag for %s", tc.got)
			}
		})
	}

	if OrderStatus("shipped").Valid() {
		t.Fatal("unexpected valid status")
	}
}

func TestPermissiveTransitions(t *testing.T) {
	table := NewTransitionTable(TransitionPermissive)
	for _, from := range OrderStatuses {
		for _, to := range OrderStatuses {
			if !table.Allows(from, to) {
				t.Fatalf("expected %s -> %s to be allowed", from, to)
			}
		}
	}
	if table.Allows(OrderStatusPending, OrderStatus("lost")) {
		t.Fatal("unknown target status must be rejected")
	}
}

func TestStrictTransitions(t *testing.T) {
	table := NewTransitionTable(TransitionStrict)
	cases := []struct {
		from, to OrderStatus
		allowed  bool
	}{
		{OrderStatusPending, OrderStatusPreparing, true},
		{OrderStatusPreparing, OrderStatusOutForDelivery, true},
		{OrderStatusOutForDelivery, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusOutForDelivery, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusDelivered, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusPreparing, false},
		{OrderStatusDelivered, OrderStatusDelivered, true},
	}
	for _, tc := range cases {
		if got := table.Allows(tc.from, tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestUnknownPolicyIsPermissive(t *testing.T) {
	table := NewTransitionTable("whatever")
	if !table.Allows(OrderStatusDelivered, OrderStatusPending) {
		t.Fatal("expected permissive fallback")
	}
}

func TestDefaultMenu(t *testing.T) {
	menu := DefaultMenu()

	dish, ok := menu.Main(DefaultDish)
	if !ok || !dish.Price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected default dish: %+v", dish)
	}
	drink, ok := menu.Drink(DefaultDrink)
	if !ok || !drink.Price.Equal(decimal.RequireFromString("1.5")) {
		t.Fatalf("unexpected default drink: %+v", drink)
	}
	if side, ok := menu.Side("salad"); !ok || side.Name != "Salad" {
		t.Fatalf("unexpected salad: %+v", side)
	}
	if _, ok := menu.Side("fries"); ok {
		t.Fatal("fries are not on the menu")
	}
}

func TestSessionAuthenticated(t *testing.T) {
	if (Session{}).Authenticated() {
		t.Fatal("anonymous session reported as authenticated")
	}
	if !(Session{Identity: &Identity{UID: "u1"}}).Authenticated() {
		t.Fatal("expected authenticated session")
	}
}
