package bankfeed

import (
	"math"
	"testing"
	"time"
)

func TestDetectRecurringMonthly(t *testing.T) {
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.Local)
	txs := []Transaction{
		expense(base, "Netflix", 4.99, "EUR", "Subscriptions"),
		expense(base.AddDate(0, 0, 30), "Netflix", 4.99, "EUR", "Subscriptions"),
		expense(base.AddDate(0, 0, 60), "Netflix", 4.99, "EUR", "Subscriptions"),
		expense(base.AddDate(0, 0, 15), "One-off", 12.50, "EUR", "Shopping"),
	}

	groups := DetectRecurring(txs)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	g := groups[0]
	if g.Description != "Netflix" {
		t.Errorf("description = %q", g.Description)
	}
	if g.Occurrences != 3 {
		t.Errorf("occurrences = %d, want 3", g.Occurrences)
	}
	if math.Abs(g.AvgIntervalDays-30) > 0.01 {
		t.Errorf("avg interval = %f, want 30", g.AvgIntervalDays)
	}
	if !g.LastSeen.Equal(base.AddDate(0, 0, 60)) {
		t.Errorf("last seen = %s", g.LastSeen)
	}
	if got, want := g.Amount.StringFixed(), "4.99"; got != want {
		t.Errorf("amount = %s, want %s", got, want)
	}
}

func TestDetectRecurringSignature(t *testing.T) {
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.Local)
	txs := []Transaction{
		// Same description but different amounts: two distinct signatures.
		expense(base, "Uber", 7.20, "EUR", "Transport"),
		expense(base.AddDate(0, 0, 7), "Uber", 9.80, "EUR", "Transport"),
		// Same amount in different currencies: distinct signatures too.
		expense(base, "Spotify", 9.99, "EUR", "Subscriptions"),
		expense(base.AddDate(0, 0, 30), "Spotify", 9.99, "USD", "Subscriptions"),
		// Whitespace around the description is not significant.
		expense(base, " Gym ", 25, "EUR", "Health & Fitness"),
		expense(base.AddDate(0, 0, 28), "Gym", 25, "EUR", "Health & Fitness"),
	}

	groups := DetectRecurring(txs)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1: %+v", len(groups), groups)
	}
	if groups[0].Description != "Gym" {
		t.Errorf("description = %q, want Gym", groups[0].Description)
	}
}

func TestDetectRecurringIgnoresIncome(t *testing.T) {
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.Local)
	txs := []Transaction{
		income(base, "Salary", 1000, "UAH"),
		income(base.AddDate(0, 1, 0), "Salary", 1000, "UAH"),
	}
	if groups := DetectRecurring(txs); len(groups) != 0 {
		t.Errorf("income grouped as recurring: %+v", groups)
	}
}

func TestDetectRecurringOrder(t *testing.T) {
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.Local)
	var txs []Transaction
	for i := 0; i < 2; i++ {
		txs = append(txs, expense(base.AddDate(0, i, 0), "Rent", 800, "EUR", "Card Payment"))
	}
	for i := 0; i < 4; i++ {
		txs = append(txs, expense(base.AddDate(0, 0, 7*i), "Coffee", 3.50, "EUR", "Restaurants"))
	}

	groups := DetectRecurring(txs)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Description != "Coffee" || groups[1].Description != "Rent" {
		t.Errorf("groups not sorted by occurrences: %q, %q", groups[0].Description, groups[1].Description)
	}
}

func TestDetectRecurringEmpty(t *testing.T) {
	if groups := DetectRecurring(nil); len(groups) != 0 {
		t.Errorf("got %d groups from empty input", len(groups))
	}
}
